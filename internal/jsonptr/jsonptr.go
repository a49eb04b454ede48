// Package jsonptr models document paths and their canonical string encoding.
//
// The encoding is a typed dialect of JSON Pointer (RFC 6901). Object member
// keys use the RFC escaping ("~" as "~0", "/" as "~1"); array indexes are
// written with a "~2" marker in front of the decimal digits. "~2" can never
// appear in an escaped key, because every literal "~" becomes "~0", so the
// marker keeps the key "1" and the index 1 distinct:
//
//	/servers/~20/name   first element of the "servers" array
//	/servers/0/name     member "0" of the "servers" object
//
// The empty string encodes the root path. "/" never occurs inside an encoded
// segment, which makes it a hard structural boundary: ancestry checks can
// test for the separator directly without "/ab" matching "/abc".
package jsonptr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	separator   = "/"
	indexMarker = "~2"
)

// Segment is one step of a Path: an object member key or an array index.
// The two are distinct segments even when they render alike.
type Segment interface {
	isSegment()
}

// Key addresses an object member by name. Any string is a valid key,
// including the empty string.
type Key string

// Index addresses an array element by position. Canonical indexes are
// non-negative with no leading zeros.
type Index int

func (Key) isSegment()   {}
func (Index) isSegment() {}

// Path is a sequence of segments from the document root. The empty path is
// the root itself.
type Path []Segment

// String returns the canonical encoding of p. The encoding is total and
// injective: every path has exactly one key, and distinct paths have
// distinct keys. The root path encodes as "".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, seg := range p {
		sb.WriteString(separator)
		switch s := seg.(type) {
		case Key:
			sb.WriteString(escapeKey(string(s)))
		case Index:
			sb.WriteString(indexMarker)
			sb.WriteString(strconv.Itoa(int(s)))
		}
	}
	return sb.String()
}

// Display renders p for logs and listings in a dotted style: "$.server.port",
// "$.items[2]". The rendering is not injective (a key named "items[2]" looks
// like an index) and must never be used as an identity; String is the only
// canonical form.
func (p Path) Display() string {
	if len(p) == 0 {
		return "$"
	}
	var sb strings.Builder
	sb.WriteString("$")
	for _, seg := range p {
		switch s := seg.(type) {
		case Key:
			sb.WriteString(".")
			sb.WriteString(string(s))
		case Index:
			sb.WriteString("[")
			sb.WriteString(strconv.Itoa(int(s)))
			sb.WriteString("]")
		}
	}
	return sb.String()
}

// Parse decodes a canonical key back into a Path. It is the inverse of
// String: Parse(p.String()) yields p for every valid path, and
// Parse(k).String() yields k for every canonical key.
//
// Malformed input is rejected: a key that does not start with "/", a "~" not
// followed by "0" or "1", or an index marker followed by anything but
// canonical decimal digits (no sign, no leading zeros).
func Parse(key string) (Path, error) {
	if key == "" {
		return Path{}, nil
	}
	if !strings.HasPrefix(key, separator) {
		return nil, fmt.Errorf("path key %q must start with %q or be empty", key, separator)
	}
	raw := strings.Split(key[1:], separator)
	path := make(Path, 0, len(raw))
	for _, part := range raw {
		if strings.HasPrefix(part, indexMarker) {
			idx, err := parseIndex(part[len(indexMarker):])
			if err != nil {
				return nil, fmt.Errorf("path key %q: %w", key, err)
			}
			path = append(path, Index(idx))
			continue
		}
		k, err := unescapeKey(part)
		if err != nil {
			return nil, fmt.Errorf("path key %q: %w", key, err)
		}
		path = append(path, Key(k))
	}
	return path, nil
}

// MustParse is Parse for keys known to be canonical, such as literals in
// tests. It panics on malformed input.
func MustParse(key string) Path {
	p, err := Parse(key)
	if err != nil {
		panic(err)
	}
	return p
}

// Equal reports whether p and q are the same path, segment for segment.
// A Key and an Index never compare equal.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Child returns a new path extending p by one segment. The result never
// shares backing storage with p.
func (p Path) Child(seg Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// Parent returns the path one segment above p, or nil for the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	out := make(Path, len(p)-1)
	copy(out, p)
	return out
}

// IsAncestor reports whether a is a proper ancestor of b. The root is an
// ancestor of every other path; no path is its own ancestor.
func (a Path) IsAncestor(b Path) bool {
	if len(a) >= len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsAncestorKey is IsAncestor over canonical keys. Because "/" cannot occur
// inside an encoded segment, appending the separator to the would-be
// ancestor makes the prefix test exact: "/ab" is not an ancestor of "/abc".
func IsAncestorKey(a, b string) bool {
	if a == "" {
		return b != ""
	}
	return strings.HasPrefix(b, a+separator)
}

// Depth returns the number of segments in a canonical key.
func Depth(key string) (int, error) {
	p, err := Parse(key)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// SortByDepth stably sorts paths shallowest first. Paths of equal depth keep
// their input order.
func SortByDepth(paths []Path) {
	sort.SliceStable(paths, func(i, j int) bool {
		return len(paths[i]) < len(paths[j])
	})
}

// escapeKey applies RFC 6901 escaping. The escape character goes first so a
// literal "~1" in a key becomes "~01" rather than a spurious separator.
func escapeKey(k string) string {
	k = strings.ReplaceAll(k, "~", "~0")
	k = strings.ReplaceAll(k, "/", "~1")
	return k
}

// unescapeKey reverses escapeKey, rejecting any escape sequence that
// escapeKey cannot produce. A bare trailing "~" or a "~" followed by
// anything but "0" or "1" means the key did not come from String.
func unescapeKey(s string) (string, error) {
	if !strings.ContainsRune(s, '~') {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '~' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("dangling %q in segment %q", "~", s)
		}
		i++
		switch s[i] {
		case '0':
			sb.WriteByte('~')
		case '1':
			sb.WriteByte('/')
		default:
			return "", fmt.Errorf("invalid escape %q in segment %q", s[i-1:i+1], s)
		}
	}
	return sb.String(), nil
}

// parseIndex validates the digits after an index marker. Only the canonical
// decimal form is accepted, so every index has exactly one encoding.
func parseIndex(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("index marker with no digits")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("non-decimal index %q", s)
		}
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, fmt.Errorf("index %q has leading zeros", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q out of range", s)
	}
	return n, nil
}
