package tree

import (
	"github.com/calumari/jwalk"

	"github.com/tangxl0591/ConfigJson/internal/jsonptr"
)

// Walk visits v and every descendant in pre-order: the value itself first,
// then object members in document order, then array elements by ascending
// index. fn returning false skips the current value's children; siblings
// are still visited.
func Walk(v any, base jsonptr.Path, fn func(p jsonptr.Path, v any) bool) {
	if !fn(base, v) {
		return
	}
	switch val := v.(type) {
	case jwalk.D:
		for _, e := range val {
			Walk(e.Value, base.Child(jsonptr.Key(e.Key)), fn)
		}
	case jwalk.A:
		for i, el := range val {
			Walk(el, base.Child(jsonptr.Index(i)), fn)
		}
	}
}

// Enumerate returns every addressable path within v, prefixed by base and
// including base itself, in pre-order. A scalar yields just {base}.
func Enumerate(v any, base jsonptr.Path) []jsonptr.Path {
	var out []jsonptr.Path
	Walk(v, base, func(p jsonptr.Path, _ any) bool {
		out = append(out, p)
		return true
	})
	return out
}

// EnumerateKeys is Enumerate rendered to canonical keys, the form the
// selection set stores.
func EnumerateKeys(v any, base jsonptr.Path) []string {
	paths := Enumerate(v, base)
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = p.String()
	}
	return keys
}
