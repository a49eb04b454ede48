// Package projection translates a selection into a MongoDB
// include-projection, the persistence-facing counterpart of export: the
// same checked paths driving a database read instead of a file write.
package projection

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	apperrors "github.com/tangxl0591/ConfigJson/internal/errors"
	"github.com/tangxl0591/ConfigJson/internal/jsonptr"
)

// Project converts selection keys into a bson.D of dotted field paths, each
// included with value 1. Entries keep selection order. The root key names
// no field and contributes nothing (an empty projection already returns the
// whole document). Index segments cannot be narrowed without operators, so
// an element projects its parent array, once. A path whose ancestor is also
// selected is redundant and collapses into the ancestor. Keys that do not
// parse are stale state and are skipped.
//
// Field paths join with ".", which is Mongo's syntax, not the canonical
// encoding: a member key that contains a dot, or an empty member key,
// cannot be written as a Mongo field path and makes Project fail with a
// structural conflict error.
func Project(keys []string) (bson.D, error) {
	fields := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		p, err := jsonptr.Parse(k)
		if err != nil {
			continue
		}
		field, ok, err := fieldPath(p)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		fields = append(fields, field)
	}

	out := make(bson.D, 0, len(fields))
	for _, field := range fields {
		if hasSelectedAncestor(field, seen) {
			continue
		}
		out = append(out, bson.E{Key: field, Value: 1})
	}
	return out, nil
}

// fieldPath renders p as a dotted Mongo field path. ok is false when the
// path names no field at all: the root, or an element of a root-level
// array. An Index segment ends the path at its parent array; anything
// deeper lives inside elements Mongo cannot address individually.
func fieldPath(p jsonptr.Path) (string, bool, error) {
	var parts []string
	for _, seg := range p {
		switch s := seg.(type) {
		case jsonptr.Key:
			k := string(s)
			if k == "" || strings.Contains(k, ".") {
				return "", false, apperrors.NewConflictError(
					fmt.Sprintf("member key %q cannot be addressed as a MongoDB field path", k), nil)
			}
			parts = append(parts, k)
		case jsonptr.Index:
			return strings.Join(parts, "."), len(parts) > 0, nil
		}
	}
	return strings.Join(parts, "."), len(parts) > 0, nil
}

// hasSelectedAncestor reports whether any proper dotted prefix of field is
// in set. Prefixes are cut at dots only, so "server" does not cover
// "serverless".
func hasSelectedAncestor(field string, set map[string]struct{}) bool {
	for i := 0; i < len(field); i++ {
		if field[i] != '.' {
			continue
		}
		if _, ok := set[field[:i]]; ok {
			return true
		}
	}
	return false
}
