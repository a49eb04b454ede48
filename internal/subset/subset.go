// Package subset reconstructs a document from the checked paths of a
// selection.
//
// The subset mirrors the source document's shape: every selected path holds
// the value it holds in the source, containers appear where selected
// descendants need them, and everything unselected is absent. The build
// never fails; selection keys that no longer match the document are skipped
// and reported so the caller can log them.
package subset

import (
	"fmt"
	"sort"

	"github.com/calumari/jwalk"

	apperrors "github.com/tangxl0591/ConfigJson/internal/errors"
	"github.com/tangxl0591/ConfigJson/internal/jsonptr"
	"github.com/tangxl0591/ConfigJson/internal/tree"
)

// entry pairs a decoded selection path with the value it resolves to in the
// source document.
type entry struct {
	path  jsonptr.Path
	value any
}

// Build assembles the subset of doc addressed by keys, in three passes:
// decode and resolve every key, sort the survivors shallowest first, then
// write each one into a fresh output document.
//
// Containers contribute an empty container of their kind; their contents
// arrive only through their own selected paths, so a checked object whose
// members are all unchecked exports as {}. Scalars contribute their value.
// Writing shallowest first means a path's selected ancestors are in place
// before the path itself, and unselected ancestors are materialized by
// tree.Set with their shape taken from the path. Skipped array elements
// below a selected index surface as null pads, the same way a sparse array
// serializes.
//
// The returned document shares no container with doc. The second return
// lists one stale-selection error per key that failed to decode or no
// longer resolves; build output is unaffected by them.
func Build(doc any, keys []string) (any, []error) {
	var skipped []error
	entries := make([]entry, 0, len(keys))
	for _, k := range keys {
		p, err := jsonptr.Parse(k)
		if err != nil {
			skipped = append(skipped, apperrors.NewStaleSelectionError(
				fmt.Sprintf("selection key %q is not a valid path", k), err))
			continue
		}
		v, ok := tree.Get(doc, p)
		if !ok {
			skipped = append(skipped, apperrors.NewStaleSelectionError(
				fmt.Sprintf("selection key %q no longer resolves in the document", k), nil))
			continue
		}
		entries = append(entries, entry{path: p, value: v})
	}

	// Stable: keys at equal depth keep selection order, which is document
	// order whenever the selection came from a cascade.
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].path) < len(entries[j].path)
	})

	// The output root mirrors the source root's container kind. A primitive
	// root stays nil until the root path itself is written; selecting the
	// root is then the in-place case, replacing the output wholesale.
	var out any
	switch doc.(type) {
	case jwalk.D:
		out = jwalk.D{}
	case jwalk.A:
		out = jwalk.A{}
	}

	for _, e := range entries {
		out = tree.Set(out, e.path, emptyForm(e.value))
	}
	return out, skipped
}

// emptyForm maps a source value to its subset contribution: containers to
// an empty container of the same kind, scalars to themselves.
func emptyForm(v any) any {
	switch v.(type) {
	case jwalk.D:
		return jwalk.D{}
	case jwalk.A:
		return jwalk.A{}
	default:
		return v
	}
}
