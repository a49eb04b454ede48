// Package tree implements path-addressed reads and writes over document
// values.
//
// Documents are treated as immutable: Get never modifies its input, and Set
// returns a new document sharing every untouched subtree with the old one.
// Only the containers along the written path are copied, so an edit costs
// the path's depth, not the document's size.
package tree

import (
	"github.com/calumari/jwalk"

	"github.com/tangxl0591/ConfigJson/internal/jsonptr"
)

// Get resolves p within doc. The root path resolves to doc itself. A missing
// member, an out-of-range index, a segment kind that does not match the
// container kind, or a descent into a primitive all report false.
func Get(doc any, p jsonptr.Path) (any, bool) {
	cur := doc
	for _, seg := range p {
		switch s := seg.(type) {
		case jsonptr.Key:
			obj, ok := cur.(jwalk.D)
			if !ok {
				return nil, false
			}
			found := false
			for _, e := range obj {
				if e.Key == string(s) {
					cur = e.Value
					found = true
					break
				}
			}
			if !found {
				return nil, false
			}
		case jsonptr.Index:
			arr, ok := cur.(jwalk.A)
			if !ok {
				return nil, false
			}
			i := int(s)
			if i < 0 || i >= len(arr) {
				return nil, false
			}
			cur = arr[i]
		}
	}
	return cur, true
}

// Set writes v at p and returns the resulting document. doc is never
// mutated.
//
// Absent intermediates are created on the way down, typed by the next
// segment: an Index segment materializes an array, a Key segment an object.
// A primitive (or a container of the wrong kind) standing where the path
// needs a container is silently replaced; the edit surface resolves these
// conflicts destructively rather than failing an interactive edit. Index
// writes beyond the current length grow the array and fill the gap with
// nulls.
func Set(doc any, p jsonptr.Path, v any) any {
	if len(p) == 0 {
		return v
	}
	return setRec(doc, p, v)
}

func setRec(cur any, p jsonptr.Path, v any) any {
	rest := p[1:]
	switch s := p[0].(type) {
	case jsonptr.Key:
		obj, _ := cur.(jwalk.D)
		out := make(jwalk.D, len(obj))
		copy(out, obj)

		idx := -1
		for i, e := range out {
			if e.Key == string(s) {
				idx = i
				break
			}
		}

		var child any
		if idx >= 0 {
			child = out[idx].Value
		}
		newChild := v
		if len(rest) > 0 {
			// A nil child covers both the absent case and an explicit null;
			// either way the recursion materializes the container the next
			// segment asks for.
			newChild = setRec(child, rest, v)
		}

		if idx >= 0 {
			out[idx] = jwalk.E{Key: string(s), Value: newChild}
		} else {
			out = append(out, jwalk.E{Key: string(s), Value: newChild})
		}
		return out

	case jsonptr.Index:
		i := int(s)
		if i < 0 {
			// Canonical paths cannot carry negative indexes; leave the
			// document untouched if one slips through.
			return cur
		}
		arr, _ := cur.(jwalk.A)
		n := len(arr)
		if i+1 > n {
			n = i + 1
		}
		out := make(jwalk.A, n)
		copy(out, arr)

		newChild := v
		if len(rest) > 0 {
			newChild = setRec(out[i], rest, v)
		}
		out[i] = newChild
		return out
	}
	return cur
}
