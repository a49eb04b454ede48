// Package selection tracks which document paths are checked for export.
//
// The set is flat: it stores canonical path keys and knows nothing about
// their hierarchy. Checking a subtree checks every path under it at toggle
// time (the caller enumerates and feeds the descendants in), so membership
// here is always explicit, never inferred from an ancestor.
package selection

// Set is an insertion-ordered collection of canonical path keys. Check
// preserves first-seen order; Uncheck keeps the relative order of the
// remaining keys. Both are idempotent.
type Set struct {
	index map[string]struct{}
	order []string
}

// New returns an empty selection.
func New() *Set {
	return &Set{
		index: make(map[string]struct{}),
	}
}

// Check adds keys to the selection. Keys already present keep their
// original position.
func (s *Set) Check(keys ...string) {
	for _, k := range keys {
		if _, ok := s.index[k]; ok {
			continue
		}
		s.index[k] = struct{}{}
		s.order = append(s.order, k)
	}
}

// Uncheck removes keys from the selection. Absent keys are ignored.
func (s *Set) Uncheck(keys ...string) {
	for _, k := range keys {
		if _, ok := s.index[k]; !ok {
			continue
		}
		delete(s.index, k)
		for i, have := range s.order {
			if have == k {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Has reports whether key is checked.
func (s *Set) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Keys returns the checked keys in insertion order. The slice is a copy;
// mutating it does not affect the selection.
func (s *Set) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of checked keys.
func (s *Set) Len() int {
	return len(s.order)
}

// Clear unchecks everything.
func (s *Set) Clear() {
	s.index = make(map[string]struct{})
	s.order = nil
}

// ReplaceAll discards the current selection and checks keys in the given
// order. Duplicates collapse to their first occurrence.
func (s *Set) ReplaceAll(keys []string) {
	s.Clear()
	s.Check(keys...)
}
