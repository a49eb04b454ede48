// Package document models JSON configuration documents as ordered values.
//
// The dynamic representation is the jwalk vocabulary: objects are jwalk.D
// (an ordered slice of entries), arrays are jwalk.A, and scalars are string,
// float64, bool or nil. Member order survives decode, edit and encode, so a
// saved document diffs cleanly against its source. Numbers are float64
// throughout; the documents this editor handles come from tooling whose
// numbers are IEEE-754 doubles already.
package document

import (
	"github.com/calumari/jwalk"
)

// Kind identifies the JSON kind of a model value.
type Kind int

const (
	KindInvalid Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "invalid"
	}
}

// KindOf returns the kind of a model value. Values outside the model
// vocabulary report KindInvalid; encountering one is a programming error,
// not a document condition.
func KindOf(v any) Kind {
	switch v.(type) {
	case jwalk.D:
		return KindObject
	case jwalk.A:
		return KindArray
	case string:
		return KindString
	case float64:
		return KindNumber
	case bool:
		return KindBool
	case nil:
		return KindNull
	default:
		return KindInvalid
	}
}

// IsContainer reports whether v is an object or an array.
func IsContainer(v any) bool {
	k := KindOf(v)
	return k == KindObject || k == KindArray
}

// Clone returns a deep copy of v. Scalars are returned as-is.
func Clone(v any) any {
	switch val := v.(type) {
	case jwalk.D:
		out := make(jwalk.D, len(val))
		for i, e := range val {
			out[i] = jwalk.E{Key: e.Key, Value: Clone(e.Value)}
		}
		return out
	case jwalk.A:
		out := make(jwalk.A, len(val))
		for i, el := range val {
			out[i] = Clone(el)
		}
		return out
	default:
		return val
	}
}

// Equal reports deep structural equality of two model values. Object member
// order matters: documents that differ only in key order are not equal.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case jwalk.D:
		bv, ok := b.(jwalk.D)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i].Key != bv[i].Key || !Equal(av[i].Value, bv[i].Value) {
				return false
			}
		}
		return true
	case jwalk.A:
		bv, ok := b.(jwalk.A)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
