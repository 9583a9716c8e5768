package jsonvalue

import "strconv"

// Clone returns a deep copy of v. Scalars are immutable and returned as is.
func Clone(v Value) Value {
	switch val := v.(type) {
	case *Object:
		return CloneObject(val)
	case Array:
		if val == nil {
			return Array(nil)
		}
		out := make(Array, len(val))
		for i, item := range val {
			out[i] = Clone(item)
		}
		return out
	default:
		return v
	}
}

// CloneObject returns a deep copy of o. A nil o clones to an empty object.
func CloneObject(o *Object) *Object {
	out := NewObject(o.Len())
	for k, v := range o.All() {
		out.Set(k, Clone(v))
	}
	return out
}

// Equal reports whether a and b are structurally equal. Object key order is
// ignored; array order is not. Numbers compare equal when their literals
// match or they parse to the same float64.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case String:
		return av == b.(String)
	case Number:
		bv := b.(Number)
		if av == bv {
			return true
		}
		af, aerr := strconv.ParseFloat(string(av), 64)
		bf, berr := strconv.ParseFloat(string(bv), 64)
		return aerr == nil && berr == nil && af == bf
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if av.Len() != bv.Len() {
			return false
		}
		for k, v := range av.All() {
			other, ok := bv.Get(k)
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true
	}
	return false
}
