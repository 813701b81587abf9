package memo

import (
	"math"
	"reflect"
	"unsafe"
)

// Snapshot is an ordered, length-significant list of the inputs one derivation
// reads. Elements are compared per position by the rules documented on the
// package: value types by value, pointer-like values by identity.
//
// Two caveats follow from Go's type system:
//   - Incomparable value types (e.g. a struct holding a slice, passed by
//     value) have neither identity nor a total `==`; such an element always
//     compares as changed. Pass a pointer to gate on identity instead.
//   - Func values compare by the identity of their underlying closure
//     allocation. A func literal or method value re-evaluated every cycle
//     yields a fresh allocation and recomputes every cycle; a host must pass
//     a stored func (e.g. one kept via UseFunc) for reuse to kick in.
type Snapshot []any

// same reports whether two dependency values are equal under the cache's rule.
// It never panics, whatever the dynamic types involved.
func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Float32, reflect.Float64:
		fa, fb := ra.Float(), rb.Float()
		// NaN equals itself here, unlike ordinary float comparison.
		// A NaN dependency must not force a recompute every cycle.
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Func:
		// reflect.Value.Pointer would yield the code pointer, which distinct
		// closures of one literal share. Identity of a func value is its
		// funcval allocation, reachable only through the interface data word.
		return funcDataPtr(a) == funcDataPtr(b)
	case reflect.Slice:
		// Identity of a slice is its backing array plus its length.
		return ra.Len() == rb.Len() && ra.Pointer() == rb.Pointer()
	default:
		if !ra.Type().Comparable() {
			return false
		}
		return a == b
	}
}

// funcDataPtr returns the data word of a func-typed interface value: the
// address of the underlying funcval. Copying the interface preserves the word,
// so the same stored func stays equal to itself across cycles while distinct
// closures differ even when they share a code pointer.
func funcDataPtr(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}

// unchanged reports whether next matches prev element-wise. Both snapshots
// must have equal length; length mismatch is the caller's concern because it
// warrants a diagnostic, not just a recompute.
func unchanged(prev, next Snapshot) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !same(prev[i], next[i]) {
			return false
		}
	}
	return true
}
