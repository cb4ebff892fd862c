package infra

import (
	"reflect"
)

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
// NaN is not a valid key, see IsAbsentKey.
type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// KeyComparator
// Assume i is the new key.
//  1. i == j (i-j == 0, return 0)
//  2. i > j (i-j > 0, return 1), turn to right part.
//  3. i < j (i-j < 0, return -1), turn to left part.
type KeyComparator[K any] func(i, j K) int64

func NaturalOrderComparator[K OrderedKey]() KeyComparator[K] {
	return func(i, j K) int64 {
		if i == j {
			return 0
		} else if i < j {
			return -1
		}
		return 1
	}
}

// ReverseComparator turns the ascending order of cmp into the descending order.
func ReverseComparator[K any](cmp KeyComparator[K]) KeyComparator[K] {
	return func(i, j K) int64 {
		return cmp(j, i)
	}
}

// IsAbsentKey reports whether the key is the "no key" marker.
// A nil interface, a nil pointer/map/slice/chan/func and a NaN float
// are all treated as absent because none of them has a place in a
// total order.
func IsAbsentKey[K any](key K) bool {
	return IsAbsentValue[K](key)
}

// IsAbsentValue is the same check as IsAbsentKey, named for the value side.
func IsAbsentValue[V any](val V) bool {
	ref := reflect.ValueOf(any(val))
	switch ref.Kind() {
	case reflect.Invalid:
		// nil interface
		return true
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return ref.IsNil()
	case reflect.Float32, reflect.Float64:
		f := ref.Float()
		return f != f
	default:
	}
	return false
}
