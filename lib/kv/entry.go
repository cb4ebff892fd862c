package kv

import "fmt"

type Entry[K any, V any] interface {
	Key() K
	Val() V
}

type entry[K any, V any] struct {
	key K
	val V
}

func (e *entry[K, V]) Key() K {
	return e.key
}

func (e *entry[K, V]) Val() V {
	return e.val
}

func (e *entry[K, V]) String() string {
	return fmt.Sprintf("%v=%v", e.key, e.val)
}

// NewEntry copies the key and value. The value may be nil.
func NewEntry[K any, V any](key K, val V) Entry[K, V] {
	return &entry[K, V]{
		key: key,
		val: val,
	}
}
