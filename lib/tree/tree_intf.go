package tree

import (
	"github.com/benz9527/xnavmap/lib/kv"
)

type RBColor uint8

const (
	Black RBColor = iota
	Red
)

func (c RBColor) String() string {
	switch c {
	case Black:
		return "Black"
	case Red:
		return "Red"
	default:
	}
	return "RBColor(?)"
}

type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

// RBNode is a read-only view of a tree node.
// Nil children are returned as nil interfaces.
type RBNode[K any, V any] interface {
	Key() K
	Val() V
	Color() RBColor
	Left() RBNode[K, V]
	Right() RBNode[K, V]
	Parent() RBNode[K, V]
}

// RBTree is an ordered map backed by a red-black tree.
// It is not safe for concurrent use, callers have to serialize
// the access by themselves.
type RBTree[K any, V any] interface {
	kv.NavigableMap[K, V]
	Root() RBNode[K, V]
	ForeachNode(action func(idx int64, node RBNode[K, V]) bool) error
	String() string
}
