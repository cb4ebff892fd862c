package tree

import (
	"errors"

	"github.com/benz9527/xnavmap/lib/infra"
)

func isBlack[K any, V any](node RBNode[K, V]) bool {
	return node == nil || node.Color() == Black
}

func isRed[K any, V any](node RBNode[K, V]) bool {
	return node != nil && node.Color() == Red
}

func blackDepthTo[K any, V any](target, to RBNode[K, V]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.Parent() {
		if isBlack[K, V](aux) {
			depth++
		}
	}
	return depth
}

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

func RootColorValidate[K any, V any](tree RBTree[K, V]) error {
	if root := tree.Root(); root != nil && (root.Color() != Black || root.Parent() != nil) {
		return errors.New("rbtree root violation")
	}
	return nil
}

// Inorder traversal to validate the rbtree properties.
func RedViolationValidate[K any, V any](tree RBTree[K, V]) error {
	aux := tree.Root()
	if aux == nil {
		return nil
	}

	stack := make([]RBNode[K, V], 0, tree.Len()>>1+1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; isRed[K, V](aux) {
			if isRed[K, V](aux.Parent()) || isRed[K, V](aux.Left()) || isRed[K, V](aux.Right()) {
				return errors.New("rbtree red violation")
			}
		}

		stack = stack[:size-1]
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
	return nil
}

// BFS traversal to load all nodes owning at least one NIL leaf.
func bfsLeaves[K any, V any](tree RBTree[K, V]) []RBNode[K, V] {
	aux := tree.Root()
	if aux == nil {
		return nil
	}

	leaves := make([]RBNode[K, V], 0, tree.Len()>>1+1)
	queue := make([]RBNode[K, V], 0, tree.Len()>>1+1)
	defer func() {
		clear(queue)
	}()
	queue = append(queue, aux)

	for len(queue) > 0 {
		aux = queue[0]
		l, r := aux.Left(), aux.Right()
		if /* nil leaves, keep one */ l == nil || r == nil {
			leaves = append(leaves, aux)
		}
		if l != nil {
			queue = append(queue, l)
		}
		if r != nil {
			queue = append(queue, r)
		}
		queue = queue[1:]
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[K any, V any](tree RBTree[K, V]) error {
	leaves := bfsLeaves[K, V](tree)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo[K, V](leaves[0], tree.Root())
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo[K, V](leaves[i], tree.Root()) != blackDepth {
			return errors.New("rbtree black violation")
		}
	}
	return nil
}

// BSTOrderValidate checks that the in-order keys are strictly increasing
// under cmp, that every child points back to its parent and that the
// node count matches Len.
func BSTOrderValidate[K any, V any](tree RBTree[K, V], cmp infra.KeyComparator[K]) error {
	var (
		prev    RBNode[K, V]
		visited int64
	)
	stack := make([]RBNode[K, V], 0, tree.Len()>>1+1)
	for aux := tree.Root(); aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		visited++
		if prev != nil && cmp(prev.Key(), aux.Key()) >= 0 {
			return errors.New("rbtree order violation")
		}
		if (aux.Left() != nil && aux.Left().Parent() != aux) ||
			(aux.Right() != nil && aux.Right().Parent() != aux) {
			return errors.New("rbtree parent link violation")
		}
		prev = aux
		for next := aux.Right(); next != nil; next = next.Left() {
			stack = append(stack, next)
		}
	}
	if visited != tree.Len() {
		return errors.New("rbtree size violation")
	}
	return nil
}
