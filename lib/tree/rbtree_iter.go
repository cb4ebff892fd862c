package tree

import (
	"github.com/benz9527/xnavmap/lib/infra"
	"github.com/benz9527/xnavmap/lib/kv"
)

// Inorder traversal without version check, the action must not
// modify the tree.
func (tree *rbTree[K, V]) inorder(action func(idx int64, node *rbNode[K, V])) {
	aux := tree.root
	if aux == nil {
		return
	}

	stack := make([]*rbNode[K, V], 0, 32)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		action(idx, aux)
		idx++
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

func (tree *rbTree[K, V]) Keys() []K {
	keys := make([]K, 0, tree.count)
	tree.inorder(func(_ int64, node *rbNode[K, V]) {
		keys = append(keys, node.key)
	})
	return keys
}

func (tree *rbTree[K, V]) Values() []V {
	vals := make([]V, 0, tree.count)
	tree.inorder(func(_ int64, node *rbNode[K, V]) {
		vals = append(vals, node.val)
	})
	return vals
}

func (tree *rbTree[K, V]) Entries() []kv.Entry[K, V] {
	entries := make([]kv.Entry[K, V], 0, tree.count)
	tree.inorder(func(_ int64, node *rbNode[K, V]) {
		entries = append(entries, kv.NewEntry[K, V](node.key, node.val))
	})
	return entries
}

func (tree *rbTree[K, V]) Iterator() kv.Iterator[K, V] {
	return tree.newIterator()
}

func (tree *rbTree[K, V]) Foreach(action func(idx int64, key K, val V) bool) error {
	return tree.ForeachNode(func(idx int64, node RBNode[K, V]) bool {
		return action(idx, node.Key(), node.Val())
	})
}

// ForeachNode is the in-order DFS. An insertion of a new key or a
// removal done by action is reported by ErrConcurrentModification,
// even if action has stopped the traversal.
func (tree *rbTree[K, V]) ForeachNode(action func(idx int64, node RBNode[K, V]) bool) error {
	it := tree.newIterator()
	for idx := int64(0); it.Next(); idx++ {
		if !action(idx, it.cur) {
			break
		}
	}
	if it.err == nil {
		it.checkVersion()
	}
	return it.err
}

type rbIterator[K any, V any] struct {
	tree    *rbTree[K, V]
	cur     *rbNode[K, V]
	err     error
	stack   []*rbNode[K, V]
	version uint64
}

func (tree *rbTree[K, V]) newIterator() *rbIterator[K, V] {
	it := &rbIterator[K, V]{
		tree:    tree,
		stack:   make([]*rbNode[K, V], 0, 32),
		version: tree.version,
	}
	it.pushLeft(tree.root)
	return it
}

func (it *rbIterator[K, V]) pushLeft(aux *rbNode[K, V]) {
	for ; aux != nil; aux = aux.left {
		it.stack = append(it.stack, aux)
	}
}

func (it *rbIterator[K, V]) checkVersion() bool {
	if it.tree.version != it.version {
		it.err = infra.WrapErrorStackWithMessage(ErrConcurrentModification, "[rbtree] structure changed during iteration")
		it.cur = nil
		clear(it.stack)
		it.stack = it.stack[:0]
		return false
	}
	return true
}

func (it *rbIterator[K, V]) Next() bool {
	if it.err != nil || !it.checkVersion() {
		return false
	}
	size := len(it.stack)
	if size == 0 {
		it.cur = nil
		return false
	}
	it.cur = it.stack[size-1]
	it.stack = it.stack[:size-1]
	it.pushLeft(it.cur.right)
	return true
}

func (it *rbIterator[K, V]) Key() K {
	if it.cur == nil {
		var zero K
		return zero
	}
	return it.cur.key
}

func (it *rbIterator[K, V]) Val() V {
	if it.cur == nil {
		var zero V
		return zero
	}
	return it.cur.val
}

func (it *rbIterator[K, V]) Entry() kv.Entry[K, V] {
	if it.cur == nil {
		return nil
	}
	return kv.NewEntry[K, V](it.cur.key, it.cur.val)
}

func (it *rbIterator[K, V]) Err() error {
	return it.err
}
