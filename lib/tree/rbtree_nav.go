package tree

import (
	"github.com/benz9527/xnavmap/lib/infra"
	"github.com/benz9527/xnavmap/lib/kv"
)

func (tree *rbTree[K, V]) FirstKey() (K, bool) {
	if tree.root == nil {
		var zero K
		return zero, false
	}
	return tree.root.minimum().key, true
}

func (tree *rbTree[K, V]) LastKey() (K, bool) {
	if tree.root == nil {
		var zero K
		return zero, false
	}
	return tree.root.maximum().key, true
}

func (tree *rbTree[K, V]) FirstEntry() (kv.Entry[K, V], bool) {
	if tree.root == nil {
		return nil, false
	}
	node := tree.root.minimum()
	return kv.NewEntry[K, V](node.key, node.val), true
}

func (tree *rbTree[K, V]) LastEntry() (kv.Entry[K, V], bool) {
	if tree.root == nil {
		return nil, false
	}
	node := tree.root.maximum()
	return kv.NewEntry[K, V](node.key, node.val), true
}

// Each navigation walks down once from the root and keeps the best
// candidate met so far. Floor and ceiling stop on the exact match,
// lower and higher never take it.

func (tree *rbTree[K, V]) LowerKey(key K) (K, bool, error) {
	return tree.navigate(key, "lower", func(res int64) (accept, goRight, stop bool) {
		if res <= 0 {
			return false, false, false
		}
		return true, true, false
	})
}

func (tree *rbTree[K, V]) FloorKey(key K) (K, bool, error) {
	return tree.navigate(key, "floor", func(res int64) (accept, goRight, stop bool) {
		if res < 0 {
			return false, false, false
		}
		return true, true, res == 0
	})
}

func (tree *rbTree[K, V]) CeilingKey(key K) (K, bool, error) {
	return tree.navigate(key, "ceiling", func(res int64) (accept, goRight, stop bool) {
		if res > 0 {
			return false, true, false
		}
		return true, false, res == 0
	})
}

func (tree *rbTree[K, V]) HigherKey(key K) (K, bool, error) {
	return tree.navigate(key, "higher", func(res int64) (accept, goRight, stop bool) {
		if res >= 0 {
			return false, true, false
		}
		return true, false, false
	})
}

// navigate descends with decide, which receives keyCompare(key, node.key).
func (tree *rbTree[K, V]) navigate(
	key K,
	op string,
	decide func(res int64) (accept, goRight, stop bool),
) (K, bool, error) {
	var zero K
	if infra.IsAbsentKey[K](key) {
		return zero, false, tree.absentKeyErr(op)
	}

	var best *rbNode[K, V]
	for aux := tree.root; aux != nil; {
		accept, goRight, stop := decide(tree.keyCompare(key, aux.key))
		if accept {
			best = aux
		}
		if stop {
			break
		}
		if goRight {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	if best == nil {
		return zero, false, nil
	}
	return best.key, true, nil
}
