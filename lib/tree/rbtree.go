package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benz9527/xnavmap/lib/infra"
	"github.com/benz9527/xnavmap/lib/kv"
)

var (
	ErrInvalidArgument        = errors.New("[rbtree] invalid argument")
	ErrConcurrentModification = errors.New("[rbtree] concurrent modification")
)

var _ kv.NavigableMap[int, string] = (*rbTree[int, string])(nil)

type rbNode[K any, V any] struct {
	parent *rbNode[K, V]
	left   *rbNode[K, V]
	right  *rbNode[K, V]
	key    K
	val    V
	color  RBColor
}

func (node *rbNode[K, V]) Color() RBColor {
	return node.color
}

func (node *rbNode[K, V]) Key() K {
	return node.key
}

func (node *rbNode[K, V]) Val() V {
	return node.val
}

func (node *rbNode[K, V]) Left() RBNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[K, V]) Parent() RBNode[K, V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (node *rbNode[K, V]) Right() RBNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

// A nil node is a black NIL leaf.
func (node *rbNode[K, V]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *rbNode[K, V]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *rbNode[K, V]) isRoot() bool {
	return node != nil && node.parent == nil
}

func (node *rbNode[K, V]) isLeaf() bool {
	return node != nil && node.left == nil && node.right == nil
}

func (node *rbNode[K, V]) Direction() RBDirection {
	if node == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] nil leaf node without direction")
	}

	if node.isRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[K, V]) sibling() *rbNode[K, V] {
	switch node.Direction() {
	case Left:
		return node.parent.right
	case Right:
		return node.parent.left
	default:
	}
	return nil
}

func (node *rbNode[K, V]) uncle() *rbNode[K, V] {
	return node.parent.sibling()
}

func (node *rbNode[K, V]) grandpa() *rbNode[K, V] {
	return node.parent.parent
}

func (node *rbNode[K, V]) fixLink() {
	if node.left != nil {
		node.left.parent = node
	}
	if node.right != nil {
		node.right.parent = node
	}
}

func (node *rbNode[K, V]) minimum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *rbNode[K, V]) maximum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
func (node *rbNode[K, V]) pred() *rbNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	if x.left != nil {
		return x.left.maximum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's pred.
	for aux != nil && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
func (node *rbNode[K, V]) succ() *rbNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	if x.right != nil {
		return x.right.minimum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's succ.
	for aux != nil && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}

type rbTree[K any, V any] struct {
	root           *rbNode[K, V]
	cmp            infra.KeyComparator[K]
	count          int64
	version        uint64 // structural version, value replacement excluded
	isDesc         bool
	isRmBorrowPred bool
}

func (tree *rbTree[K, V]) keyCompare(k1, k2 K) int64 {
	res := tree.cmp(k1, k2)
	if tree.isDesc {
		return -res
	}
	return res
}

func (tree *rbTree[K, V]) Len() int64 {
	return tree.count
}

func (tree *rbTree[K, V]) IsEmpty() bool {
	return tree.count == 0
}

func (tree *rbTree[K, V]) Root() RBNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.

/*
		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (tree *rbTree[K, V]) leftRotate(x *rbNode[K, V]) {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	p, y := x.parent, x.right
	dir := x.Direction()
	x.right, y.left = y.left, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to left-rotate")
	}
	y.parent = p
}

/*
			 |                         |
			 X                         S
			/ \     rightRotate(S)    / \
	       L   S    <============    X   R
			  / \                   / \
			Sc   Sd               Sc   Sd
*/
func (tree *rbTree[K, V]) rightRotate(x *rbNode[K, V]) {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	p, y := x.parent, x.left
	dir := x.Direction()
	x.left, y.right = y.right, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to right-rotate")
	}
	y.parent = p
}

func (tree *rbTree[K, V]) search(key K) *rbNode[K, V] {
	for aux := tree.root; aux != nil; {
		res := tree.keyCompare(key, aux.key)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return nil
}

func (tree *rbTree[K, V]) absentKeyErr(op string) error {
	return infra.WrapErrorStackWithMessage(ErrInvalidArgument, "[rbtree] "+op+" with absent key")
}

// Put inserts the key or replaces the value of an existing key.
// The replacement keeps the tree shape and the structural version.
//
// i1: Empty rbtree, insert directly, but root node is painted to black.
func (tree *rbTree[K, V]) Put(key K, val V) error {
	if infra.IsAbsentKey[K](key) {
		return tree.absentKeyErr("put")
	}

	if /* i1 */ tree.root == nil {
		tree.root = &rbNode[K, V]{
			key:   key,
			val:   val,
			color: Black,
		}
		tree.count++
		tree.version++
		return nil
	}

	var (
		x, y *rbNode[K, V] = tree.root, nil
		res  int64
	)
	for x != nil {
		y = x
		res = tree.keyCompare(key, x.key)
		if /* equal */ res == 0 {
			x.val = val
			return nil
		} else /* less */ if res < 0 {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}

	z := &rbNode[K, V]{
		key:    key,
		val:    val,
		color:  Red,
		parent: y,
	}
	if res < 0 {
		y.left = z
	} else {
		y.right = z
	}

	tree.count++
	tree.version++
	tree.insertRebalance(z)
	return nil
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: Current node X's parent P is black, so hold p3 and p4.

im2: Current node X's parent P is red and P is root, repaint P into black.

im3: If both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Recursive to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im4: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to opposite direction.
After rotation may be still red-violation. Here must enter im5 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im5: Handle im4 scenario, current node is the same direction as parent.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (tree *rbTree[K, V]) insertRebalance(x *rbNode[K, V]) {
	for x != nil {
		if x.isRoot() {
			x.color = Black
			return
		}

		if /* im1 */ x.parent.isBlack() {
			return
		}

		if /* im2 */ x.parent.isRoot() {
			x.parent.color = Black
			return
		}

		if /* im3 */ uncle := x.uncle(); uncle.isRed() {
			x.parent.color = Black
			uncle.color = Black
			gp := x.grandpa()
			gp.color = Red
			x = gp
			continue
		}

		dir := x.Direction()
		if /* im4 */ dir != x.parent.Direction() {
			p := x.parent
			switch dir {
			case Left:
				tree.rightRotate(p)
			case Right:
				tree.leftRotate(p)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] insert violate (im4)")
			}
			x = p // enter im5 to fix
		}

		switch /* im5 */ x.parent.Direction() {
		case Left:
			tree.rightRotate(x.grandpa())
		case Right:
			tree.leftRotate(x.grandpa())
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] insert violate (im5)")
		}

		x.parent.color = Black
		x.sibling().color = Red
		return
	}
}

func (tree *rbTree[K, V]) Get(key K) (V, bool, error) {
	var zero V
	if infra.IsAbsentKey[K](key) {
		return zero, false, tree.absentKeyErr("get")
	}
	if node := tree.search(key); node != nil {
		return node.val, true, nil
	}
	return zero, false, nil
}

func (tree *rbTree[K, V]) ContainsKey(key K) bool {
	if infra.IsAbsentKey[K](key) {
		return false
	}
	return tree.search(key) != nil
}

// Remove returns the removed value. Removing a missing key is a no-op.
func (tree *rbTree[K, V]) Remove(key K) (V, bool, error) {
	var zero V
	if infra.IsAbsentKey[K](key) {
		return zero, false, tree.absentKeyErr("remove")
	}
	z := tree.search(key)
	if z == nil {
		return zero, false, nil
	}

	val := z.val
	tree.removeNode(z)
	tree.count--
	tree.version++
	return val, true, nil
}

/*
r1: Only a root node, remove directly.

r2: Current node X has left and right node.
Find node X's succ (or pred) to replace it to be removed.
Copy the key and value only.
Both of pred and succ have at most one child.

Find succ:

	  |                    |
	  X                    S
	 / \                  / \
	L  ..   copy(X, S)   L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  S  ..                X  ..

r3: (1) Current node X is a red leaf node, remove directly.

r3: (2) Current node X is a black leaf node, we have to rebalance before
unlink it. (black-violation)

r4: Current node X is not a leaf node but contains a not nil child node.
The child node must be a red node. (See conclusion. Otherwise, black-violation)
Splice the child into X's position and repaint it into black.
*/
func (tree *rbTree[K, V]) removeNode(z *rbNode[K, V]) {
	if /* r1 */ z.isRoot() && z.isLeaf() {
		tree.root = nil
		tree.releaseNode(z)
		return
	}

	y := z
	if /* r2 */ z.left != nil && z.right != nil {
		if tree.isRmBorrowPred {
			y = z.pred() // enter r3-r4
		} else {
			y = z.succ() // enter r3-r4
		}
		z.key, z.val = y.key, y.val
	}

	if /* r3 */ y.isLeaf() {
		if /* r3 (2) */ y.isBlack() {
			tree.removeRebalance(y)
		}
		switch y.Direction() {
		case Left:
			y.parent.left = nil
		case Right:
			y.parent.right = nil
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] y should be a leaf node, violate (r3)")
		}
	} else /* r4 */ {
		replace := y.left
		if replace == nil {
			replace = y.right
		}

		switch y.Direction() {
		case Root:
			tree.root = replace
		case Left:
			y.parent.left = replace
		case Right:
			y.parent.right = replace
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] impossible run to here (r4)")
		}
		replace.parent = y.parent

		if y.isBlack() {
			if replace.isRed() {
				replace.color = Black
			} else {
				tree.removeRebalance(replace)
			}
		}
	}
	tree.releaseNode(y)
}

func (tree *rbTree[K, V]) releaseNode(node *rbNode[K, V]) {
	var (
		zeroK K
		zeroV V
	)
	node.parent, node.left, node.right = nil, nil, nil
	node.key, node.val = zeroK, zeroV
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the same direction to X and it X's sibling's child node.
Sd is the opposite direction to X and it X's sibling's child node.

rm1: Current node X's sibling S is red, so the parent P, nephew node Sc and Sd
must be black. (Otherwise, red-violation)
Repaint S into black, P into red, then rotate P towards X.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: The sibling S, nephew node Sc and Sd are black.
Repaint S into red, the deficiency moves up to P. If P is red, P is
repainted into black at the end of loop and the fix is done. Otherwise,
recursive to handle P.

	  {P}             {P}
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: Current node X's sibling S is black, nephew node Sc is red and Sd
is black. Rotate S away from X, repaint S into red, Sc into black.
Enter into rm4 to fix.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm4: Current node X's sibling S is black, nephew node Sd is red.
S takes P's color, P and Sd are repainted into black, then rotate P
towards X. The deficiency is absorbed.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (tree *rbTree[K, V]) removeRebalance(x *rbNode[K, V]) {
	for !x.isRoot() && x.isBlack() {
		dir := x.Direction()
		sibling := x.sibling()
		if /* rm1 */ sibling.isRed() {
			sibling.color = Black
			x.parent.color = Red
			switch dir {
			case Left:
				tree.leftRotate(x.parent)
			case Right:
				tree.rightRotate(x.parent)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove violate (rm1)")
			}
			sibling = x.sibling()
		}

		var sc, sd *rbNode[K, V]
		switch dir {
		case Left:
			sc, sd = sibling.left, sibling.right
		case Right:
			sc, sd = sibling.right, sibling.left
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove violate (rm2)")
		}

		if /* rm2 */ sc.isBlack() && sd.isBlack() {
			sibling.color = Red
			x = x.parent
			continue
		}

		if /* rm3 */ sd.isBlack() {
			switch dir {
			case Left:
				tree.rightRotate(sibling)
			case Right:
				tree.leftRotate(sibling)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove violate (rm3)")
			}
			sc.color = Black
			sibling.color = Red
			sibling, sd = sc, sibling
		}

		/* rm4 */
		sibling.color = x.parent.color
		x.parent.color = Black
		sd.color = Black
		switch dir {
		case Left:
			tree.leftRotate(x.parent)
		case Right:
			tree.rightRotate(x.parent)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove violate (rm4)")
		}
		x = tree.root
	}
	x.color = Black
}

// Clear drops the whole node graph.
func (tree *rbTree[K, V]) Clear() {
	aux := tree.root
	tree.root = nil
	if aux == nil {
		return
	}
	tree.count = 0
	tree.version++

	stack := make([]*rbNode[K, V], 0, 32)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		r := aux.right
		tree.releaseNode(aux)
		for aux = r; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

func (tree *rbTree[K, V]) String() string {
	builder := strings.Builder{}
	_, _ = builder.WriteString("{")
	tree.inorder(func(idx int64, node *rbNode[K, V]) {
		if idx > 0 {
			_, _ = builder.WriteString(", ")
		}
		_, _ = fmt.Fprintf(&builder, "%v=%v", node.key, node.val)
	})
	_, _ = builder.WriteString("}")
	return builder.String()
}

type RBTreeOpt[K any, V any] func(*rbTree[K, V])

// WithRBTreeDesc orders the keys from the greatest to the least.
func WithRBTreeDesc[K any, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isDesc = true
	}
}

// WithRBTreeRemoveBorrowPred makes the removal of a node with two children
// borrow the in-order predecessor instead of the successor.
func WithRBTreeRemoveBorrowPred[K any, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isRmBorrowPred = true
	}
}

func NewRBTree[K infra.OrderedKey, V any](opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	return NewRBTreeFunc[K, V](infra.NaturalOrderComparator[K](), opts...)
}

// NewRBTreeFunc builds a tree over arbitrary keys ordered by cmp.
func NewRBTreeFunc[K any, V any](cmp infra.KeyComparator[K], opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	if cmp == nil {
		panic("[rbtree] nil key comparator")
	}
	tree := &rbTree[K, V]{
		cmp: cmp,
	}
	for _, o := range opts {
		if o != nil {
			o(tree)
		}
	}
	return tree
}
