package tree

import (
	"fmt"
	"io"
)

// Dump writes the tree shape, one node per line, annotated with the
// node color:
//
//	└── 5(B) -> v5
//	    ├── 3(R) -> v3
//	    │   ├── 2(B) -> v2
//	    │   └── 4(B) -> v4
//	    └── 7(R) -> v7
func Dump[K any, V any](w io.Writer, tree RBTree[K, V]) error {
	if tree == nil || tree.Root() == nil {
		_, err := io.WriteString(w, "(empty)\n")
		return err
	}
	return dumpNode[K, V](w, tree.Root(), "", true)
}

func dumpNode[K any, V any](w io.Writer, node RBNode[K, V], prefix string, tail bool) error {
	connector, childPrefix := "├── ", prefix+"│   "
	if tail {
		connector, childPrefix = "└── ", prefix+"    "
	}
	if _, err := fmt.Fprintf(w, "%s%s%v(%s) -> %v\n",
		prefix, connector, node.Key(), node.Color().String()[:1], node.Val(),
	); err != nil {
		return err
	}

	l, r := node.Left(), node.Right()
	if l != nil {
		if err := dumpNode[K, V](w, l, childPrefix, r == nil); err != nil {
			return err
		}
	}
	if r != nil {
		return dumpNode[K, V](w, r, childPrefix, true)
	}
	return nil
}
