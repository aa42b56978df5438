package mfm

// Inspect traverses the tree depth-first in document order, calling fn for every node. When fn
// returns false the children of that node are skipped. The body of a [Plain] is visited as its child.
func Inspect(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		inspect(n, fn)
	}
}

func inspectInlines(nodes []Inline, fn func(Node) bool) {
	for _, n := range nodes {
		inspect(n, fn)
	}
}

func inspect(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}

	switch n := n.(type) {
	case Quote:
		Inspect(n.Children, fn)
	case Center:
		inspectInlines(n.Children, fn)
	case Bold:
		inspectInlines(n.Children, fn)
	case Small:
		inspectInlines(n.Children, fn)
	case Italic:
		inspectInlines(n.Children, fn)
	case Strike:
		inspectInlines(n.Children, fn)
	case Link:
		inspectInlines(n.Children, fn)
	case Fn:
		inspectInlines(n.Children, fn)
	case Plain:
		inspect(n.Body, fn)
	}
}

// Extract returns the nodes of the tree matching pred, in document order.
func Extract(nodes []Node, pred func(Node) bool) []Node {
	var out []Node
	Inspect(nodes, func(n Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Collect returns every node of type T in the tree, in document order.
//
//	mentions := mfm.Collect[mfm.Mention](nodes)
func Collect[T Node](nodes []Node) []T {
	var out []T
	Inspect(nodes, func(n Node) bool {
		if v, ok := n.(T); ok {
			out = append(out, v)
		}
		return true
	})
	return out
}
