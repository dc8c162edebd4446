package tree

import "github.com/aretw0/arbor/pkg/domain"

// Walk visits the subtree rooted at id in the given order.
// An absent id visits nothing.
func (t *Tree) Walk(id NodeID, order domain.Order, visit func(Node)) {
	if !t.has(id) {
		return
	}
	n := t.nodes[id]
	if order == domain.PreOrder {
		visit(n)
	}
	t.Walk(n.Left, order, visit)
	if order == domain.InOrder {
		visit(n)
	}
	t.Walk(n.Right, order, visit)
	if order == domain.PostOrder {
		visit(n)
	}
}

// Traverse returns the ids of the subtree rooted at id in the given order.
func (t *Tree) Traverse(id NodeID, order domain.Order) []NodeID {
	var out []NodeID
	t.Walk(id, order, func(n Node) {
		out = append(out, n.ID)
	})
	return out
}

// TraversePreOrder is the draw order used when materializing a tree.
func (t *Tree) TraversePreOrder(id NodeID) []NodeID {
	return t.Traverse(id, domain.PreOrder)
}

// Values returns the keys of the whole tree in the given order.
func (t *Tree) Values(order domain.Order) []float64 {
	var out []float64
	t.Walk(t.root, order, func(n Node) {
		out = append(out, n.Value)
	})
	return out
}

// CollectRefs returns the visual handles of the subtree rooted at id in the given order.
// Each visited node contributes its own handle followed by its incoming edge; a node without
// a parent contributes only its own handle, so a whole tree of N nodes yields 2N-1 refs.
// Unbound handles are returned as they are.
func (t *Tree) CollectRefs(id NodeID, order domain.Order) []domain.Handle {
	var out []domain.Handle
	t.Walk(id, order, func(n Node) {
		out = append(out, n.Handle)
		if !n.IsRoot() {
			out = append(out, n.Edge)
		}
	})
	return out
}
