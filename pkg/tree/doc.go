/*
Package tree implements an insert-only binary search tree with a fixed geometric layout.

Nodes live in an arena and are addressed by NodeID. Each node gets its position once, at
insertion time: children sit one vertical unit below their parent and are shifted sideways
by the horizontal unit halved once per level of the parent, so sibling subtrees never
overlap however deep the tree grows.

The tree never draws anything itself. The animated paths ask a ports.Renderer for hidden
visuals and return a domain.Plan describing how to show them; a ports.Player runs the plan.

	t := tree.New(tree.DefaultConfig())
	for _, v := range []float64{8, 3, 10} {
		t.Insert(v)
	}
	if err := t.Materialize(ctx, renderer); err != nil {
		return err
	}
	plan, err := t.RevealPlan(domain.PreOrder, 100*time.Millisecond)
*/
package tree
