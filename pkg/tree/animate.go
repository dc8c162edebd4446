package tree

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// InsertAnimated adds value like Insert, creating its visuals through r.
//
// The returned plan first cues every node compared on the way down (one stroke change per
// node, colored by branch), then reveals the new node and, after the theme's stagger, its
// incoming edge. The first value of an empty tree is revealed without cues.
//
// Every node on the search path must already have a bound handle. If r fails the tree is
// left unchanged. Renderers cannot delete visuals, so when CreateEdge fails the node visual
// already created stays in r, hidden and unbound to any tree node.
func (t *Tree) InsertAnimated(ctx context.Context, value float64, r ports.Renderer) (NodeID, domain.Plan, error) {
	path, pos := t.descend(value)

	cues := make([]domain.Plan, 0, len(path)+1)
	for _, p := range path {
		n := t.nodes[p.id]
		if err := n.Handle.Require(); err != nil {
			return None, domain.Plan{}, fmt.Errorf("cue node %s: %w", n.Label(), err)
		}
		color := t.theme.CueNotLess
		if p.less {
			color = t.theme.CueLess
		}
		cues = append(cues, domain.Leaf(domain.Stroke(n.Handle, color, t.theme.CueDuration)))
	}

	node, err := r.CreateNode(ctx, t.nodeShape(pos, value))
	if err != nil {
		return None, domain.Plan{}, fmt.Errorf("create node visual: %w", err)
	}

	reveal := []domain.Plan{domain.Leaf(domain.Reveal(node, t.theme.RevealDuration))}
	var edge domain.Handle
	if len(path) > 0 {
		last := path[len(path)-1]
		edge, err = r.CreateEdge(ctx, t.edgeShape(t.nodes[last.id].Position, pos, last.less))
		if err != nil {
			return None, domain.Plan{}, fmt.Errorf("create edge visual: %w", err)
		}
		reveal = append(reveal, domain.Leaf(domain.Reveal(edge, t.theme.RevealDuration)))
	}

	id := t.link(path, value, pos)
	if err := t.bind(id, node, edge); err != nil {
		return id, domain.Plan{}, err
	}

	cues = append(cues, domain.Stagger(t.theme.RevealStagger, reveal...))
	return id, domain.Sequence(cues...), nil
}

// Materialize creates hidden visuals for every node that has none, walking in pre-order and
// creating each node's visual before its incoming edge. It is the bulk counterpart of
// InsertAnimated for trees built with Insert.
func (t *Tree) Materialize(ctx context.Context, r ports.Renderer) error {
	for _, id := range t.TraversePreOrder(t.root) {
		n := t.nodes[id]
		var node, edge domain.Handle
		var err error

		if !n.Handle.Bound {
			node, err = r.CreateNode(ctx, t.nodeShape(n.Position, n.Value))
			if err != nil {
				return fmt.Errorf("create node visual %s: %w", n.Label(), err)
			}
		}
		if n.Parent != None && !n.Edge.Bound {
			parent := t.nodes[n.Parent]
			edge, err = r.CreateEdge(ctx, t.edgeShape(parent.Position, n.Position, t.IsLeftChild(id)))
			if err != nil {
				return fmt.Errorf("create edge visual %s: %w", n.Label(), err)
			}
		}
		if err := t.bind(id, node, edge); err != nil {
			return err
		}
	}
	return nil
}

// Highlight returns a one-shot emphasis of the node: stroke color, stroke width and scale
// change together. Nothing reverts it.
func (t *Tree) Highlight(id NodeID) (domain.Plan, error) {
	n, ok := t.Node(id)
	if !ok {
		return domain.Plan{}, fmt.Errorf("highlight %d: %w", id, domain.ErrNodeNotFound)
	}
	if err := n.Handle.Require(); err != nil {
		return domain.Plan{}, fmt.Errorf("highlight %s: %w", n.Label(), err)
	}
	d := t.theme.HighlightDuration
	return domain.Parallel(
		domain.Leaf(domain.Stroke(n.Handle, t.theme.Highlight, d)),
		domain.Leaf(domain.LineWidth(n.Handle, t.theme.HighlightLineWidth, d)),
		domain.Leaf(domain.Scale(n.Handle, t.theme.HighlightScale, d)),
	), nil
}

// HighlightTraversal highlights the subtree at id in pre-order, one node at a time.
func (t *Tree) HighlightTraversal(id NodeID) (domain.Plan, error) {
	ids := t.TraversePreOrder(id)
	steps := make([]domain.Plan, 0, len(ids))
	for _, nid := range ids {
		p, err := t.Highlight(nid)
		if err != nil {
			return domain.Plan{}, err
		}
		steps = append(steps, p)
	}
	return domain.Sequence(steps...), nil
}

// RevealPlan reveals the whole tree in the given order, starting each visual stagger after
// the previous one.
func (t *Tree) RevealPlan(order domain.Order, stagger time.Duration) (domain.Plan, error) {
	refs := t.CollectRefs(t.root, order)
	steps := make([]domain.Plan, 0, len(refs))
	for i, h := range refs {
		if err := h.Require(); err != nil {
			return domain.Plan{}, fmt.Errorf("reveal ref %d: %w", i, err)
		}
		steps = append(steps, domain.Leaf(domain.Reveal(h, t.theme.RevealDuration)))
	}
	return domain.Stagger(stagger, steps...), nil
}

func (t *Tree) nodeShape(pos domain.Point, value float64) domain.NodeShape {
	return domain.NodeShape{
		Position:  pos,
		Radius:    t.theme.NodeRadius,
		Label:     FormatValue(value),
		Stroke:    t.theme.Stroke,
		LineWidth: t.theme.LineWidth,
	}
}

// edgeShape runs from the parent's side anchor to the child's top anchor.
func (t *Tree) edgeShape(parent, child domain.Point, left bool) domain.EdgeShape {
	pl, pr, _ := t.theme.Anchors(parent)
	_, _, top := t.theme.Anchors(child)
	from := pr
	if left {
		from = pl
	}
	return domain.EdgeShape{
		From:      from,
		To:        top,
		Stroke:    t.theme.Stroke,
		LineWidth: t.theme.LineWidth,
	}
}
