package tree

import (
	"fmt"
	"math"

	"github.com/aretw0/arbor/pkg/domain"
)

// Config fixes the layout of a tree for its whole lifetime.
type Config struct {
	Origin         domain.Point `json:"origin" yaml:"origin" mapstructure:"origin"`
	HorizontalUnit float64      `json:"horizontal_unit" yaml:"horizontal_unit" mapstructure:"horizontal_unit"`
	VerticalUnit   float64      `json:"vertical_unit" yaml:"vertical_unit" mapstructure:"vertical_unit"`
}

// DefaultConfig returns the layout of the reference scene.
func DefaultConfig() Config {
	return Config{
		Origin:         domain.Pt(0, -400),
		HorizontalUnit: 300,
		VerticalUnit:   200,
	}
}

// Tree is an insert-only binary search tree over float64 keys.
// Keys must not be NaN. A Tree is not safe for concurrent use.
type Tree struct {
	cfg   Config
	theme domain.Theme
	nodes []Node
	root  NodeID
}

// Option defines a functional option for configuring the Tree.
type Option func(*Tree)

// WithTheme sets the colors, sizes and timings used by the animated paths.
func WithTheme(theme domain.Theme) Option {
	return func(t *Tree) {
		t.theme = theme
	}
}

// New creates an empty tree.
func New(cfg Config, opts ...Option) *Tree {
	t := &Tree{
		cfg:   cfg,
		theme: domain.DefaultTheme(),
		root:  None,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Config returns the layout configuration.
func (t *Tree) Config() Config { return t.cfg }

// Theme returns the theme used for visuals and plans.
func (t *Tree) Theme() domain.Theme { return t.theme }

// Root returns the root id, or None for an empty tree.
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns a snapshot of the node with the given id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if !t.has(id) {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Nodes returns snapshots of every node in insertion order.
func (t *Tree) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// IsLeftChild reports whether id occupies its parent's left slot.
func (t *Tree) IsLeftChild(id NodeID) bool {
	if !t.has(id) {
		return false
	}
	p := t.nodes[id].Parent
	return p != None && t.nodes[p].Left == id
}

// Height returns the number of levels (0 for an empty tree).
func (t *Tree) Height() int {
	h := 0
	for _, n := range t.nodes {
		h = max(h, n.Depth+1)
	}
	return h
}

// Find returns the first node holding value on the search path.
func (t *Tree) Find(value float64) (NodeID, bool) {
	cur := t.root
	for cur != None {
		n := t.nodes[cur]
		switch {
		case value == n.Value:
			return cur, true
		case value < n.Value:
			cur = n.Left
		default:
			cur = n.Right
		}
	}
	return None, false
}

func (t *Tree) has(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// probe records one comparison made while searching for an insertion slot.
type probe struct {
	id   NodeID
	less bool
}

// ChildOffset returns the displacement of a child from a parent at the given depth.
func (c Config) ChildOffset(parentDepth int, left bool) domain.Point {
	dx := math.Ldexp(c.HorizontalUnit, -parentDepth)
	if left {
		dx = -dx
	}
	return domain.Pt(dx, c.VerticalUnit)
}

// descend walks from the root to the empty slot where value belongs.
// It returns the comparisons made and the position of the new node.
func (t *Tree) descend(value float64) ([]probe, domain.Point) {
	if t.root == None {
		return nil, t.cfg.Origin
	}
	var path []probe
	cur := t.root
	for {
		n := t.nodes[cur]
		less := value < n.Value
		path = append(path, probe{id: cur, less: less})

		next := n.Right
		if less {
			next = n.Left
		}
		if next == None {
			return path, n.Position.Add(t.cfg.ChildOffset(n.Depth, less))
		}
		cur = next
	}
}

// link appends a node at the slot found by descend.
func (t *Tree) link(path []probe, value float64, pos domain.Point) NodeID {
	id := NodeID(len(t.nodes))
	n := Node{
		ID:       id,
		Value:    value,
		Position: pos,
		Parent:   None,
		Left:     None,
		Right:    None,
	}
	if len(path) == 0 {
		t.nodes = append(t.nodes, n)
		t.root = id
		return id
	}

	last := path[len(path)-1]
	parent := &t.nodes[last.id]
	n.Parent = last.id
	n.Depth = parent.Depth + 1
	if last.less {
		parent.Left = id
	} else {
		parent.Right = id
	}
	t.nodes = append(t.nodes, n)
	return id
}

// Insert adds value without touching any visual and returns the new node's id.
// Values equal to an existing key go to its right subtree.
func (t *Tree) Insert(value float64) NodeID {
	path, pos := t.descend(value)
	return t.link(path, value, pos)
}

func (t *Tree) bind(id NodeID, node, edge domain.Handle) error {
	n := &t.nodes[id]
	if node.Bound {
		if err := n.Handle.Bind(node.ID); err != nil {
			return fmt.Errorf("node %d: %w", id, err)
		}
	}
	if edge.Bound {
		if n.Parent == None {
			return fmt.Errorf("node %d is the root and has no incoming edge", id)
		}
		if err := n.Edge.Bind(edge.ID); err != nil {
			return fmt.Errorf("edge of node %d: %w", id, err)
		}
	}
	return nil
}
