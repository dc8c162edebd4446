package tree_test

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sceneValues = []float64{8, 3, 10, 1, 6, 4, 7, 14, 13, 20}

func build(values ...float64) *tree.Tree {
	t := tree.New(tree.DefaultConfig())
	for _, v := range values {
		t.Insert(v)
	}
	return t
}

func randomValues(r *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		// Small range so duplicates show up.
		out[i] = float64(r.IntN(40)) - 20
	}
	return out
}

func TestTree_ReferenceScene(t *testing.T) {
	tr := build(sceneValues...)

	assert.Equal(t, []float64{8, 3, 1, 6, 4, 7, 10, 14, 13, 20}, tr.Values(domain.PreOrder))
	assert.Equal(t, []float64{1, 3, 4, 6, 7, 8, 10, 13, 14, 20}, tr.Values(domain.InOrder))
	assert.Equal(t, []float64{1, 4, 7, 6, 3, 13, 20, 14, 10, 8}, tr.Values(domain.PostOrder))
	assert.Equal(t, 4, tr.Height())
}

func TestTree_ReferenceScenePositions(t *testing.T) {
	tr := build(sceneValues...)

	want := map[float64]domain.Point{
		8:  domain.Pt(0, -400),
		3:  domain.Pt(-300, -200),
		10: domain.Pt(300, -200),
		1:  domain.Pt(-450, 0),
		6:  domain.Pt(-150, 0),
		4:  domain.Pt(-225, 200),
		7:  domain.Pt(-75, 200),
		14: domain.Pt(450, 0),
		13: domain.Pt(375, 200),
		20: domain.Pt(525, 200),
	}
	for v, pos := range want {
		id, ok := tr.Find(v)
		require.True(t, ok, "value %v", v)
		n, _ := tr.Node(id)
		assert.Equal(t, pos, n.Position, "value %v", v)
	}
}

func TestTree_EmptyTree(t *testing.T) {
	tr := tree.New(tree.DefaultConfig())

	assert.Equal(t, tree.None, tr.Root())
	assert.Zero(t, tr.Len())
	assert.Zero(t, tr.Height())
	assert.Empty(t, tr.Traverse(tr.Root(), domain.InOrder))
	assert.Empty(t, tr.CollectRefs(tr.Root(), domain.PreOrder))
	assert.Empty(t, tr.Values(domain.PostOrder))

	_, ok := tr.Node(tree.None)
	assert.False(t, ok)
}

func TestTree_RootAtOrigin(t *testing.T) {
	cfg := tree.Config{Origin: domain.Pt(12, 34), HorizontalUnit: 100, VerticalUnit: 50}
	tr := tree.New(cfg)
	id := tr.Insert(5)

	assert.Equal(t, id, tr.Root())
	n, _ := tr.Node(id)
	assert.Equal(t, domain.Pt(12, 34), n.Position)
	assert.True(t, n.IsRoot())
	assert.Equal(t, tree.None, n.Left)
	assert.Equal(t, tree.None, n.Right)
	assert.False(t, n.Handle.Bound)
	assert.False(t, n.Edge.Bound)
}

func TestTree_DuplicatesGoRight(t *testing.T) {
	tr := build(5, 5, 5)

	root, _ := tr.Node(tr.Root())
	assert.Equal(t, tree.None, root.Left)
	right, ok := tr.Node(root.Right)
	require.True(t, ok)
	assert.Equal(t, 5.0, right.Value)
	assert.False(t, tr.IsLeftChild(right.ID))
	assert.Equal(t, []float64{5, 5, 5}, tr.Values(domain.InOrder))
}

func TestTree_BSTInvariant(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		values := randomValues(r, r.IntN(60))
		tr := build(values...)

		sorted := slices.Clone(values)
		slices.Sort(sorted)
		assert.Equal(t, sorted, nilIfEmpty(tr.Values(domain.InOrder)), "in-order must be sorted")

		for _, n := range tr.Nodes() {
			tr.Walk(n.Left, domain.PreOrder, func(d tree.Node) {
				assert.Less(t, d.Value, n.Value)
			})
			tr.Walk(n.Right, domain.PreOrder, func(d tree.Node) {
				assert.GreaterOrEqual(t, d.Value, n.Value)
			})
		}
	}
}

func nilIfEmpty(v []float64) []float64 {
	if len(v) == 0 {
		return []float64{}
	}
	return v
}

func TestTree_ParentChildLinks(t *testing.T) {
	tr := build(sceneValues...)

	refs := make(map[tree.NodeID]int)
	for _, n := range tr.Nodes() {
		for _, c := range []tree.NodeID{n.Left, n.Right} {
			if c == tree.None {
				continue
			}
			refs[c]++
			child, _ := tr.Node(c)
			assert.Equal(t, n.ID, child.Parent)
			assert.Equal(t, n.Depth+1, child.Depth)
		}
	}
	for _, n := range tr.Nodes() {
		if n.IsRoot() {
			assert.Zero(t, refs[n.ID])
			continue
		}
		assert.Equal(t, 1, refs[n.ID], "node %v must have exactly one parent slot", n.Value)
	}
}

func TestTree_TraversalCounts(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for n := 0; n < 30; n++ {
		tr := build(randomValues(r, n)...)
		for _, order := range domain.Orders {
			assert.Len(t, tr.Traverse(tr.Root(), order), n)

			want := 2*n - 1
			if n == 0 {
				want = 0
			}
			assert.Len(t, tr.CollectRefs(tr.Root(), order), want, "order %s, n=%d", order, n)
		}
	}
}

func TestTree_TraversalIsIdempotent(t *testing.T) {
	tr := build(sceneValues...)
	for _, order := range domain.Orders {
		assert.Equal(t, tr.Traverse(tr.Root(), order), tr.Traverse(tr.Root(), order))
		assert.Equal(t, tr.CollectRefs(tr.Root(), order), tr.CollectRefs(tr.Root(), order))
	}
	assert.Equal(t, sceneValues, valuesByID(tr))
}

func valuesByID(tr *tree.Tree) []float64 {
	var out []float64
	for _, n := range tr.Nodes() {
		out = append(out, n.Value)
	}
	return out
}

func TestTree_PositionalDeterminism(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	values := randomValues(r, 100)

	a, b := build(values...), build(values...)
	assert.Equal(t, a.Nodes(), b.Nodes())
}

func TestTree_OffsetDecay(t *testing.T) {
	cfg := tree.DefaultConfig()
	// Alternating zig-zag keeps every node on a fresh level.
	tr := tree.New(cfg)
	lo, hi := -1e6, 1e6
	for i := 0; i < 30; i++ {
		mid := (lo + hi) / 2
		tr.Insert(mid)
		if i%2 == 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	root, _ := tr.Node(tr.Root())
	for _, n := range tr.Nodes() {
		if n.IsRoot() {
			continue
		}
		parent, _ := tr.Node(n.Parent)
		dx := n.Position.X - parent.Position.X
		assert.InDelta(t, math.Ldexp(cfg.HorizontalUnit, -parent.Depth), math.Abs(dx), 1e-9, "depth %d", n.Depth)
		assert.Equal(t, cfg.VerticalUnit, n.Position.Y-parent.Position.Y)
		if tr.IsLeftChild(n.ID) {
			assert.Negative(t, dx)
		} else {
			assert.Positive(t, dx)
		}

		// The series H + H/2 + H/4 ... never reaches 2H from the root.
		assert.Less(t, math.Abs(n.Position.X-root.Position.X), 2*cfg.HorizontalUnit)
	}
}

func TestTree_SubtreesDoNotCross(t *testing.T) {
	tr := build(sceneValues...)
	for _, n := range tr.Nodes() {
		tr.Walk(n.Left, domain.PreOrder, func(d tree.Node) {
			assert.Less(t, d.Position.X, n.Position.X)
		})
		tr.Walk(n.Right, domain.PreOrder, func(d tree.Node) {
			assert.Greater(t, d.Position.X, n.Position.X)
		})
	}
}

func TestTree_CollectRefsOmitsRootEdge(t *testing.T) {
	tr := build(2, 1, 3)
	refs := tr.CollectRefs(tr.Root(), domain.PreOrder)
	require.Len(t, refs, 5)
	for _, h := range refs {
		assert.False(t, h.Bound, "silent insert binds nothing")
	}
}

func TestConfig_ChildOffset(t *testing.T) {
	cfg := tree.Config{HorizontalUnit: 300, VerticalUnit: 200}
	assert.Equal(t, domain.Pt(-300, 200), cfg.ChildOffset(0, true))
	assert.Equal(t, domain.Pt(150, 200), cfg.ChildOffset(1, false))
	assert.Equal(t, domain.Pt(-37.5, 200), cfg.ChildOffset(3, true))
	assert.Greater(t, cfg.ChildOffset(60, false).X, 0.0)
}
