package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRendererContract runs a suite of tests to verify that a Renderer implementation
// adheres to the defined interface contract.
func RunRendererContract(t *testing.T, renderer Renderer) {
	ctx := context.Background()
	theme := domain.DefaultTheme()

	t.Run("Handles are bound and unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 3; i++ {
			node, err := renderer.CreateNode(ctx, domain.NodeShape{
				Position:  domain.Pt(float64(i)*100, 0),
				Radius:    theme.NodeRadius,
				Label:     "n",
				Stroke:    theme.Stroke,
				LineWidth: theme.LineWidth,
			})
			require.NoError(t, err)
			assert.True(t, node.Bound, "node handle should be bound")
			assert.False(t, seen[node.ID], "duplicate handle %s", node.ID)
			seen[node.ID] = true

			edge, err := renderer.CreateEdge(ctx, domain.EdgeShape{
				From:      domain.Pt(0, 0),
				To:        domain.Pt(float64(i)*100, 200),
				Stroke:    theme.Stroke,
				LineWidth: theme.LineWidth,
			})
			require.NoError(t, err)
			assert.True(t, edge.Bound, "edge handle should be bound")
			assert.False(t, seen[edge.ID], "duplicate handle %s", edge.ID)
			seen[edge.ID] = true
		}
	})
}

// RunPlayerContract verifies that a Player accepts plans built from handles issued by
// renderer and rejects unbound targets.
func RunPlayerContract(t *testing.T, renderer Renderer, player Player) {
	ctx := context.Background()

	t.Run("Plays bound plan", func(t *testing.T) {
		node, err := renderer.CreateNode(ctx, domain.NodeShape{Radius: 50})
		require.NoError(t, err)
		edge, err := renderer.CreateEdge(ctx, domain.EdgeShape{To: domain.Pt(0, 200)})
		require.NoError(t, err)

		plan := domain.Stagger(time.Millisecond,
			domain.Leaf(domain.Reveal(node, time.Millisecond)),
			domain.Leaf(domain.Reveal(edge, time.Millisecond)),
		)
		assert.NoError(t, player.Play(ctx, plan))
	})

	t.Run("Empty plan", func(t *testing.T) {
		assert.NoError(t, player.Play(ctx, domain.Sequence()))
	})

	t.Run("Unbound target", func(t *testing.T) {
		plan := domain.Sequence(domain.Leaf(domain.Reveal(domain.Handle{}, time.Millisecond)))
		assert.ErrorIs(t, player.Play(ctx, plan), domain.ErrHandleUnbound)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		node, err := renderer.CreateNode(ctx, domain.NodeShape{Radius: 50})
		require.NoError(t, err)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err = player.Play(cctx, domain.Sequence(domain.Leaf(domain.Reveal(node, time.Millisecond))))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
