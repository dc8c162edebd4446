package player_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/player"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	cues []domain.Cue
	at   []time.Duration
	t0   time.Time
}

func (r *recorder) Apply(_ context.Context, cue domain.Cue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, cue)
	r.at = append(r.at, time.Since(r.t0))
	return nil
}

func TestTimed_Contract(t *testing.T) {
	scene := memory.NewScene()
	ports.RunPlayerContract(t, scene, player.NewTimed(scene))
}

func TestTimed_PacesCues(t *testing.T) {
	scene := memory.NewScene()
	a, err := scene.CreateNode(context.Background(), domain.NodeShape{Radius: 50})
	require.NoError(t, err)
	b, err := scene.CreateNode(context.Background(), domain.NodeShape{Radius: 50})
	require.NoError(t, err)

	plan := domain.Sequence(
		domain.Leaf(domain.Reveal(a, 40*time.Millisecond)),
		domain.Leaf(domain.Reveal(b, 40*time.Millisecond)),
	)

	rec := &recorder{t0: time.Now()}
	p := player.NewTimed(player.Fanout(scene, rec))

	require.NoError(t, p.Play(context.Background(), plan))
	elapsed := time.Since(rec.t0)

	require.Len(t, rec.cues, 2)
	assert.Equal(t, a, rec.cues[0].Step.Target)
	assert.Equal(t, b, rec.cues[1].Step.Target)
	assert.GreaterOrEqual(t, rec.at[1], 40*time.Millisecond, "second cue must wait for the first")
	assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "play returns after the plan duration")
	assert.Equal(t, 2, scene.Visible())
}

func TestTimed_Speed(t *testing.T) {
	scene := memory.NewScene()
	h, err := scene.CreateNode(context.Background(), domain.NodeShape{Radius: 50})
	require.NoError(t, err)

	p := player.NewTimed(scene, player.WithSpeed(1000))
	start := time.Now()
	require.NoError(t, p.Play(context.Background(), domain.Leaf(domain.Reveal(h, 10*time.Second))))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestTimed_CancelMidPlan(t *testing.T) {
	scene := memory.NewScene()
	a, _ := scene.CreateNode(context.Background(), domain.NodeShape{Radius: 50})
	b, _ := scene.CreateNode(context.Background(), domain.NodeShape{Radius: 50})

	plan := domain.Sequence(
		domain.Leaf(domain.Reveal(a, time.Millisecond)),
		domain.Leaf(domain.Reveal(b, time.Hour)),
		domain.Leaf(domain.Stroke(a, "#ffffff", time.Millisecond)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := player.NewTimed(scene).Play(ctx, plan)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	shape, ok := scene.Shape(a)
	require.True(t, ok)
	assert.Equal(t, 1.0, shape.End)
	assert.NotEqual(t, "#ffffff", shape.Stroke, "cue after the cancellation point must not run")
}

func TestTimed_SinkError(t *testing.T) {
	boom := errors.New("boom")
	sink := player.SinkFunc(func(context.Context, domain.Cue) error { return boom })

	plan := domain.Leaf(domain.Reveal(domain.NewHandle("node-1"), time.Millisecond))
	err := player.NewTimed(sink).Play(context.Background(), plan)
	assert.ErrorIs(t, err, boom)
}
