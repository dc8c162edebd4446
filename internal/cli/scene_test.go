package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScene_Default(t *testing.T) {
	scene := config.Default()
	v, err := cli.NewVisualizer(scene, cli.PlayOptions{})
	require.NoError(t, err)

	require.NoError(t, cli.RunScene(context.Background(), v, scene))
	assert.Equal(t, 12, v.Len())
	assert.Equal(t, []float64{8, 3, 1, 0, 2, 6, 4, 7, 10, 14, 13, 20}, v.Values(domain.PreOrder))
	for _, h := range v.Refs(domain.PreOrder) {
		assert.True(t, h.Bound)
	}
}

func TestRunScene_LiveTimeline(t *testing.T) {
	scene := config.Default()
	scene.Values = []float64{8, 3}
	scene.Animate = []float64{10}
	scene.Highlight = true

	var out bytes.Buffer
	v, err := cli.NewVisualizer(scene, cli.PlayOptions{Live: true, Speed: 1000, Out: &out})
	require.NoError(t, err)

	require.NoError(t, cli.RunScene(context.Background(), v, scene))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// reveal: 3 visuals; insert 10: 1 cue + 2 reveals; highlight: 3 nodes x 3 steps
	assert.Len(t, lines, 3+3+9)
	assert.Contains(t, lines[0], "reveal")
	assert.Contains(t, lines[0], " 8 ")
	assert.Contains(t, lines[3], "#fab387", "10 goes right of 8")
}

func TestRunScene_Cancelled(t *testing.T) {
	scene := config.Default()
	v, err := cli.NewVisualizer(scene, cli.PlayOptions{Live: true})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = cli.RunScene(ctx, v, scene)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 10, v.Len(), "the reveal was interrupted before any animated insert")
}

func TestRunScene_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	scene := config.Default()
	scene.Values = []float64{2, 1, 3}
	scene.Animate = nil

	v, err := cli.NewVisualizer(scene, cli.PlayOptions{RedisAddr: mr.Addr(), RedisPrefix: "t:"})
	require.NoError(t, err)
	require.NoError(t, cli.RunScene(context.Background(), v, scene))

	assert.Equal(t, "5", mustGet(t, mr, "t:seq"), "three nodes and two edges")
	keys, err := mr.HKeys("t:shapes")
	require.NoError(t, err)
	assert.Len(t, keys, 5)
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, cli.HandleExecutionError(nil))
	assert.NoError(t, cli.HandleExecutionError(context.Canceled))
	assert.Error(t, cli.HandleExecutionError(context.DeadlineExceeded))
}

func TestDescribeAndLayout(t *testing.T) {
	scene := config.Default()
	v, err := cli.NewVisualizer(scene, cli.PlayOptions{})
	require.NoError(t, err)
	require.NoError(t, cli.BuildScene(context.Background(), v, scene))

	md := cli.Describe(v)
	assert.Contains(t, md, "# bst")
	assert.Contains(t, md, "10 nodes, 4 levels")
	assert.Contains(t, md, "- **in-order**: 1 3 4 6 7 8 10 13 14 20")
	assert.Contains(t, md, "| 3 | 1 | `(-300, -200)` | 8 | left |")

	assert.Contains(t, md, "## Horizontal layout")

	var tbl bytes.Buffer
	cli.WriteLayoutTable(&tbl, v)
	assert.Contains(t, tbl.String(), "PARENT")
	assert.Contains(t, tbl.String(), "-450")

	layout := strings.Split(strings.TrimSpace(cli.Layout(v)), "\n")
	require.Len(t, layout, 10)
	assert.Equal(t, "8\t0\t(0, -400)", layout[0])
}
