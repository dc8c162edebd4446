package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_FromVisualizer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	v, err := arbor.New(arbor.WithName("demo"), arbor.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, v.Insert(ctx, 8, 3, 10))
	require.NoError(t, v.Reveal(ctx, domain.PreOrder, 0))
	_, err = v.AnimateInsert(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Inserts.WithLabelValues("demo", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Inserts.WithLabelValues("demo", "true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Plans.WithLabelValues("demo", "ok")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PlanDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Depth))
}

func TestMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestMetrics_PlanError(t *testing.T) {
	m, err := observability.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.Hooks().OnPlan(context.Background(), &domain.PlanEvent{
		EventBase: domain.EventBase{Scene: "s"},
		Err:       errors.New("interrupted"),
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Plans.WithLabelValues("s", "error")))
}

func TestChain_LogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var inserts int
	counter := domain.LifecycleHooks{
		OnInsert: func(context.Context, *domain.InsertEvent) { inserts++ },
	}
	hooks := observability.Chain(observability.LogHooks(logger), counter)

	ctx := context.Background()
	hooks.OnInsert(ctx, &domain.InsertEvent{Value: 8, Position: domain.Pt(0, -400)})
	hooks.OnPlan(ctx, &domain.PlanEvent{Name: "reveal pre-order", Steps: 3})
	hooks.OnPlan(ctx, &domain.PlanEvent{Name: "insert 2", Err: context.Canceled})

	assert.Equal(t, 1, inserts)
	out := buf.String()
	assert.Contains(t, out, "msg=Inserted")
	assert.Contains(t, out, "value=8")
	assert.Contains(t, out, `plan="reveal pre-order"`)
	assert.Contains(t, out, "level=WARN")
}
