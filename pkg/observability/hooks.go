package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	Inserts      *prometheus.CounterVec
	Depth        prometheus.Histogram
	Plans        *prometheus.CounterVec
	PlanDuration *prometheus.HistogramVec
	PlanSteps    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Inserts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_inserts_total",
				Help: "Total number of values inserted",
			},
			[]string{"scene", "animated"},
		),
		Depth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "arbor_insert_depth",
				Help:    "Depth at which values were inserted",
				Buckets: prometheus.LinearBuckets(0, 1, 12),
			},
		),
		Plans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_plans_total",
				Help: "Total number of animation plans played",
			},
			[]string{"scene", "status"},
		),
		PlanDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arbor_plan_duration_seconds",
				Help:    "Scheduled duration of played plans",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
			[]string{"scene"},
		),
		PlanSteps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "arbor_plan_steps",
				Help:    "Number of steps per played plan",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
		),
	}

	for _, c := range []prometheus.Collector{m.Inserts, m.Depth, m.Plans, m.PlanDuration, m.PlanSteps} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks records every event into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInsert: func(_ context.Context, e *domain.InsertEvent) {
			animated := "false"
			if e.Animated {
				animated = "true"
			}
			m.Inserts.WithLabelValues(e.Scene, animated).Inc()
			m.Depth.Observe(float64(e.Depth))
		},
		OnPlan: func(_ context.Context, e *domain.PlanEvent) {
			status := "ok"
			if e.Err != nil {
				status = "error"
			}
			m.Plans.WithLabelValues(e.Scene, status).Inc()
			m.PlanDuration.WithLabelValues(e.Scene).Observe(e.Duration.Seconds())
			m.PlanSteps.Observe(float64(e.Steps))
		},
	}
}

// LogHooks logs every event at debug level, plan failures at warn.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInsert: func(ctx context.Context, e *domain.InsertEvent) {
			logger.DebugContext(ctx, "Inserted",
				"value", e.Value,
				"depth", e.Depth,
				"position", e.Position.String(),
				"animated", e.Animated,
			)
		},
		OnPlan: func(ctx context.Context, e *domain.PlanEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "Plan interrupted", "plan", e.Name, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "Played",
				"plan", e.Name,
				"steps", e.Steps,
				"duration", e.Duration,
			)
		},
	}
}

// Chain calls each set of hooks in order. Nil callbacks are skipped.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInsert: func(ctx context.Context, e *domain.InsertEvent) {
			for _, h := range hooks {
				if h.OnInsert != nil {
					h.OnInsert(ctx, e)
				}
			}
		},
		OnPlan: func(ctx context.Context, e *domain.PlanEvent) {
			for _, h := range hooks {
				if h.OnPlan != nil {
					h.OnPlan(ctx, e)
				}
			}
		},
	}
}
