package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventInsert EventType = "insert"
	EventPlan   EventType = "plan"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Scene     string    `json:"scene,omitempty"`
}

// InsertEvent is emitted after a value has been linked into the tree.
type InsertEvent struct {
	EventBase
	Value    float64 `json:"value"`
	Depth    int     `json:"depth"`
	Position Point   `json:"position"`
	Animated bool    `json:"animated"`
}

// PlanEvent is emitted after a plan has been played.
type PlanEvent struct {
	EventBase
	Name     string        `json:"name"`
	Steps    int           `json:"steps"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for visualizer observability.
type LifecycleHooks struct {
	OnInsert func(context.Context, *InsertEvent)
	OnPlan   func(context.Context, *PlanEvent)
}
