package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
)

// ErrUnknownHandle is returned when a step targets a handle this scene never issued.
var ErrUnknownHandle = errors.New("unknown handle")

// ShapeKind tells node visuals from edge visuals.
type ShapeKind string

const (
	KindNode ShapeKind = "node"
	KindEdge ShapeKind = "edge"
)

// Shape is the current state of one visual.
type Shape struct {
	Handle domain.Handle     `json:"handle"`
	Kind   ShapeKind         `json:"kind"`
	Node   *domain.NodeShape `json:"node,omitempty"`
	Edge   *domain.EdgeShape `json:"edge,omitempty"`

	// End is the drawn fraction: 0 hidden, 1 fully revealed.
	End       float64 `json:"end"`
	Stroke    string  `json:"stroke"`
	LineWidth float64 `json:"line_width"`
	Scale     float64 `json:"scale"`
}

// Scene implements ports.Renderer and ports.Player in memory.
// Steps are applied instantly, in timeline order. Safe for concurrent use.
type Scene struct {
	mu     sync.RWMutex
	shapes map[string]*Shape
	order  []string
	played []domain.Cue
	seq    int
}

// NewScene creates an empty in-memory scene.
func NewScene() *Scene {
	return &Scene{
		shapes: make(map[string]*Shape),
	}
}

// CreateNode registers a hidden node visual.
func (s *Scene) CreateNode(ctx context.Context, shape domain.NodeShape) (domain.Handle, error) {
	if err := ctx.Err(); err != nil {
		return domain.Handle{}, err
	}
	return s.add(&Shape{
		Kind:      KindNode,
		Node:      &shape,
		Stroke:    shape.Stroke,
		LineWidth: shape.LineWidth,
		Scale:     1,
	}), nil
}

// CreateEdge registers a zero-length edge visual.
func (s *Scene) CreateEdge(ctx context.Context, shape domain.EdgeShape) (domain.Handle, error) {
	if err := ctx.Err(); err != nil {
		return domain.Handle{}, err
	}
	return s.add(&Shape{
		Kind:      KindEdge,
		Edge:      &shape,
		Stroke:    shape.Stroke,
		LineWidth: shape.LineWidth,
		Scale:     1,
	}), nil
}

func (s *Scene) add(shape *Shape) domain.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	h := domain.NewHandle(fmt.Sprintf("%s-%d", shape.Kind, s.seq))
	shape.Handle = h
	s.shapes[h.ID] = shape
	s.order = append(s.order, h.ID)
	return h
}

// Play applies every step of the plan in timeline order.
func (s *Scene) Play(ctx context.Context, plan domain.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	for _, cue := range plan.Timeline() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Apply(ctx, cue); err != nil {
			return err
		}
	}
	return nil
}

// Apply changes one visual as the cue says. It lets a pacing player drive the scene.
func (s *Scene) Apply(_ context.Context, cue domain.Cue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := cue.Step
	shape, ok := s.shapes[step.Target.ID]
	if !ok {
		return fmt.Errorf("%s step on %q: %w", step.Kind, step.Target.ID, ErrUnknownHandle)
	}
	switch step.Kind {
	case domain.StepReveal:
		shape.End = step.Value
	case domain.StepStroke:
		shape.Stroke = step.Color
	case domain.StepLineWidth:
		shape.LineWidth = step.Value
	case domain.StepScale:
		shape.Scale = step.Value
	default:
		return fmt.Errorf("unsupported step kind %q", step.Kind)
	}
	s.played = append(s.played, cue)
	return nil
}

// Shape returns a copy of the visual behind h.
func (s *Scene) Shape(h domain.Handle) (Shape, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shape, ok := s.shapes[h.ID]
	if !ok {
		return Shape{}, false
	}
	return *shape, true
}

// Shapes returns copies of every visual in creation order.
func (s *Scene) Shapes() []Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Shape, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.shapes[id])
	}
	return out
}

// Visible returns how many visuals are fully revealed.
func (s *Scene) Visible() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, shape := range s.shapes {
		if shape.End >= 1 {
			n++
		}
	}
	return n
}

// Played returns every cue applied so far, in application order.
func (s *Scene) Played() []domain.Cue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Cue, len(s.played))
	copy(out, s.played)
	return out
}
