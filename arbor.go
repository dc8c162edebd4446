package arbor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/tree"
)

// Visualizer is the high-level entry point for the Arbor library.
// It owns one tree and plays the plans it produces. Its methods are serialized, so one
// Visualizer can back several adapters (HTTP, MCP) at once.
type Visualizer struct {
	mu       sync.Mutex
	tree     *tree.Tree
	cfg      tree.Config
	theme    domain.Theme
	renderer ports.Renderer
	player   ports.Player
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	Name     string
}

// Option defines a functional option for configuring the Visualizer.
type Option func(*Visualizer)

// WithConfig sets the layout (origin and spacing units).
func WithConfig(cfg tree.Config) Option {
	return func(v *Visualizer) {
		v.cfg = cfg
	}
}

// WithTheme sets colors, sizes and timings.
func WithTheme(theme domain.Theme) Option {
	return func(v *Visualizer) {
		v.theme = theme
	}
}

// WithRenderer injects the Renderer that creates visuals.
// If it also implements ports.Player and no player is given, it is used for playback too.
func WithRenderer(r ports.Renderer) Option {
	return func(v *Visualizer) {
		v.renderer = r
	}
}

// WithPlayer injects the Player that runs plans.
func WithPlayer(p ports.Player) Option {
	return func(v *Visualizer) {
		v.player = p
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(v *Visualizer) {
		v.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Visualizer) {
		v.logger = logger
	}
}

// WithName labels the scene in logs and events.
func WithName(name string) Option {
	return func(v *Visualizer) {
		v.Name = name
	}
}

// New initializes a Visualizer with an empty tree.
// Without WithRenderer/WithPlayer it renders into an in-memory scene.
func New(opts ...Option) (*Visualizer, error) {
	v := &Visualizer{
		cfg:   tree.DefaultConfig(),
		theme: domain.DefaultTheme(),
	}
	for _, opt := range opts {
		opt(v)
	}

	if err := ValidateConfig(v.cfg); err != nil {
		return nil, err
	}

	if v.renderer == nil && v.player == nil {
		scene := memory.NewScene()
		v.renderer, v.player = scene, scene
	}
	if v.player == nil {
		p, ok := v.renderer.(ports.Player)
		if !ok {
			return nil, fmt.Errorf("renderer %T cannot play plans and no player was given", v.renderer)
		}
		v.player = p
	}
	if v.renderer == nil {
		return nil, fmt.Errorf("player given without a renderer")
	}

	// Ensure logger is initialized (so callers never see a nil logger)
	if v.logger == nil {
		v.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if v.Name != "" {
		v.logger = v.logger.With("scene", v.Name)
	}

	v.tree = tree.New(v.cfg, tree.WithTheme(v.theme))
	return v, nil
}

// ValidateConfig checks that spacing units are positive and every coordinate is finite.
func ValidateConfig(cfg tree.Config) error {
	for name, f := range map[string]float64{
		"origin.x":        cfg.Origin.X,
		"origin.y":        cfg.Origin.Y,
		"horizontal_unit": cfg.HorizontalUnit,
		"vertical_unit":   cfg.VerticalUnit,
	} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%s must be finite: %w", name, domain.ErrInvalidConfig)
		}
	}
	if cfg.HorizontalUnit <= 0 || cfg.VerticalUnit <= 0 {
		return fmt.Errorf("spacing units must be positive: %w", domain.ErrInvalidConfig)
	}
	return nil
}

func checkValue(value float64) error {
	if math.IsNaN(value) {
		return fmt.Errorf("NaN has no order: %w", domain.ErrInvalidValue)
	}
	return nil
}

// Insert adds values without any animation.
// Nothing is inserted if any value is invalid.
func (v *Visualizer) Insert(ctx context.Context, values ...float64) error {
	for _, value := range values {
		if err := checkValue(value); err != nil {
			return err
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for _, value := range values {
		id := v.tree.Insert(value)
		v.emitInsert(ctx, id, false)
	}
	return nil
}

// AnimateInsert inserts value, plays the descent cues and reveal, and returns once
// playback has finished. Visuals for nodes inserted silently are created first.
func (v *Visualizer) AnimateInsert(ctx context.Context, value float64) (tree.Node, error) {
	if err := checkValue(value); err != nil {
		return tree.Node{}, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.tree.Materialize(ctx, v.renderer); err != nil {
		return tree.Node{}, err
	}
	id, plan, err := v.tree.InsertAnimated(ctx, value, v.renderer)
	if err != nil {
		return tree.Node{}, fmt.Errorf("insert %s: %w", tree.FormatValue(value), err)
	}
	v.emitInsert(ctx, id, true)

	n, _ := v.tree.Node(id)
	if err := v.play(ctx, "insert "+n.Label(), plan); err != nil {
		return n, err
	}
	return n, nil
}

// Reveal draws every visual of the tree in the given order, each starting stagger after
// the previous one. A non-positive stagger uses the theme's traversal stagger.
func (v *Visualizer) Reveal(ctx context.Context, order domain.Order, stagger time.Duration) error {
	if stagger <= 0 {
		stagger = v.theme.TraversalStagger
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.tree.Materialize(ctx, v.renderer); err != nil {
		return err
	}
	plan, err := v.tree.RevealPlan(order, stagger)
	if err != nil {
		return err
	}
	return v.play(ctx, "reveal "+order.String()+"-order", plan)
}

// Highlight emphasizes the first node holding value.
func (v *Visualizer) Highlight(ctx context.Context, value float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	id, ok := v.tree.Find(value)
	if !ok {
		return fmt.Errorf("highlight %s: %w", tree.FormatValue(value), domain.ErrNodeNotFound)
	}
	plan, err := v.tree.Highlight(id)
	if err != nil {
		return err
	}
	return v.play(ctx, "highlight "+tree.FormatValue(value), plan)
}

// HighlightTraversal narrates a pre-order walk, highlighting one node at a time.
func (v *Visualizer) HighlightTraversal(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	plan, err := v.tree.HighlightTraversal(v.tree.Root())
	if err != nil {
		return err
	}
	return v.play(ctx, "highlight traversal", plan)
}

// Nodes returns the tree's nodes in the given order.
func (v *Visualizer) Nodes(order domain.Order) []tree.Node {
	v.mu.Lock()
	defer v.mu.Unlock()

	var out []tree.Node
	v.tree.Walk(v.tree.Root(), order, func(n tree.Node) {
		out = append(out, n)
	})
	return out
}

// Values returns the tree's keys in the given order.
func (v *Visualizer) Values(order domain.Order) []float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tree.Values(order)
}

// Refs returns the visual handles of the tree in the given order.
func (v *Visualizer) Refs(order domain.Order) []domain.Handle {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tree.CollectRefs(v.tree.Root(), order)
}

// Len returns the number of nodes.
func (v *Visualizer) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tree.Len()
}

// Height returns the number of levels.
func (v *Visualizer) Height() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tree.Height()
}

// Config returns the layout configuration.
func (v *Visualizer) Config() tree.Config { return v.cfg }

// Theme returns the theme.
func (v *Visualizer) Theme() domain.Theme { return v.theme }

func (v *Visualizer) play(ctx context.Context, name string, plan domain.Plan) error {
	v.logger.Debug("Play", "plan", name, "steps", plan.Len(), "duration", plan.Duration())
	err := v.player.Play(ctx, plan)
	if err != nil {
		v.logger.Error("Play failed", "plan", name, "error", err)
		err = fmt.Errorf("play %s: %w", name, err)
	}
	if v.hooks.OnPlan != nil {
		v.hooks.OnPlan(ctx, &domain.PlanEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPlan, Scene: v.Name},
			Name:      name,
			Steps:     plan.Len(),
			Duration:  plan.Duration(),
			Err:       err,
		})
	}
	return err
}

func (v *Visualizer) emitInsert(ctx context.Context, id tree.NodeID, animated bool) {
	n, _ := v.tree.Node(id)
	v.logger.Debug("Insert", "value", n.Value, "depth", n.Depth, "position", n.Position.String(), "animated", animated)
	if v.hooks.OnInsert != nil {
		v.hooks.OnInsert(ctx, &domain.InsertEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventInsert, Scene: v.Name},
			Value:     n.Value,
			Depth:     n.Depth,
			Position:  n.Position,
			Animated:  animated,
		})
	}
}
