// Package redis streams a scene to out-of-process renderers over Redis pub/sub.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// MessageType tags every message published on the scene channel.
type MessageType string

const (
	MessageNode    MessageType = "node"
	MessageEdge    MessageType = "edge"
	MessageCue     MessageType = "cue"
	MessagePlanEnd MessageType = "plan_end"
)

// Message is the JSON payload published for each event.
// Node and edge messages carry the shape to create hidden; cue messages carry one step with
// its offset from the start of the plan.
type Message struct {
	Type     MessageType       `json:"type"`
	Handle   domain.Handle     `json:"handle,omitzero"`
	Node     *domain.NodeShape `json:"node,omitempty"`
	Edge     *domain.EdgeShape `json:"edge,omitempty"`
	Cue      *domain.Cue       `json:"cue,omitempty"`
	Duration time.Duration     `json:"duration,omitempty"`
}

// Publisher implements ports.Renderer and ports.Player on top of Redis.
// Handles come from a Redis counter so several publishers can share one scene; shapes are
// also kept in a hash so a renderer that subscribes late can catch up.
type Publisher struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Publisher)

// WithPrefix sets the key and channel prefix.
func WithPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithTTL sets the expiration of the stored shapes.
func WithTTL(ttl time.Duration) Option {
	return func(p *Publisher) {
		p.ttl = ttl
	}
}

// New creates a Publisher with its own client.
func New(address, password string, db int, opts ...Option) *Publisher {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Publisher from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		prefix: "arbor:scene:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Channel is where messages are published.
func (p *Publisher) Channel() string {
	return p.prefix + "events"
}

func (p *Publisher) seqKey() string {
	return p.prefix + "seq"
}

func (p *Publisher) shapesKey() string {
	return p.prefix + "shapes"
}

// CreateNode stores and announces a hidden node visual.
func (p *Publisher) CreateNode(ctx context.Context, shape domain.NodeShape) (domain.Handle, error) {
	h, err := p.next(ctx, "node")
	if err != nil {
		return domain.Handle{}, err
	}
	return h, p.create(ctx, Message{Type: MessageNode, Handle: h, Node: &shape})
}

// CreateEdge stores and announces a zero-length edge visual.
func (p *Publisher) CreateEdge(ctx context.Context, shape domain.EdgeShape) (domain.Handle, error) {
	h, err := p.next(ctx, "edge")
	if err != nil {
		return domain.Handle{}, err
	}
	return h, p.create(ctx, Message{Type: MessageEdge, Handle: h, Edge: &shape})
}

// Apply publishes a single cue. Paired with a timed player it streams a plan in real time.
func (p *Publisher) Apply(ctx context.Context, cue domain.Cue) error {
	return p.publish(ctx, Message{Type: MessageCue, Cue: &cue})
}

// Play publishes the whole timeline at once, followed by a plan_end message carrying the
// plan duration. Subscribers schedule cues by their offsets.
func (p *Publisher) Play(ctx context.Context, plan domain.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	for _, cue := range plan.Timeline() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Apply(ctx, cue); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.publish(ctx, Message{Type: MessagePlanEnd, Duration: plan.Duration()})
}

// Shapes returns every stored shape message keyed by handle id.
func (p *Publisher) Shapes(ctx context.Context) (map[string]Message, error) {
	raw, err := p.client.HGetAll(ctx, p.shapesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load shapes: %w", err)
	}
	out := make(map[string]Message, len(raw))
	for id, data := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(data), &msg); err != nil {
			return nil, fmt.Errorf("failed to decode shape %s: %w", id, err)
		}
		out[id] = msg
	}
	return out, nil
}

func (p *Publisher) next(ctx context.Context, kind string) (domain.Handle, error) {
	n, err := p.client.Incr(ctx, p.seqKey()).Result()
	if err != nil {
		return domain.Handle{}, fmt.Errorf("failed to allocate %s handle: %w", kind, err)
	}
	return domain.NewHandle(fmt.Sprintf("%s-%d", kind, n)), nil
}

func (p *Publisher) create(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", msg.Type, err)
	}

	pipe := p.client.TxPipeline()
	pipe.HSet(ctx, p.shapesKey(), msg.Handle.ID, data)
	if p.ttl > 0 {
		pipe.Expire(ctx, p.shapesKey(), p.ttl)
		pipe.Expire(ctx, p.seqKey(), p.ttl)
	}
	pipe.Publish(ctx, p.Channel(), data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store %s %s: %w", msg.Type, msg.Handle.ID, err)
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", msg.Type, err)
	}
	if err := p.client.Publish(ctx, p.Channel(), data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", msg.Type, err)
	}
	return nil
}
