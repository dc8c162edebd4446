// Package player runs animation plans against the clock.
package player

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
)

// Sink receives each cue once its start offset is reached.
type Sink interface {
	Apply(ctx context.Context, cue domain.Cue) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, cue domain.Cue) error

// Apply calls f.
func (f SinkFunc) Apply(ctx context.Context, cue domain.Cue) error {
	return f(ctx, cue)
}

// Fanout applies every cue to each sink in turn, stopping at the first error.
func Fanout(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, cue domain.Cue) error {
		for _, s := range sinks {
			if err := s.Apply(ctx, cue); err != nil {
				return err
			}
		}
		return nil
	})
}

// Timed implements ports.Player on real time.
// Cues are handed to the sink at their timeline offsets and Play returns once the last step
// has had time to finish. Cancelling ctx stops playback where it is.
type Timed struct {
	sink   Sink
	speed  float64
	logger *slog.Logger
}

// Option configures a Timed player.
type Option func(*Timed)

// WithSpeed scales playback: 2 plays twice as fast. Non-positive values are ignored.
func WithSpeed(speed float64) Option {
	return func(p *Timed) {
		if speed > 0 {
			p.speed = speed
		}
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Timed) {
		p.logger = logger
	}
}

// NewTimed creates a real-time player feeding sink.
func NewTimed(sink Sink, opts ...Option) *Timed {
	p := &Timed{
		sink:  sink,
		speed: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p
}

// Play blocks until the plan has finished or ctx is done.
func (p *Timed) Play(ctx context.Context, plan domain.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	for _, cue := range plan.Timeline() {
		if err := p.wait(ctx, start, cue.Start); err != nil {
			return err
		}
		p.logger.Debug("cue", "at", cue.Start, "step", cue.Step.String())
		if err := p.sink.Apply(ctx, cue); err != nil {
			return fmt.Errorf("apply %s at %s: %w", cue.Step.Kind, cue.Start, err)
		}
	}
	return p.wait(ctx, start, plan.Duration())
}

func (p *Timed) wait(ctx context.Context, start time.Time, offset time.Duration) error {
	due := start.Add(time.Duration(float64(offset) / p.speed))
	d := time.Until(due)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
