package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/player"
	"github.com/aretw0/arbor/pkg/ports"
)

// PlayOptions selects where a scene is rendered and how fast it plays.
type PlayOptions struct {
	// Live paces plans on the clock and prints each cue to Out.
	Live  bool
	Speed float64
	Out   io.Writer

	// RedisAddr, when set, streams visuals and cues to Redis instead of the in-memory scene.
	RedisAddr   string
	RedisPrefix string

	Logger *slog.Logger
	Hooks  domain.LifecycleHooks
}

// labeled names node handles on the timeline as they are created.
type labeled struct {
	ports.Renderer
	timeline *tui.Timeline
}

func (l labeled) CreateNode(ctx context.Context, shape domain.NodeShape) (domain.Handle, error) {
	h, err := l.Renderer.CreateNode(ctx, shape)
	if err == nil {
		l.timeline.Label(h, shape.Label)
	}
	return h, err
}

// NewVisualizer builds a Visualizer for scene.
func NewVisualizer(scene config.Scene, opts PlayOptions) (*arbor.Visualizer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	var (
		renderer ports.Renderer
		sink     player.Sink
		instant  ports.Player
	)
	if opts.RedisAddr != "" {
		var ropts []redis.Option
		if opts.RedisPrefix != "" {
			ropts = append(ropts, redis.WithPrefix(opts.RedisPrefix))
		}
		pub := redis.New(opts.RedisAddr, "", 0, ropts...)
		logger.Info("Streaming scene to redis", "address", opts.RedisAddr, "channel", pub.Channel())
		renderer, sink, instant = pub, pub, pub
	} else {
		s := memory.NewScene()
		renderer, sink, instant = s, s, s
	}

	p := instant
	if opts.Live {
		out := opts.Out
		if out == nil {
			out = io.Discard
		}
		timeline := tui.NewTimeline(out)
		renderer = labeled{Renderer: renderer, timeline: timeline}
		p = player.NewTimed(player.Fanout(sink, timeline),
			player.WithSpeed(opts.Speed),
			player.WithLogger(logger),
		)
	}

	return arbor.New(
		arbor.WithName(scene.Name),
		arbor.WithConfig(scene.Config),
		arbor.WithTheme(scene.Theme),
		arbor.WithRenderer(renderer),
		arbor.WithPlayer(p),
		arbor.WithLogger(logger),
		arbor.WithLifecycleHooks(opts.Hooks),
	)
}

// BuildScene inserts the scene's values without playing anything.
func BuildScene(ctx context.Context, v *arbor.Visualizer, scene config.Scene) error {
	return v.Insert(ctx, scene.Values...)
}

// RunScene plays the whole scene: bulk insert, staggered reveal, animated inserts and the
// optional highlight walk.
func RunScene(ctx context.Context, v *arbor.Visualizer, scene config.Scene) error {
	if err := BuildScene(ctx, v, scene); err != nil {
		return err
	}
	if err := v.Reveal(ctx, scene.Order, scene.Stagger); err != nil {
		return err
	}
	for _, value := range scene.Animate {
		if _, err := v.AnimateInsert(ctx, value); err != nil {
			return err
		}
	}
	if scene.Highlight {
		return v.HighlightTraversal(ctx)
	}
	return nil
}
