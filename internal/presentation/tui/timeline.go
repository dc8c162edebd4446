package tui

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/muesli/termenv"
)

// Timeline prints one line per cue as playback reaches it.
// Stroke cues are painted in the color they apply. It satisfies player.Sink.
type Timeline struct {
	mu     sync.Mutex
	w      io.Writer
	out    *termenv.Output
	labels map[string]string
}

// NewTimeline writes to w, picking the color profile from w.
func NewTimeline(w io.Writer) *Timeline {
	return &Timeline{
		w:      w,
		out:    termenv.NewOutput(w),
		labels: make(map[string]string),
	}
}

// Label names a handle in the output, e.g. "8" or "8→3".
func (t *Timeline) Label(h domain.Handle, label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.labels[h.ID] = label
}

// Apply prints the cue.
func (t *Timeline) Apply(_ context.Context, cue domain.Cue) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	target := cue.Step.Target.ID
	if l, ok := t.labels[target]; ok {
		target = l
	}

	at := t.out.String(fmt.Sprintf("%7.2fs", cue.Start.Seconds())).Faint()
	kind := t.out.String(fmt.Sprintf("%-10s", cue.Step.Kind)).Bold()

	var detail termenv.Style
	switch cue.Step.Kind {
	case domain.StepStroke:
		detail = t.out.String("● " + cue.Step.Color).Foreground(t.out.Color(cue.Step.Color))
	case domain.StepReveal:
		detail = t.out.String("")
	default:
		detail = t.out.String(fmt.Sprintf("%g", cue.Step.Value))
	}

	_, err := fmt.Fprintf(t.w, "%s  %s %-8s %s\n", at, kind, target, detail)
	return err
}
