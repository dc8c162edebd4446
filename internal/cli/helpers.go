// Package cli holds the wiring shared by the arbor commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/arbor/internal/logging"
	"golang.org/x/term"
)

// LogOptions mirrors the --debug, --log-level and --log-format flags.
type LogOptions struct {
	Debug  bool
	Level  string // debug, info, warn or error; empty keeps the logger silent
	Format string // text (default) or json
	Out    io.Writer
}

// NewLogger configures the application logger.
// It writes to Stderr unless Out is set, keeping Stdout for diagrams and timelines.
// --debug wins over any level.
func NewLogger(opts LogOptions) (*slog.Logger, error) {
	var json bool
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "text":
	case "json":
		json = true
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", opts.Format)
	}

	level := slog.LevelDebug
	if !opts.Debug {
		if opts.Level == "" {
			return logging.NewNop(), nil
		}
		lvl, err := logging.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		level = lvl
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	return logging.NewWithWriter(out, level, json), nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// HandleExecutionError treats an interrupted playback as a clean exit.
func HandleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
