package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("silent without a level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := cli.NewLogger(cli.LogOptions{Out: &buf})
		require.NoError(t, err)
		logger.Error("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := cli.NewLogger(cli.LogOptions{Level: "warn", Out: &buf})
		require.NoError(t, err)
		assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
		logger.Warn("kept", "error", "boom")
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "err=boom")
	})

	t.Run("debug wins over level", func(t *testing.T) {
		logger, err := cli.NewLogger(cli.LogOptions{Debug: true, Level: "error", Out: &bytes.Buffer{}})
		require.NoError(t, err)
		assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("json lines", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := cli.NewLogger(cli.LogOptions{Level: "info", Format: "JSON", Out: &buf})
		require.NoError(t, err)
		logger.Info("hello", "value", 8)

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "hello", line["msg"])
		assert.Equal(t, "INFO", line["level"])
		assert.EqualValues(t, 8, line["value"])
	})

	t.Run("bad options", func(t *testing.T) {
		_, err := cli.NewLogger(cli.LogOptions{Level: "loud"})
		assert.ErrorContains(t, err, "unknown log level")
		_, err = cli.NewLogger(cli.LogOptions{Level: "info", Format: "xml"})
		assert.ErrorContains(t, err, "unknown log format")
	})
}
