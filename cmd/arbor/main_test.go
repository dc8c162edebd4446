package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func runErr(t *testing.T, args ...string) error {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestTraverseCommand(t *testing.T) {
	assert.Equal(t, "1 3 4 6 7 8 10 13 14 20\n", run(t, "traverse", "in"))
}

func TestLayoutCommand_Scene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("values: [5, 2, 9]\nhorizontal_unit: 100\n"), 0o644))

	lines := strings.Split(strings.TrimSpace(run(t, "layout", "--tsv", "--scene", path)), "\n")
	assert.Equal(t, []string{
		"5\t0\t(0, -400)",
		"2\t1\t(-100, -200)",
		"9\t1\t(100, -200)",
	}, lines)
}

func TestPlayCommand_Instant(t *testing.T) {
	out := run(t, "play", "--instant", "--scene", "")
	assert.Contains(t, out, ">>> Finished: 12 nodes, 4 levels.")
}

func TestLayoutCommand_Table(t *testing.T) {
	out := run(t, "layout", "--tsv=false", "--scene", "")
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "-300")
}

func TestTraverseCommand_Animated(t *testing.T) {
	t.Cleanup(func() { _ = traverseCmd.Flags().Set("animated", "false") })
	assert.Equal(t, "0 1 2 3 4 6 7 8 10 13 14 20\n", run(t, "traverse", "in", "--animated", "--scene", ""))
}

func TestAnimatedFlag_OnlyOnHeadlessCommands(t *testing.T) {
	err := runErr(t, "play", "--instant", "--animated", "--scene", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag: --animated")

	for _, name := range []string{"layout", "graph", "traverse", "describe"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.NotNil(t, cmd.Flags().Lookup("animated"), name)
	}
	assert.Nil(t, rootCmd.PersistentFlags().Lookup("animated"))
}

func TestLogFlags(t *testing.T) {
	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("log-level", "")
		_ = rootCmd.PersistentFlags().Set("log-format", "text")
	})

	out := run(t, "traverse", "in", "--scene", "", "--log-level", "debug", "--log-format", "json")
	assert.Contains(t, out, `"level":"DEBUG"`)
	assert.Contains(t, out, `"msg":"Insert"`)
	assert.Contains(t, out, "1 3 4 6 7 8 10 13 14 20\n")

	out = run(t, "traverse", "in", "--scene", "", "--log-level", "warn", "--log-format", "text")
	assert.Equal(t, "1 3 4 6 7 8 10 13 14 20\n", out, "nothing at warn or above")

	err := runErr(t, "traverse", "in", "--scene", "", "--log-level", "info", "--log-format", "xml")
	assert.ErrorContains(t, err, "unknown log format")

	err = runErr(t, "traverse", "in", "--scene", "", "--log-level", "loud", "--log-format", "text")
	assert.ErrorContains(t, err, "unknown log level")
}
