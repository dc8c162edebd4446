package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Arbor lays out and animates binary search trees",
	Long: `Arbor builds a binary search tree whose nodes never overlap and plays timed animation
plans that reveal it in pre-, in- or post-order.

Without --scene the reference scene is used: 8 3 10 1 6 4 7 14 13 20, then 0 and 2 animated.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("scene", "", "YAML scene file (default: the reference scene)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("log-level", "", "Log to stderr at this level: debug, info, warn or error (default: silent)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
}

// addAnimatedFlag registers --animated on the commands that build the tree through headless.
func addAnimatedFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("animated", false, "Also insert the scene's animated values")
}

// loadScene reads --scene, falling back to the reference scene.
func loadScene(cmd *cobra.Command) (config.Scene, error) {
	path, _ := cmd.Flags().GetString("scene")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newLogger builds the logger selected by --debug, --log-level and --log-format.
// fallbackLevel applies when --log-level is not given.
func newLogger(cmd *cobra.Command, fallbackLevel string) (*slog.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	if level == "" {
		level = fallbackLevel
	}
	return cli.NewLogger(cli.LogOptions{
		Debug:  debug,
		Level:  level,
		Format: format,
		Out:    cmd.ErrOrStderr(),
	})
}

// headless builds the scene's tree in memory without playing anything.
func headless(cmd *cobra.Command) (config.Scene, *arbor.Visualizer, error) {
	scene, err := loadScene(cmd)
	if err != nil {
		return scene, nil, err
	}
	logger, err := newLogger(cmd, "")
	if err != nil {
		return scene, nil, err
	}
	v, err := cli.NewVisualizer(scene, cli.PlayOptions{Logger: logger})
	if err != nil {
		return scene, nil, err
	}
	withAnimated, _ := cmd.Flags().GetBool("animated")
	if withAnimated {
		scene.Values = append(append([]float64{}, scene.Values...), scene.Animate...)
	}
	if err := cli.BuildScene(cmd.Context(), v, scene); err != nil {
		return scene, nil, err
	}
	return scene, v, nil
}
