package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the scene",
	Long: `Plays the scene: bulk insert, staggered reveal, animated inserts and the optional highlight walk.

On a terminal every cue is printed at its scheduled time. When stdout is not a terminal, or with
--instant, plans are applied without waiting. With --redis, visuals and cues are published to a
Redis channel for an external renderer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := loadScene(cmd)
		if err != nil {
			return err
		}

		instant, _ := cmd.Flags().GetBool("instant")
		speed, _ := cmd.Flags().GetFloat64("speed")
		redisAddr, _ := cmd.Flags().GetString("redis")
		redisPrefix, _ := cmd.Flags().GetString("redis-prefix")
		out := cmd.OutOrStdout()
		live := !instant && cli.IsTerminal(out)

		logger, err := newLogger(cmd, "")
		if err != nil {
			return err
		}
		v, err := cli.NewVisualizer(scene, cli.PlayOptions{
			Live:        live,
			Speed:       speed,
			Out:         out,
			RedisAddr:   redisAddr,
			RedisPrefix: redisPrefix,
			Logger:      logger,
			Hooks:       observability.LogHooks(logger),
		})
		if err != nil {
			return err
		}

		if live {
			tui.PrintBanner(out)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = cli.RunScene(ctx, v, scene)
		if ctx.Err() != nil {
			fmt.Fprintln(out, ">>> Interrupted.")
		} else if err == nil {
			fmt.Fprintf(out, ">>> Finished: %d nodes, %d levels.\n", v.Len(), v.Height())
		}
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Bool("instant", false, "Apply plans without waiting")
	playCmd.Flags().Float64("speed", 1, "Playback speed multiplier")
	playCmd.Flags().String("redis", "", "Redis address to stream the scene to (e.g. localhost:6379)")
	playCmd.Flags().String("redis-prefix", "", "Key and channel prefix on Redis")
}
