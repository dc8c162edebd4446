package main

import (
	"fmt"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe the scene's tree",
	Long:  `Builds the scene's tree and prints a report of its traversals and node positions. Use --raw for plain markdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, v, err := headless(cmd)
		if err != nil {
			return err
		}
		md := cli.Describe(v)

		if raw, _ := cmd.Flags().GetBool("raw"); raw || !cli.IsTerminal(cmd.OutOrStdout()) {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		render, err := tui.NewRenderer(0)
		if err != nil {
			return err
		}
		out, err := render(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	addAnimatedFlag(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
}
