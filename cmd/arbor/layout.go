package main

import (
	"fmt"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print every node's depth and position",
	Long:  `Builds the scene's tree and prints value, depth and screen position per node, in pre-order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, v, err := headless(cmd)
		if err != nil {
			return err
		}
		if tsv, _ := cmd.Flags().GetBool("tsv"); tsv {
			fmt.Fprint(cmd.OutOrStdout(), cli.Layout(v))
			return nil
		}
		cli.WriteLayoutTable(cmd.OutOrStdout(), v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	addAnimatedFlag(layoutCmd)
	layoutCmd.Flags().Bool("tsv", false, "Print tab separated lines instead of a table")
}
