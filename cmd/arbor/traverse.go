package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/spf13/cobra"
)

var traverseCmd = &cobra.Command{
	Use:   "traverse [pre|in|post]",
	Short: "Print the tree's values in a traversal order",
	Long: `Builds the scene's tree and prints its values in the given order (default: the scene's).
With --refs the visual handles are listed instead, each node followed by its incoming edge.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, v, err := headless(cmd)
		if err != nil {
			return err
		}
		order := scene.Order
		if len(args) == 1 {
			if order, err = domain.ParseOrder(args[0]); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if refs, _ := cmd.Flags().GetBool("refs"); refs {
			// Handles only exist once visuals are created.
			if err := v.Reveal(cmd.Context(), order, 0); err != nil {
				return err
			}
			for _, h := range v.Refs(order) {
				fmt.Fprintln(out, h)
			}
			return nil
		}

		values := v.Values(order)
		parts := make([]string, len(values))
		for i, val := range values {
			parts[i] = tree.FormatValue(val)
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(traverseCmd)
	addAnimatedFlag(traverseCmd)
	traverseCmd.Flags().Bool("refs", false, "List visual handles instead of values")
}
