package main

import (
	"fmt"

	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the tree as a Mermaid diagram",
	Long: `Builds the scene's tree and outputs a Mermaid diagram (graph TD).
With --order, the first --step nodes of that traversal are marked as visited, the last as current.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, v, err := headless(cmd)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if name, _ := cmd.Flags().GetString("order"); name != "" {
			order, err := domain.ParseOrder(name)
			if err != nil {
				return err
			}
			nodes := v.Nodes(order)
			step, _ := cmd.Flags().GetInt("step")
			if step < 0 || step > len(nodes) {
				step = len(nodes)
			}
			overlay = &graph.GraphOverlay{}
			for _, n := range nodes[:step] {
				overlay.Visited = append(overlay.Visited, n.ID)
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(v.Nodes(domain.PreOrder), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addAnimatedFlag(graphCmd)
	graphCmd.Flags().String("order", "", "Traversal to mark: pre, in or post")
	graphCmd.Flags().Int("step", -1, "Number of visited nodes (default: all)")
}
