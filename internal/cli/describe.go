package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
)

// Describe reports the tree held by v as markdown: layout, traversals and node positions.
func Describe(v *arbor.Visualizer) string {
	var sb strings.Builder
	cfg := v.Config()

	name := v.Name
	if name == "" {
		name = "tree"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "%d nodes, %d levels. Root at `%s`, horizontal unit %g, vertical unit %g.\n\n",
		v.Len(), v.Height(), cfg.Origin, cfg.HorizontalUnit, cfg.VerticalUnit)

	sb.WriteString("## Traversals\n\n")
	for _, order := range domain.Orders {
		fmt.Fprintf(&sb, "- **%s-order**: %s\n", order, joinValues(v.Values(order)))
	}

	sb.WriteString("\n## Nodes\n\n")
	sb.WriteString("| Value | Depth | Position | Parent | Side |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	nodes := v.Nodes(domain.PreOrder)
	byID := make(map[tree.NodeID]tree.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	for _, n := range nodes {
		parent, side := "-", "root"
		if p, ok := byID[n.Parent]; ok {
			parent = p.Label()
			side = "right"
			if p.Left == n.ID {
				side = "left"
			}
		}
		fmt.Fprintf(&sb, "| %s | %d | `%s` | %s | %s |\n", n.Label(), n.Depth, n.Position, parent, side)
	}

	// In-order x coordinates must rise strictly; the plot makes the spacing visible.
	if inOrder := v.Nodes(domain.InOrder); len(inOrder) > 1 {
		xs := make([]float64, len(inOrder))
		for i, n := range inOrder {
			xs[i] = n.Position.X
		}
		sb.WriteString("\n## Horizontal layout (in-order x)\n\n```\n")
		sb.WriteString(asciigraph.Plot(xs, asciigraph.Height(8)))
		sb.WriteString("\n```\n")
	}
	return sb.String()
}

// WriteLayoutTable renders the pre-order layout as a table.
func WriteLayoutTable(w io.Writer, v *arbor.Visualizer) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Value", "Depth", "X", "Y", "Parent"})
	nodes := v.Nodes(domain.PreOrder)
	labels := make(map[tree.NodeID]string, len(nodes))
	for _, n := range nodes {
		labels[n.ID] = n.Label()
	}
	for _, n := range nodes {
		parent := "-"
		if l, ok := labels[n.Parent]; ok {
			parent = l
		}
		tbl.Append([]string{
			n.Label(),
			fmt.Sprintf("%d", n.Depth),
			fmt.Sprintf("%g", n.Position.X),
			fmt.Sprintf("%g", n.Position.Y),
			parent,
		})
	}
	tbl.Render()
}

// Layout lists every node's position in pre-order, one tab separated line each.
func Layout(v *arbor.Visualizer) string {
	var sb strings.Builder
	for _, n := range v.Nodes(domain.PreOrder) {
		fmt.Fprintf(&sb, "%s\t%d\t%s\n", n.Label(), n.Depth, n.Position)
	}
	return sb.String()
}

func joinValues(values []float64) string {
	if len(values) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = tree.FormatValue(v)
	}
	return strings.Join(parts, " ")
}
