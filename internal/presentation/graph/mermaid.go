package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/tree"
)

// GraphOverlay marks traversal progress on the diagram.
// Every id in Visited is styled as visited; the last one is styled as current.
type GraphOverlay struct {
	Visited []tree.NodeID
}

// GenerateMermaid produces a Mermaid flowchart (graph TD) of a binary search tree.
// Nodes are drawn as circles labelled with their value, in the order given (pre-order keeps
// Mermaid's layout closest to the geometric one). A missing left or right child is drawn as
// a hidden placeholder so that a lone child stays on its own side.
func GenerateMermaid(nodes []tree.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	present := make(map[tree.NodeID]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}

	hidden := false
	for _, n := range nodes {
		fmt.Fprintf(&sb, "    %s((\"%s\"))\n", mermaidID(n.ID), n.Label())

		left, right := present[n.Left], present[n.Right]
		if !left && !right {
			continue
		}
		for _, child := range []struct {
			id     tree.NodeID
			ok     bool
			suffix string
		}{
			{n.Left, left, "L"},
			{n.Right, right, "R"},
		} {
			if child.ok {
				fmt.Fprintf(&sb, "    %s --> %s\n", mermaidID(n.ID), mermaidID(child.id))
				continue
			}
			// Placeholder keeps the other child on its side.
			placeholder := mermaidID(n.ID) + child.suffix
			fmt.Fprintf(&sb, "    %s((\" \")):::hidden\n", placeholder)
			fmt.Fprintf(&sb, "    %s ~~~ %s\n", mermaidID(n.ID), placeholder)
			hidden = true
		}
	}

	if hidden {
		sb.WriteString("    classDef hidden display:none;\n")
	}

	if overlay != nil && len(overlay.Visited) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#f9e2af,stroke:#fab387,stroke-width:4px,color:#000;\n")

		seen := make(map[tree.NodeID]bool)
		last := overlay.Visited[len(overlay.Visited)-1]
		for _, id := range overlay.Visited {
			if seen[id] || !present[id] || id == last {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", mermaidID(id))
		}
		if present[last] {
			fmt.Fprintf(&sb, "    class %s current;\n", mermaidID(last))
		}
	}

	return sb.String()
}

func mermaidID(id tree.NodeID) string {
	return fmt.Sprintf("n%d", id)
}
