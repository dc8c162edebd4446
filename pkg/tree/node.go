package tree

import (
	"strconv"

	"github.com/aretw0/arbor/pkg/domain"
)

// NodeID addresses a node in the tree's arena.
type NodeID int

// None is the absent node.
const None NodeID = -1

// Node is a snapshot of one arena entry.
type Node struct {
	ID       NodeID       `json:"id"`
	Value    float64      `json:"value"`
	Position domain.Point `json:"position"`
	Depth    int          `json:"depth"`

	Parent NodeID `json:"parent"`
	Left   NodeID `json:"left"`
	Right  NodeID `json:"right"`

	// Handle is the node's own visual, Edge the connector from its parent.
	Handle domain.Handle `json:"handle"`
	Edge   domain.Handle `json:"edge"`
}

// IsRoot reports whether n has no parent.
func (n Node) IsRoot() bool {
	return n.Parent == None
}

// Label is the text drawn inside the node.
func (n Node) Label() string {
	return FormatValue(n.Value)
}

// FormatValue renders a key without trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
