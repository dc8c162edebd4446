package domain

import (
	"fmt"
	"strings"
)

// Order controls when a node is visited relative to its subtrees.
type Order int

const (
	// PreOrder visits the node, then the left subtree, then the right subtree.
	PreOrder Order = iota
	// InOrder visits the left subtree, then the node, then the right subtree.
	InOrder
	// PostOrder visits both subtrees before the node.
	PostOrder
)

// Orders lists every supported traversal order.
var Orders = []Order{PreOrder, InOrder, PostOrder}

func (o Order) String() string {
	switch o {
	case PreOrder:
		return "pre"
	case InOrder:
		return "in"
	case PostOrder:
		return "post"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder accepts "pre", "in", "post" and their "-order" suffixed forms.
func ParseOrder(s string) (Order, error) {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "order")
	key = strings.TrimSuffix(key, "-")
	switch key {
	case "pre":
		return PreOrder, nil
	case "in":
		return InOrder, nil
	case "post":
		return PostOrder, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrInvalidOrder)
}

// MarshalText implements encoding.TextMarshaler.
func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Order) UnmarshalText(text []byte) error {
	parsed, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
