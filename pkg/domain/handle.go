package domain

import "fmt"

// Handle identifies a visual created by a Renderer.
// The zero value is the unbound handle.
type Handle struct {
	ID    string `json:"id,omitempty"`
	Bound bool   `json:"bound"`
}

// NewHandle returns a bound handle for the given renderer-issued id.
func NewHandle(id string) Handle {
	return Handle{ID: id, Bound: true}
}

// Require returns ErrHandleUnbound if h has not been bound.
func (h Handle) Require() error {
	if !h.Bound {
		return ErrHandleUnbound
	}
	return nil
}

func (h Handle) String() string {
	if !h.Bound {
		return "<unbound>"
	}
	return h.ID
}

// Bind sets *h to id. A handle can only be bound once.
func (h *Handle) Bind(id string) error {
	if h.Bound {
		return fmt.Errorf("bind %q over %q: %w", id, h.ID, ErrHandleBound)
	}
	*h = NewHandle(id)
	return nil
}
