package domain

import "errors"

// ErrHandleUnbound is returned when an animation targets a visual that was never created.
var ErrHandleUnbound = errors.New("handle not bound")

// ErrHandleBound is returned when binding a handle that already refers to a visual.
var ErrHandleBound = errors.New("handle already bound")

// ErrNodeNotFound is returned when a node id does not exist in the tree.
var ErrNodeNotFound = errors.New("node not found")

// ErrInvalidOrder is returned when a traversal order cannot be parsed.
var ErrInvalidOrder = errors.New("invalid traversal order")

// ErrInvalidValue is returned for keys that have no total order (NaN).
var ErrInvalidValue = errors.New("invalid value")

// ErrInvalidConfig is returned when layout configuration cannot produce a usable tree.
var ErrInvalidConfig = errors.New("invalid configuration")
