package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// Renderer creates visuals on behalf of the tree.
// Every visual starts hidden (zero extent) and is shown only by a reveal step.
type Renderer interface {
	// CreateNode registers a node visual and returns its handle.
	CreateNode(ctx context.Context, shape domain.NodeShape) (domain.Handle, error)

	// CreateEdge registers a connector visual and returns its handle.
	CreateEdge(ctx context.Context, shape domain.EdgeShape) (domain.Handle, error)
}

// Player executes animation plans.
type Player interface {
	// Play runs the plan and returns once every step has completed.
	// Returns ctx.Err() if the context is cancelled first, leaving visuals in
	// whatever interim state they had reached.
	Play(ctx context.Context, plan domain.Plan) error
}
