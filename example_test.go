package arbor_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
)

// ExampleNew shows the reference scene: a bulk-built tree revealed in pre-order, followed by
// a narrated insertion.
func ExampleNew() {
	ctx := context.Background()

	viz, err := arbor.New()
	if err != nil {
		log.Fatal(err)
	}

	if err := viz.Insert(ctx, 8, 3, 10, 1, 6, 4, 7, 14, 13, 20); err != nil {
		log.Fatal(err)
	}
	if err := viz.Reveal(ctx, domain.PreOrder, 0); err != nil {
		log.Fatal(err)
	}

	node, err := viz.AnimateInsert(ctx, 0)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(viz.Values(domain.PreOrder))
	fmt.Println(node.Position)
	// Output:
	// [8 3 1 0 6 4 7 10 14 13 20]
	// (-525, 200)
}
