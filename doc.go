/*
Package arbor builds and animates binary search trees for visual explanation.

Values are inserted into an insert-only BST whose nodes are laid out geometrically at
insertion time, so the drawing never overlaps however the tree grows. Animated operations
produce declarative plans (cues while descending, staggered reveals, highlights) that a
Player executes against whatever Renderer draws the visuals.

# Concept

Arbor decides what to animate and in which order and timing; it never moves pixels itself.
The tree and its plans are pure data. Rendering and playback are ports, so the same scene
can be played on a terminal timeline, inspected in memory by tests, or published to Redis
for a remote renderer.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/arbor"
		"github.com/aretw0/arbor/pkg/domain"
	)

	func main() {
		ctx := context.Background()

		viz, err := arbor.New()
		if err != nil {
			log.Fatal(err)
		}

		// Bulk insert, then draw the whole tree in pre-order.
		if err := viz.Insert(ctx, 8, 3, 10, 1, 6, 4, 7, 14, 13, 20); err != nil {
			log.Fatal(err)
		}
		if err := viz.Reveal(ctx, domain.PreOrder, 0); err != nil {
			log.Fatal(err)
		}

		// Narrate a single insertion.
		if _, err := viz.AnimateInsert(ctx, 0); err != nil {
			log.Fatal(err)
		}
	}
*/
package arbor
