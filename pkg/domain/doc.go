/*
Package domain contains the core value types shared by the Arbor tree, its ports and adapters.

It defines geometry, opaque visual handles, traversal orders and the declarative animation
plan. This package is kept pure and free of external dependencies like I/O or rendering,
following Hexagonal Architecture principles.

# Key Entities

  - Point: A 2D layout coordinate (screen space, y grows downwards).
  - Handle: An opaque reference to a visual owned by a Renderer, with an explicit unbound state.
  - Order: Pre-, in- or post-order traversal policy.
  - Plan: A tree of animation steps with sequence, parallel or stagger timing.
  - Theme: Colors and sizes used when creating visuals and building plans.
*/
package domain
