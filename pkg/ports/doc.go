/*
Package ports defines the driven ports (interfaces) for the Arbor tree.

These interfaces decouple the tree and its layout logic from whatever actually draws and
animates pixels, allowing the same plans to drive a terminal, a test double or a remote
renderer fed through Redis.

# Key Interfaces

  - Renderer: Creates hidden node and edge visuals and returns opaque handles.
  - Player: Executes an animation plan, blocking until it completes or is cancelled.
*/
package ports
