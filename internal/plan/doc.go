// Package plan implements the versioning engine that turns container
// declarations into a generation plan consumed by code emission.
//
// Pipeline, per container:
//  1. Register versions → parsed, deduplicated, sorted ascending
//  2. Build per-item status chains from action timelines
//  3. Resolve the active item set for every version (the versioned views)
//  4. Synthesize conversion specs for every adjacent version pair
//
// The engine is a pure transform: it holds no global state, mutates nothing
// after assembly, and reports all problems through collected diagnostics so
// one run surfaces every error across every container.
package plan
