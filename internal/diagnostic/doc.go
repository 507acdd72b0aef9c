// Package diagnostic provides structured errors, warnings, and infos for
// the versioned schema generator.
//
// Diagnostics are collected, not short-circuited: every pipeline stage
// appends to a Diagnostics value so a single run can report all problems
// across all containers at once. Each diagnostic carries the container name
// and the version or item it points at, so the offending declaration can be
// located without re-running.
package diagnostic
