// Package attrs defines the parsed attribute model consumed by the
// versioning engine, plus the YAML front end that produces it.
//
// The model mirrors what a schema author declares: containers (structs or
// enums), their ordered list of versions, and per-item action timelines
// (added, renamed, deprecated). Validation here is syntactic only — names
// are present, kinds are recognized, rename entries are well formed. The
// semantic rules (version uniqueness, lifecycle consistency, default
// requirements) live in the plan package.
package attrs
