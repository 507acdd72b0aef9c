// Package gen renders a generation plan into Go source files: one type
// declaration per declared version of a container, plus one conversion
// function per adjacent version pair.
//
// The package is a pure consumer of the plan — all semantic validation has
// already happened by the time a plan reaches it. Output is deterministic
// and gofmt-formatted; when formatting fails the raw source is returned
// together with the error so the problem can be inspected.
package gen
