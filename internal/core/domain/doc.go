// Package domain defines the core entities of archie.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentState: the full component description being edited
//   - Record: one uniquely identified entry in a list-shaped section
//   - Draft: a named, persisted DocumentState
//   - Build: one generation run and its validation outcome
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
