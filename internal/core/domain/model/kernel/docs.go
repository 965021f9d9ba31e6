// Package kernel provides the core domain primitives of the dispatch system,
// shared by every aggregate in the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Coordinates: A value object for geographic latitude/longitude points with
//     great-circle distance math
//   - ConstructorGuard: A defensive programming pattern to ensure proper object construction
//
// All primitives are immutable value objects: once constructed they never
// change, which makes them safe to share across goroutines and to embed in
// aggregates without copy hazards. Construction goes through validating
// constructors, so a kernel value that exists is a valid one.
package kernel
