// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the dispatch system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - DistancePricingEngine: A pure service pricing the transport leg of an
//     order from the great-circle distance between origin and destination
//   - HandoffCodeService: A service issuing and verifying the numeric
//     proof-of-delivery code exchanged at the door
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
