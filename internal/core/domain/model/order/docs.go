// Package order provides domain entities and business logic for order
// fulfillment in the dispatch system. It implements the Order aggregate root
// with lifecycle management, an append-only timeline and the delivery
// sub-record.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine with a single transition table for the lifecycle
//   - TimelineEntry: An immutable record in the append-only status history
//   - Delivery: The pilot assignment, handoff code and journey milestones
//   - DriverDetails: The driver snapshot copied onto the order at claim time
//   - Pricing: The distance-based quote attached at placement
//
// Key business rules:
//   - Orders must have a valid unique identifier, contact, items, coordinates and positive volume
//   - Order status follows the workflow: placed -> confirmed -> preparing ->
//     processing -> dispatched -> delivered, with cancellation from any
//     non-terminal status and no back-edges
//   - Exactly one pilot claim ever succeeds per order, and an active
//     assignment exists only while the order is dispatched
//   - The timeline only grows; orders are never deleted
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
