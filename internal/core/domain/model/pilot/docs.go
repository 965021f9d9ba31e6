// Package pilot provides domain entities and business logic for delivery
// agents in the dispatch system. It implements the Pilot aggregate root with
// availability tracking, location reports and delivery statistics.
//
// The package includes:
//   - Pilot: The aggregate root managing identity, availability and the carried order
//   - Profile: The pilot's self-reported details, changed only by their own resubmission
//   - TrackedLocation: The last reported position, overwritten on each report
//
// Key business rules:
//   - A pilot carries at most one order at a time; carrying implies unavailable
//   - The customer-facing profile parts are snapshotted onto orders at claim
//     time, so later corrections never rewrite delivery history
//   - The rating is a running mean weighted by the number of prior ratings
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package pilot
