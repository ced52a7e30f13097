// Package courier provides the Courier aggregate root used by the dispatch pipeline.
//
// A courier is an identity with a human-readable name and a position on the
// delivery plane. The assigner only reads the position; couriers are never moved
// by a dispatch run.
//
// Key business rules:
//   - Couriers must have a valid unique identifier and a non-empty name
//   - The location is a constructed kernel.Location
//   - Couriers can only be created through NewCourier or RestoreCourier
package courier
