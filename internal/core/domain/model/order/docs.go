// Package order provides the Order aggregate: a pickup order from a kitchen to a
// customer, ready at a given minute of the day, delivered to a location.
//
// Key business rules:
//   - Orders must have a valid identifier, kitchen, customer, pickup time and location
//   - Those attributes are immutable once the order exists
//   - Order status follows Pending -> Batched
package order
