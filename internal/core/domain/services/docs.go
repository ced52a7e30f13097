// Package services provides the domain services of the dispatch pipeline.
//
// The package includes:
//   - OrderGrouper: proposes candidate batches from pending orders using five rules
//   - RouteOptimizer: sets each batch destination to the centroid of its orders
//   - BatchAssigner: hands batches to the nearest courier
//   - Dispatcher: runs the three stages over one snapshot
//
// Every service is synchronous and keeps no state between calls. Accumulators live on
// the stack of a single call and are returned as plain values.
package services
