// Package kernel provides core domain primitives shared by the dispatch model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Location: A point on the continuous delivery plane with Manhattan distance
//   - TimeOfDay: A minute-granularity wall-clock time used for pickup times
//
// These primitives are immutable, validated at construction and safe for concurrent use.
package kernel
