// Package batch models candidate delivery batches produced by the order grouper.
//
// A Batch is created with its member orders and the rule that proposed it. Its
// destination stays undefined until the route optimizer computes it.
package batch
