// Package assignment holds the result of a dispatch run: which batches each
// courier carries and which batches found no courier.
package assignment
