package ports

import (
	"context"

	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/kernel"
)

// DispatchedBatch is a batch handed to a courier by one dispatch run.
type DispatchedBatch struct {
	DispatchID kernel.UUID
	CourierID  kernel.UUID
	// Sequence is the position of the batch in the courier's list for the run.
	Sequence int
	Batch    *batch.Batch
}

// BatchRepository stores batches produced by dispatch runs.
type BatchRepository interface {
	// Add persists an assigned batch together with its member order ids.
	Add(ctx context.Context, dispatched DispatchedBatch) error

	// Get restores a dispatched batch with its member orders and destination.
	Get(ctx context.Context, id kernel.UUID) (DispatchedBatch, error)
}
