package ports

import (
	"context"

	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/kernel"
)

// CourierAssignment is the notification sent to one courier after a dispatch run.
type CourierAssignment struct {
	DispatchID kernel.UUID
	CourierID  kernel.UUID
	Batches    []*batch.Batch
}

// AssignmentPublisher notifies couriers about the batches they received.
// Publishing happens after the dispatch transaction committed.
type AssignmentPublisher interface {
	Publish(ctx context.Context, assignment CourierAssignment) error
}
