// Package ports defines the contracts between the dispatch core and infrastructure:
// repositories for orders, couriers and dispatched batches, the unit of work and the
// assignment publisher.
package ports

import (
	"context"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAll retrieves every courier. The order of the result is unspecified; the
	// assigner imposes its own scan order.
	GetAll(ctx context.Context) ([]*courier.Courier, error)
}
