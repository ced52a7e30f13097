package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrGetCourierBatchesQueryIsNotConstructed = errors.New(
		"GetCourierBatchesQuery must be created via NewGetCourierBatchesQuery constructor",
	)
)

// GetCourierBatchesQuery retrieves every batch handed to one courier, across dispatch runs.
type GetCourierBatchesQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCourierBatchesQuery(courierID kernel.UUID) (GetCourierBatchesQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierBatchesQuery{}, err
	}

	return GetCourierBatchesQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetCourierBatchesQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierBatchesQueryIsNotConstructed)
}

func (q GetCourierBatchesQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetCourierBatchesQueryResponse is one assigned batch.
// Destination is meaningful only when HasDestination is true.
type GetCourierBatchesQueryResponse struct {
	ID             kernel.UUID
	DispatchID     kernel.UUID
	Sequence       int
	Rule           batch.Rule
	OrderIDs       []kernel.UUID
	Destination    kernel.Location
	HasDestination bool
}
