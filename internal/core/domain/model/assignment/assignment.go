package assignment

import (
	"errors"
	"slices"

	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// ErrCourierIsNotRegistered is returned when a batch is assigned to a courier the
// assignment was not seeded with.
var ErrCourierIsNotRegistered = errors.New("courier is not part of the assignment")

// Assignment maps courier ids to the batches they carry.
//
// Every courier passed to NewAssignment has an entry, possibly empty. Courier ids are
// kept in scan order and each courier's batches in the order they were assigned.
type Assignment struct {
	courierIDs []kernel.UUID
	batches    map[kernel.UUID][]*batch.Batch
	unassigned []*batch.Batch
}

// NewAssignment seeds an empty list for every courier id, in the given order.
// Duplicate ids are kept once.
func NewAssignment(courierIDs []kernel.UUID) (*Assignment, error) {
	a := &Assignment{
		courierIDs: make([]kernel.UUID, 0, len(courierIDs)),
		batches:    make(map[kernel.UUID][]*batch.Batch, len(courierIDs)),
	}

	for _, id := range courierIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if _, ok := a.batches[id]; ok {
			continue
		}
		a.courierIDs = append(a.courierIDs, id)
		a.batches[id] = []*batch.Batch{}
	}

	return a, nil
}

// Assign appends b to the batches of the courier.
func (a *Assignment) Assign(courierID kernel.UUID, b *batch.Batch) error {
	if err := b.Validate(); err != nil {
		return err
	}

	list, ok := a.batches[courierID]
	if !ok {
		return errs.NewObjectNotFoundErrorWithCause("courierId", courierID, ErrCourierIsNotRegistered)
	}

	a.batches[courierID] = append(list, b)
	return nil
}

// MarkUnassigned records a batch that no courier received.
func (a *Assignment) MarkUnassigned(b *batch.Batch) error {
	if err := b.Validate(); err != nil {
		return err
	}

	a.unassigned = append(a.unassigned, b)
	return nil
}

// CourierIDs returns courier ids in scan order.
func (a *Assignment) CourierIDs() []kernel.UUID {
	return slices.Clone(a.courierIDs)
}

// BatchesFor returns the batches assigned to a courier, nil for unknown couriers.
func (a *Assignment) BatchesFor(courierID kernel.UUID) []*batch.Batch {
	return slices.Clone(a.batches[courierID])
}

func (a *Assignment) Unassigned() []*batch.Batch {
	return slices.Clone(a.unassigned)
}

// AssignedCount is the total number of batches handed to couriers.
func (a *Assignment) AssignedCount() int {
	total := 0
	for _, list := range a.batches {
		total += len(list)
	}

	return total
}

// IsEmpty reports whether no batch was assigned.
func (a *Assignment) IsEmpty() bool {
	return a.AssignedCount() == 0
}

// Mapping returns a copy of the courier to batches mapping.
func (a *Assignment) Mapping() map[kernel.UUID][]*batch.Batch {
	mapping := make(map[kernel.UUID][]*batch.Batch, len(a.batches))
	for id, list := range a.batches {
		mapping[id] = slices.Clone(list)
	}

	return mapping
}

// Batches returns every assigned batch, courier by courier in scan order.
func (a *Assignment) Batches() []*batch.Batch {
	all := make([]*batch.Batch, 0, a.AssignedCount())
	for _, id := range a.courierIDs {
		all = append(all, a.batches[id]...)
	}

	return all
}
