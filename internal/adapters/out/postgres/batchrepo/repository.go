package batchrepo

import (
	"context"
	"errors"
	"fmt"

	"lastmile/internal/adapters/out/postgres/orderrepo"
	"lastmile/internal/adapters/out/postgres/pgerr"
	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// ErrDispatchedBatchIsInvalid is returned by Add when the batch, courier or run id is missing.
var ErrDispatchedBatchIsInvalid = errs.NewValueIsInvalidError("dispatched batch")

// GormBatchRepository implements BatchRepository using GORM.
type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves an assigned batch. The member orders must already be stored.
func (r *GormBatchRepository) Add(ctx context.Context, dispatched ports.DispatchedBatch) error {
	if err := errors.Join(
		dispatched.Batch.Validate(),
		dispatched.DispatchID.Validate(),
		dispatched.CourierID.Validate(),
	); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatchedBatchIsInvalid, err)
	}

	dto := fromDomain(dispatched)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "batch", dispatched.Batch.ID().String())
	}

	r.tracker.TrackAggregate(dispatched.Batch.ID(), dispatched)
	return nil
}

// Get restores a batch with its member orders in their original sequence.
func (r *GormBatchRepository) Get(ctx context.Context, id kernel.UUID) (ports.DispatchedBatch, error) {
	if err := id.Validate(); err != nil {
		return ports.DispatchedBatch{}, err
	}

	var dto BatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.DispatchedBatch{}, errs.NewObjectNotFoundError("batch", id.String())
		}
		return ports.DispatchedBatch{}, err
	}

	return r.toDomain(ctx, dto)
}

func (r *GormBatchRepository) toDomain(ctx context.Context, dto BatchDTO) (ports.DispatchedBatch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.DispatchedBatch{}, err
	}

	dispatchID, err := kernel.UUIDFromBytes(dto.DispatchID[:])
	if err != nil {
		return ports.DispatchedBatch{}, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return ports.DispatchedBatch{}, err
	}

	rule, err := batch.ParseRule(dto.Rule)
	if err != nil {
		return ports.DispatchedBatch{}, err
	}

	orderIDs := make([]kernel.UUID, 0, len(dto.OrderIDs))
	for _, raw := range dto.OrderIDs {
		orderID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return ports.DispatchedBatch{}, err
		}
		orderIDs = append(orderIDs, orderID)
	}

	orders, err := orderrepo.NewGormOrderRepository(r.db, r.tracker).GetByIDs(ctx, orderIDs)
	if err != nil {
		return ports.DispatchedBatch{}, err
	}

	var b *batch.Batch
	if dto.DestinationX != nil && dto.DestinationY != nil {
		dest, err := kernel.NewLocation(*dto.DestinationX, *dto.DestinationY)
		if err != nil {
			return ports.DispatchedBatch{}, err
		}
		b, err = batch.RestoreBatch(id, rule, orders, dest)
		if err != nil {
			return ports.DispatchedBatch{}, err
		}
	} else {
		b, err = batch.NewBatch(id, rule, orders)
		if err != nil {
			return ports.DispatchedBatch{}, err
		}
	}

	return ports.DispatchedBatch{
		DispatchID: dispatchID,
		CourierID:  courierID,
		Sequence:   dto.Sequence,
		Batch:      b,
	}, nil
}
