// Package postgres provides the GORM-based Unit of Work used by the command handlers.
// A unit of work spans one business transaction: the order, courier and batch
// repositories it hands out share the same *gorm.DB transaction.
//
// Usage:
//
//	uow := NewGormUnitOfWorkFactory(db).Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	pending, err := uow.OrderRepository().GetAllPending(ctx)
//	if err != nil {
//	    return err
//	}
//	// dispatch, then persist the assigned batches
//	if err := uow.BatchRepository().Add(ctx, dispatched); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after Commit returns gorm.ErrInvalidTransaction, which the deferred
// call discards.
//
// Repositories report every write back to the unit of work. Writes made inside a
// transaction only become visible through CommittedBatches once Commit succeeds.
//
// Each UnitOfWork instance is single-goroutine. Concurrent callers create their own.
package postgres

import (
	"context"

	"lastmile/internal/adapters/out/postgres/batchrepo"
	"lastmile/internal/adapters/out/postgres/courierrepo"
	"lastmile/internal/adapters/out/postgres/orderrepo"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one GORM connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and tracked aggregates.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records every aggregate
// the repositories wrote through it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
	committed         []trackedAggregate
}

// Begin opens the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err == nil {
		uow.committed = append(uow.committed, uow.trackedAggregates...)
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// Rollback discards the transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// CourierRepository returns a courier repository bound to the open transaction,
// or to the connection pool when none is open.
func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn(), uow)
}

// OrderRepository returns an order repository bound like CourierRepository.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// BatchRepository returns a batch repository bound like CourierRepository.
func (uow *GormUnitOfWork) BatchRepository() ports.BatchRepository {
	return batchrepo.NewGormBatchRepository(uow.conn(), uow)
}

// TrackAggregate records an aggregate written during the unit of work.
// Repositories call it after every successful write. Outside a transaction the
// write is already durable and counts as committed.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	tracked := trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	}

	if uow.tx == nil {
		uow.committed = append(uow.committed, tracked)
		return
	}
	uow.trackedAggregates = append(uow.trackedAggregates, tracked)
}

func (uow *GormUnitOfWork) CommittedBatches() []ports.DispatchedBatch {
	batches := make([]ports.DispatchedBatch, 0, len(uow.committed))
	for _, tracked := range uow.committed {
		if dispatched, ok := tracked.Aggregate.(ports.DispatchedBatch); ok {
			batches = append(batches, dispatched)
		}
	}
	return batches
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
