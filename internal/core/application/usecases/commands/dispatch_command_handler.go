package commands

import (
	"context"
	"log/slog"
	"time"

	"lastmile/internal/core/domain/model/assignment"
	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// CourierBatches lists the batches one courier received, in assignment order.
type CourierBatches struct {
	CourierID kernel.UUID
	Batches   []*batch.Batch
}

// DispatchResult summarizes one dispatch run.
type DispatchResult struct {
	DispatchID kernel.UUID
	// Candidates counts every batch the assigner saw: Assigned plus Unassigned.
	Candidates int
	Assigned   int
	Unassigned int
	// Couriers holds every courier in scan order, including couriers without batches.
	Couriers []CourierBatches
}

// DispatchObserver receives the outcome of every dispatch run.
type DispatchObserver interface {
	ObserveDispatch(trigger string, result DispatchResult, elapsed time.Duration)
	ObserveDispatchFailure(trigger string)
}

// DispatchCommandHandler loads a snapshot of pending orders and couriers, runs the
// dispatcher and stores the assigned batches in one transaction.
//
// Orders of assigned batches become Batched. Orders that only appear in unassigned
// batches stay Pending for the next run. Couriers are notified after commit; a failed
// notification is logged and does not undo the run.
//
// Example:
//
//	handler := NewDispatchCommandHandler(uowFactory, dispatcher, publisher, observer)
//	cmd, _ := NewDispatchCommand(TriggerHTTP)
//	result, err := handler.Handle(ctx, cmd)
type DispatchCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.Dispatcher
	publisher  ports.AssignmentPublisher
	observer   DispatchObserver
	logger     *slog.Logger
}

// NewDispatchCommandHandler creates the handler. publisher and observer may be nil.
func NewDispatchCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.Dispatcher,
	publisher ports.AssignmentPublisher,
	observer DispatchObserver,
) DispatchCommandHandler {
	return DispatchCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		publisher:  publisher,
		observer:   observer,
		logger:     slog.Default().With("component", "dispatch_command_handler"),
	}
}

// Handle runs one dispatch cycle.
func (h DispatchCommandHandler) Handle(ctx context.Context, cmd DispatchCommand) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	started := time.Now()
	result, committed, err := h.dispatch(ctx)
	if err != nil {
		if h.observer != nil {
			h.observer.ObserveDispatchFailure(cmd.Trigger())
		}
		return DispatchResult{}, err
	}

	if h.observer != nil {
		h.observer.ObserveDispatch(cmd.Trigger(), result, time.Since(started))
	}

	h.publish(ctx, result.DispatchID, committed)

	h.logger.InfoContext(ctx, "dispatch finished",
		"dispatch_id", result.DispatchID.String(),
		"trigger", cmd.Trigger(),
		"candidates", result.Candidates,
		"assigned", result.Assigned,
		"unassigned", result.Unassigned,
	)

	return result, nil
}

func (h DispatchCommandHandler) dispatch(ctx context.Context) (DispatchResult, []ports.DispatchedBatch, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchResult{}, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()
	batchRepo := uow.BatchRepository()

	orders, err := orderRepo.GetAllPending(ctx)
	if err != nil {
		return DispatchResult{}, nil, err
	}

	couriers, err := courierRepo.GetAll(ctx)
	if err != nil {
		return DispatchResult{}, nil, err
	}

	plan, err := h.dispatcher.Dispatch(orders, couriers)
	if err != nil {
		return DispatchResult{}, nil, err
	}

	result := newDispatchResult(kernel.NewUUID(), plan)

	batched := make(map[kernel.UUID]struct{})
	for _, entry := range result.Couriers {
		for seq, b := range entry.Batches {
			if err = batchRepo.Add(ctx, ports.DispatchedBatch{
				DispatchID: result.DispatchID,
				CourierID:  entry.CourierID,
				Sequence:   seq,
				Batch:      b,
			}); err != nil {
				return DispatchResult{}, nil, err
			}

			if err = markBatched(ctx, orderRepo, b.Orders(), batched); err != nil {
				return DispatchResult{}, nil, err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchResult{}, nil, err
	}

	return result, uow.CommittedBatches(), nil
}

// markBatched moves each order to Batched once, even when it travels in several batches.
func markBatched(
	ctx context.Context,
	repo ports.OrderRepository,
	orders []*order.Order,
	seen map[kernel.UUID]struct{},
) error {
	for _, o := range orders {
		if _, ok := seen[o.ID()]; ok {
			continue
		}
		seen[o.ID()] = struct{}{}

		if err := o.MarkBatched(); err != nil {
			return err
		}
		if err := repo.Update(ctx, o); err != nil {
			return err
		}
	}

	return nil
}

// publish notifies every courier about the batches it received. Only batches the
// unit of work reports as committed are announced.
func (h DispatchCommandHandler) publish(ctx context.Context, dispatchID kernel.UUID, committed []ports.DispatchedBatch) {
	if h.publisher == nil {
		return
	}

	for _, assignment := range courierAssignments(dispatchID, committed) {
		if err := h.publisher.Publish(ctx, assignment); err != nil {
			h.logger.ErrorContext(ctx, "failed to publish courier assignment",
				"dispatch_id", dispatchID.String(),
				"courier_id", assignment.CourierID.String(),
				"error", err,
			)
		}
	}
}

// courierAssignments groups committed batches per courier. Couriers keep the order in
// which their first batch was written; batches keep their sequence.
func courierAssignments(dispatchID kernel.UUID, committed []ports.DispatchedBatch) []ports.CourierAssignment {
	var assignments []ports.CourierAssignment
	index := make(map[kernel.UUID]int)

	for _, dispatched := range committed {
		if !dispatched.DispatchID.IsEqual(dispatchID) {
			continue
		}

		i, ok := index[dispatched.CourierID]
		if !ok {
			i = len(assignments)
			index[dispatched.CourierID] = i
			assignments = append(assignments, ports.CourierAssignment{
				DispatchID: dispatchID,
				CourierID:  dispatched.CourierID,
			})
		}
		assignments[i].Batches = append(assignments[i].Batches, dispatched.Batch)
	}

	return assignments
}

func newDispatchResult(dispatchID kernel.UUID, plan *assignment.Assignment) DispatchResult {
	result := DispatchResult{
		DispatchID: dispatchID,
		Assigned:   plan.AssignedCount(),
		Unassigned: len(plan.Unassigned()),
		Couriers:   make([]CourierBatches, 0, len(plan.CourierIDs())),
	}
	result.Candidates = result.Assigned + result.Unassigned

	for _, id := range plan.CourierIDs() {
		result.Couriers = append(result.Couriers, CourierBatches{
			CourierID: id,
			Batches:   plan.BatchesFor(id),
		})
	}

	return result
}
