package services

import (
	"lastmile/internal/core/domain/model/assignment"
	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/order"
)

// Dispatcher runs the whole pipeline over one snapshot: group, optimize, assign.
//
// Dispatcher holds no state between runs and never mutates the orders or couriers it
// is given. Marking orders as batched is left to the caller.
//
// Example usage:
//
//	dispatcher, err := NewDispatcher(DefaultGrouperConfig(), DefaultAssignerConfig())
//	if err != nil {
//	    return err
//	}
//	result, err := dispatcher.Dispatch(orders, couriers)
//	for _, id := range result.CourierIDs() {
//	    fmt.Println(id, len(result.BatchesFor(id)))
//	}
type Dispatcher struct {
	grouper   OrderGrouper
	optimizer RouteOptimizer
	assigner  BatchAssigner
}

// NewDispatcher validates both configurations.
func NewDispatcher(grouping GrouperConfig, assigning AssignerConfig) (Dispatcher, error) {
	grouper, err := NewOrderGrouper(grouping)
	if err != nil {
		return Dispatcher{}, err
	}

	assigner, err := NewBatchAssigner(assigning)
	if err != nil {
		return Dispatcher{}, err
	}

	return Dispatcher{
		grouper:   grouper,
		optimizer: NewRouteOptimizer(),
		assigner:  assigner,
	}, nil
}

// Dispatch returns the courier to batches mapping for orders and couriers.
func (d Dispatcher) Dispatch(orders []*order.Order, couriers []*courier.Courier) (*assignment.Assignment, error) {
	batches, err := d.grouper.Group(orders)
	if err != nil {
		return nil, err
	}

	if err := d.optimizer.OptimizeAll(batches); err != nil {
		return nil, err
	}

	return d.assigner.Assign(batches, couriers)
}
