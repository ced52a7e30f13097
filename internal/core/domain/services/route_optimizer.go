package services

import (
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/kernel"
)

// ErrEmptyBatch is returned when the optimizer receives a batch without orders.
// The destination of such a batch stays undefined.
var ErrEmptyBatch = errors.New("batch has no orders")

// RouteOptimizer computes the delivery destination of a batch as the centroid of its
// member order locations.
//
// Example usage:
//
//	optimizer := NewRouteOptimizer()
//	if err := optimizer.Optimize(b); err != nil {
//	    return err
//	}
//	destination, _ := b.Destination()
type RouteOptimizer struct{}

func NewRouteOptimizer() RouteOptimizer {
	return RouteOptimizer{}
}

// Optimize sets the destination of b to the mean x and mean y of its orders.
func (RouteOptimizer) Optimize(b *batch.Batch) error {
	if b.Validate() != nil || b.Len() == 0 {
		return ErrEmptyBatch
	}

	centroid, err := Centroid(b.Locations())
	if err != nil {
		return err
	}

	return b.SetDestination(centroid)
}

// OptimizeAll optimizes every batch and stops at the first failure.
func (r RouteOptimizer) OptimizeAll(batches []*batch.Batch) error {
	for i, b := range batches {
		if err := r.Optimize(b); err != nil {
			return fmt.Errorf("batch %d: %w", i, err)
		}
	}

	return nil
}

// Centroid returns the arithmetic mean of locations on each axis.
func Centroid(locations []kernel.Location) (kernel.Location, error) {
	if len(locations) == 0 {
		return kernel.Location{}, ErrEmptyBatch
	}

	var sumX, sumY float64
	for _, l := range locations {
		if err := l.Validate(); err != nil {
			return kernel.Location{}, err
		}
		sumX += l.X()
		sumY += l.Y()
	}

	n := float64(len(locations))
	return kernel.NewLocation(sumX/n, sumY/n)
}
