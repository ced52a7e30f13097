package services

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"lastmile/internal/core/domain/model/assignment"
	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

var (
	// ErrBatchHasNoDestination is returned when a batch reaches the assigner before the optimizer.
	ErrBatchHasNoDestination = errors.New("batch has no destination")

	// ErrCourierIsRequired is returned when the courier list contains nil.
	ErrCourierIsRequired = errs.NewValueIsRequiredError("courier")
)

// AssignmentPolicy selects how the assigner remembers batches it already placed.
type AssignmentPolicy int

const (
	// PolicyPerBatch remembers placed batches by id. A batch listed twice is placed once.
	PolicyPerBatch AssignmentPolicy = iota

	// PolicyLegacyDestination remembers placed batches by destination. Once a destination
	// is placed, later batches with the same destination are reported as unassigned.
	PolicyLegacyDestination
)

func (p AssignmentPolicy) String() string {
	switch p {
	case PolicyPerBatch:
		return "per_batch"
	case PolicyLegacyDestination:
		return "legacy_destination"
	default:
		return fmt.Sprintf("AssignmentPolicy(%d)", int(p))
	}
}

// ParseAssignmentPolicy accepts the names returned by AssignmentPolicy.String.
func ParseAssignmentPolicy(s string) (AssignmentPolicy, error) {
	switch s {
	case "per_batch":
		return PolicyPerBatch, nil
	case "legacy_destination":
		return PolicyLegacyDestination, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("assignment policy", fmt.Errorf("%q is unknown", s))
	}
}

// AssignerConfig tunes the BatchAssigner.
type AssignerConfig struct {
	Policy AssignmentPolicy

	// MaxBatchesPerCourier caps the batches one courier receives. Zero means unbounded.
	MaxBatchesPerCourier int
}

func DefaultAssignerConfig() AssignerConfig {
	return AssignerConfig{
		Policy: PolicyPerBatch,
	}
}

func (c AssignerConfig) Validate() error {
	var policyErr, capErr error
	if c.Policy != PolicyPerBatch && c.Policy != PolicyLegacyDestination {
		policyErr = errs.NewValueIsInvalidErrorWithCause("assignment policy", fmt.Errorf("%s is unknown", c.Policy))
	}
	if c.MaxBatchesPerCourier < 0 {
		capErr = errs.NewValueIsOutOfRangeError("max batches per courier", c.MaxBatchesPerCourier, 0, math.MaxInt)
	}

	return errors.Join(policyErr, capErr)
}

// BatchAssigner hands every batch to the nearest courier by Manhattan distance.
//
// Couriers are scanned in lexicographic order of their location (x, then y). The
// input slice is not reordered. Ties go to the courier met first in scan order.
// A courier may receive any number of batches unless MaxBatchesPerCourier is set.
type BatchAssigner struct {
	cfg AssignerConfig
}

func NewBatchAssigner(cfg AssignerConfig) (BatchAssigner, error) {
	if err := cfg.Validate(); err != nil {
		return BatchAssigner{}, err
	}

	return BatchAssigner{cfg: cfg}, nil
}

func (a BatchAssigner) Config() AssignerConfig {
	return a.cfg
}

type destinationKey struct {
	x, y float64
}

// Assign places batches on couriers in batch order. Batches that find no courier are
// reported through Assignment.Unassigned; with no couriers at all every batch ends up
// there and no error is returned.
func (a BatchAssigner) Assign(batches []*batch.Batch, couriers []*courier.Courier) (*assignment.Assignment, error) {
	for i, b := range batches {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("batch %d: %w", i, err)
		}
		if !b.HasDestination() {
			return nil, fmt.Errorf("batch %s: %w", b.ID(), ErrBatchHasNoDestination)
		}
	}

	scan, err := scanOrder(couriers)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(scan))
	for _, c := range scan {
		ids = append(ids, c.ID())
	}

	result, err := assignment.NewAssignment(ids)
	if err != nil {
		return nil, err
	}

	committedBatches := make(map[kernel.UUID]struct{})
	committedDestinations := make(map[destinationKey]struct{})
	load := make(map[kernel.UUID]int, len(scan))

	for _, b := range batches {
		destination, _ := b.Destination()
		key := destinationKey{x: destination.X(), y: destination.Y()}

		switch a.cfg.Policy {
		case PolicyLegacyDestination:
			if _, ok := committedDestinations[key]; ok {
				if err := result.MarkUnassigned(b); err != nil {
					return nil, err
				}
				continue
			}
		default:
			if _, ok := committedBatches[b.ID()]; ok {
				continue
			}
		}

		best, err := a.nearest(scan, load, destination)
		if err != nil {
			return nil, err
		}

		if best == nil {
			if err := result.MarkUnassigned(b); err != nil {
				return nil, err
			}
			continue
		}

		if err := result.Assign(best.ID(), b); err != nil {
			return nil, err
		}
		load[best.ID()]++
		committedBatches[b.ID()] = struct{}{}
		committedDestinations[key] = struct{}{}
	}

	return result, nil
}

// nearest returns the closest courier below the cap, or nil when none is eligible.
func (a BatchAssigner) nearest(
	scan []*courier.Courier,
	load map[kernel.UUID]int,
	destination kernel.Location,
) (*courier.Courier, error) {
	var (
		best         *courier.Courier
		bestDistance = math.Inf(1)
	)

	for _, c := range scan {
		if a.cfg.MaxBatchesPerCourier > 0 && load[c.ID()] >= a.cfg.MaxBatchesPerCourier {
			continue
		}

		distance, err := c.DistanceTo(destination)
		if err != nil {
			return nil, err
		}

		if best == nil || distance < bestDistance {
			best = c
			bestDistance = distance
		}
	}

	return best, nil
}

// scanOrder validates couriers and returns a copy sorted by location.
func scanOrder(couriers []*courier.Courier) ([]*courier.Courier, error) {
	for i, c := range couriers {
		if c == nil {
			return nil, fmt.Errorf("courier %d: %w", i, ErrCourierIsRequired)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("courier %d: %w", i, err)
		}
	}

	sorted := slices.Clone(couriers)
	slices.SortStableFunc(sorted, func(a, b *courier.Courier) int {
		return a.Location().Compare(b.Location())
	})

	return sorted, nil
}
