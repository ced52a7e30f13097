package order

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Batched
//
// An order is Pending until a dispatch run places it into a batch that was handed
// to a courier. Orders that were only grouped into unassigned batches stay Pending
// and take part in the next run.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order waits to be grouped and dispatched.
	Pending

	// Batched indicates the order travels in a batch assigned to a courier.
	// This is a final state.
	Batched
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "Unknown",
		Pending: "Pending",
		Batched: "Batched",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending: "Pending",
		Batched: "Batched",
	}
}

// Validate checks if the Status value is valid.
// Used for statuses restored from persistence.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// MarkBatched transitions Pending to Batched. Any other source status is rejected.
func (s Status) MarkBatched() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to batch", s.String()),
		)
	}

	return Batched, nil
}
