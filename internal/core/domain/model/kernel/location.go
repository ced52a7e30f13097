package kernel

import (
	"cmp"
	"errors"
	"fmt"
	"math"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
// Locations must be created using NewLocation to ensure validity.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location represents a point on the continuous delivery plane.
// Location is an immutable value object; both coordinates are finite float64 values.
// The zero value of Location is invalid and will fail validation - use NewLocation to create instances.
//
// Example:
//
//	loc, err := kernel.NewLocation(2.5, 7)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Location: %s", loc) // Output: Location(2.5,7)
type Location struct { //nolint:recvcheck //using for validation
	x     float64
	y     float64
	guard guard.ConstructorGuard
}

// NewLocation creates a new Location with the specified coordinates.
// NaN and infinite coordinates are rejected so that malformed input fails at ingestion
// instead of poisoning distance and centroid calculations later on.
//
// Parameters:
//   - x: The X coordinate (any finite value)
//   - y: The Y coordinate (any finite value)
//
// Returns:
//   - Location: A valid location instance
//   - error: Validation error if a coordinate is not a finite number
//
// Example:
//
//	loc, err := NewLocation(0, 0)
//	if err != nil {
//	    log.Fatal("Invalid coordinates:", err)
//	}
func NewLocation(x float64, y float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setX(x), loc.setY(y)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks if the Location was properly constructed using NewLocation.
//
// Returns:
//   - error: ErrLocationIsNotConstructed if the location was not properly initialized, nil otherwise
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// X returns the X coordinate of the location.
func (l Location) X() float64 {
	return l.x
}

// Y returns the Y coordinate of the location.
func (l Location) Y() float64 {
	return l.y
}

// String returns a human-readable representation in the format "Location(x,y)".
// This method implements the fmt.Stringer interface.
func (l Location) String() string {
	return fmt.Sprintf("Location(%g,%g)", l.x, l.y)
}

// IsEqual compares two locations for equality of both coordinates.
// Both locations must be properly constructed for the comparison to succeed.
//
// Parameters:
//   - other: The Location to compare with
//
// Returns:
//   - bool: true if locations are equal, false otherwise
//   - error: Validation error if either location is improperly constructed
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.x == other.x && l.y == other.y, nil
}

// Compare imposes the total lexicographic order on locations: by X first, then by Y.
// It returns -1, 0 or +1 and is used to give couriers a deterministic scan order.
//
// Example:
//
//	a, _ := NewLocation(1, 9)
//	b, _ := NewLocation(2, 0)
//	a.Compare(b) // -1
func (l Location) Compare(other Location) int {
	if c := cmp.Compare(l.x, other.x); c != 0 {
		return c
	}

	return cmp.Compare(l.y, other.y)
}

// Distance calculates the Manhattan distance between two locations.
// Manhattan distance is the sum of the absolute differences of their coordinates: |x1-x2| + |y1-y2|.
// It is the only metric used by the dispatch pipeline.
// Both locations must be properly constructed (pass validation) for the calculation to succeed.
//
// Parameters:
//   - other: The Location to calculate distance to
//
// Returns:
//   - float64: The Manhattan distance between the two locations
//   - error: Validation error if either location is improperly constructed
//
// Example:
//
//	loc1, _ := NewLocation(0, 0)
//	loc2, _ := NewLocation(5, 5)
//
//	distance, err := loc1.Distance(loc2)
//	// distance = 10, err = nil
//
//	// Distance is symmetric
//	distance2, _ := loc2.Distance(loc1)
//	// distance2 = 10
func (l Location) Distance(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return math.Abs(l.x-other.x) + math.Abs(l.y-other.y), nil
}

// setX sets the x coordinate with validation.
// Pointer receivers on the private setters let the constructor validate in place.
func (l *Location) setX(x float64) error {
	if !isFinite(x) {
		return errs.NewValueIsInvalidErrorWithCause("x", fmt.Errorf("%v is not a finite number", x))
	}
	l.x = x
	return nil
}

// setY sets the y coordinate with validation.
func (l *Location) setY(y float64) error {
	if !isFinite(y) {
		return errs.NewValueIsInvalidErrorWithCause("y", fmt.Errorf("%v is not a finite number", y))
	}
	l.y = y
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
