package courier

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier available for dispatch.
//
// Business rules:
//   - Courier must have a valid UUID and a non-empty name
//   - Location must be a valid kernel.Location
//
// Example usage:
//
//	location, _ := kernel.NewLocation(1, 1)
//	courier, err := NewCourier(kernel.NewUUID(), "John Doe", location)
//	if err != nil {
//	    // Handle construction error
//	}
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// location is the current position of the courier on the delivery plane
	location kernel.Location
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified parameters.
// All parameters are validated and every violation is reported at once.
//
// Parameters:
//   - id: Unique identifier for the courier (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - location: Current position (must be valid location)
//
// Example:
//
//	location, _ := kernel.NewLocation(5, 7)
//	courier, err := NewCourier(kernel.NewUUID(), "Alice", location)
//	if err != nil {
//	    log.Fatal("Failed to create courier:", err)
//	}
//	fmt.Printf("Created courier: %s at %s", courier.Name(), courier.Location())
func NewCourier(id kernel.UUID, name string, location kernel.Location) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setLocation(location),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
// It applies the same validation as NewCourier.
func RestoreCourier(id kernel.UUID, name string, location kernel.Location) (*Courier, error) {
	return NewCourier(id, name, location)
}

// IsEqual compares two couriers by their unique identifiers.
// Two couriers are considered equal if they have the same ID, regardless of other attributes.
//
// Example:
//
//	courier1, _ := NewCourier(id, "Alice", location)
//	courier2, _ := NewCourier(id, "Bob", location)  // Same ID, different attributes
//	equal := courier1.IsEqual(courier2)  // true - same ID
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}

	return c.id.IsEqual(other.id)
}

// Validate ensures the courier was created via NewCourier or RestoreCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}

	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// DistanceTo returns the Manhattan distance from the courier to target.
func (c *Courier) DistanceTo(target kernel.Location) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	return c.location.Distance(target)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// Location returns the current position of the courier.
func (c *Courier) Location() kernel.Location {
	return c.location
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
