package order

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrKitchenIDIsRequired  = errs.NewValueIsRequiredError("kitchenId")
	ErrCustomerIDIsRequired = errs.NewValueIsRequiredError("customerId")
)

// Order is a pickup order waiting for dispatch. It is the aggregate root of the order
// lifecycle.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Kitchen and customer identifiers are non-empty
//   - Pickup time and location are valid value objects
//   - Kitchen, customer, pickup time and location never change after construction
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// kitchenID identifies the kitchen the order is picked up from
	kitchenID string

	// customerID identifies the customer the order is delivered to
	customerID string

	// pickupTime is the wall-clock minute the order is ready
	pickupTime kernel.TimeOfDay

	// location is the delivery location of the order
	location kernel.Location

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a Pending order. All arguments are validated and every violation
// is reported at once.
//
// Example:
//
//	pickup, _ := kernel.ParseTimeOfDay("12:00 PM")
//	location, _ := kernel.NewLocation(0, 0)
//	o, err := order.NewOrder(kernel.NewUUID(), "kitchenA", "custX", pickup, location)
func NewOrder(
	id kernel.UUID,
	kitchenID string,
	customerID string,
	pickupTime kernel.TimeOfDay,
	location kernel.Location,
) (*Order, error) {
	return RestoreOrder(id, kitchenID, customerID, pickupTime, location, Pending)
}

// RestoreOrder rebuilds an order from persistence, including its status.
func RestoreOrder(
	id kernel.UUID,
	kitchenID string,
	customerID string,
	pickupTime kernel.TimeOfDay,
	location kernel.Location,
	status Status,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setKitchenID(kitchenID),
		order.setCustomerID(customerID),
		order.setPickupTime(pickupTime),
		order.setLocation(location),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) KitchenID() string {
	return o.kitchenID
}

func (o *Order) CustomerID() string {
	return o.customerID
}

func (o *Order) PickupTime() kernel.TimeOfDay {
	return o.pickupTime
}

func (o *Order) Location() kernel.Location {
	return o.location
}

func (o *Order) Status() Status {
	return o.status
}

// MarkBatched records that the order left with a courier. Only Pending orders can be batched.
func (o *Order) MarkBatched() error {
	newStatus, err := o.status.MarkBatched()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setKitchenID(kitchenID string) error {
	if kitchenID == "" {
		return ErrKitchenIDIsRequired
	}
	o.kitchenID = kitchenID
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if customerID == "" {
		return ErrCustomerIDIsRequired
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setPickupTime(pickupTime kernel.TimeOfDay) error {
	if err := pickupTime.Validate(); err != nil {
		return err
	}
	o.pickupTime = pickupTime
	return nil
}

func (o *Order) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
