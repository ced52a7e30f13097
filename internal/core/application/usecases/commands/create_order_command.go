package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrKitchenIDIsRequired  = errors.New("kitchen id is required")
	ErrCustomerIDIsRequired = errors.New("customer id is required")
)

// CreateOrderCommand represents a request to register a pickup order.
// The pickup time and location are parsed here so malformed input never reaches
// the dispatch pipeline.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "kitchenA", "custX", "12:05 PM", 2, 2)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	kitchenID  string
	customerID string
	pickupTime kernel.TimeOfDay
	location   kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// pickupTime accepts "03:04 PM" and "15:04". All violations are reported at once.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	kitchenID string,
	customerID string,
	pickupTime string,
	x float64,
	y float64,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setKitchenID(kitchenID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setPickupTime(pickupTime),
		orderCommand.setLocation(x, y),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) KitchenID() string {
	return c.kitchenID
}

func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

func (c CreateOrderCommand) PickupTime() kernel.TimeOfDay {
	return c.pickupTime
}

func (c CreateOrderCommand) Location() kernel.Location {
	return c.location
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setKitchenID(kitchenID string) error {
	if kitchenID == "" {
		return ErrKitchenIDIsRequired
	}

	c.kitchenID = kitchenID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return ErrCustomerIDIsRequired
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setPickupTime(pickupTime string) error {
	parsed, err := kernel.ParseTimeOfDay(pickupTime)
	if err != nil {
		return err
	}

	c.pickupTime = parsed
	return nil
}

func (c *CreateOrderCommand) setLocation(x, y float64) error {
	location, err := kernel.NewLocation(x, y)
	if err != nil {
		return err
	}

	c.location = location
	return nil
}
