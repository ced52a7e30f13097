package batch

import (
	"errors"
	"slices"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	// ErrBatchIsNotConstructed is returned when a Batch was not created through NewBatch.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")

	// ErrOrdersAreRequired is returned when a batch would have no orders.
	ErrOrdersAreRequired = errs.NewValueIsRequiredError("orders")
)

// Batch is a candidate group of orders carried by one courier to one destination.
//
// Batch follows these invariants:
//   - Has a valid identifier and the rule that proposed it
//   - Holds at least one order, in the order the grouper emitted them
//   - The destination is undefined until SetDestination is called
//   - An order may belong to several batches
type Batch struct {
	id     kernel.UUID
	rule   Rule
	orders []*order.Order

	destination    kernel.Location
	hasDestination bool

	guard guard.ConstructorGuard
}

// NewBatch creates a batch without a destination. The orders slice is copied.
func NewBatch(id kernel.UUID, rule Rule, orders []*order.Order) (*Batch, error) {
	b := &Batch{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setRule(rule),
		b.setOrders(orders),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBatch rebuilds a persisted batch together with its destination.
func RestoreBatch(id kernel.UUID, rule Rule, orders []*order.Order, destination kernel.Location) (*Batch, error) {
	b, err := NewBatch(id, rule, orders)
	if err != nil {
		return nil, err
	}

	if err := b.SetDestination(destination); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}

	return b.guard.Validate(ErrBatchIsNotConstructed)
}

func (b *Batch) ID() kernel.UUID {
	return b.id
}

func (b *Batch) Rule() Rule {
	return b.rule
}

// Orders returns a copy of the member orders in insertion order.
func (b *Batch) Orders() []*order.Order {
	return slices.Clone(b.orders)
}

// OrderIDs returns the member order identifiers in insertion order.
func (b *Batch) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(b.orders))
	for _, o := range b.orders {
		ids = append(ids, o.ID())
	}

	return ids
}

func (b *Batch) Len() int {
	return len(b.orders)
}

// Locations returns the delivery locations of the member orders.
func (b *Batch) Locations() []kernel.Location {
	locations := make([]kernel.Location, 0, len(b.orders))
	for _, o := range b.orders {
		locations = append(locations, o.Location())
	}

	return locations
}

// Destination returns the computed destination and whether it has been set.
func (b *Batch) Destination() (kernel.Location, bool) {
	return b.destination, b.hasDestination
}

func (b *Batch) HasDestination() bool {
	return b.hasDestination
}

// SetDestination records the point the courier drives to.
func (b *Batch) SetDestination(destination kernel.Location) error {
	if err := errors.Join(b.Validate(), destination.Validate()); err != nil {
		return err
	}

	b.destination = destination
	b.hasDestination = true
	return nil
}

// Contains reports whether an order with the given id is a member of the batch.
func (b *Batch) Contains(orderID kernel.UUID) bool {
	return slices.ContainsFunc(b.orders, func(o *order.Order) bool {
		return o.ID().IsEqual(orderID)
	})
}

func (b *Batch) IsEqual(other *Batch) bool {
	return other != nil && b.id.IsEqual(other.id)
}

func (b *Batch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	b.id = id
	return nil
}

func (b *Batch) setRule(rule Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	b.rule = rule
	return nil
}

func (b *Batch) setOrders(orders []*order.Order) error {
	if len(orders) == 0 {
		return ErrOrdersAreRequired
	}

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
	}

	b.orders = slices.Clone(orders)
	return nil
}
