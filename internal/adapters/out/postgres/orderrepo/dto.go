// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Pickup times are stored as minutes since midnight.
type OrderDTO struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	KitchenID    string      `gorm:"type:varchar(255);not null;index"`
	CustomerID   string      `gorm:"type:varchar(255);not null;index"`
	PickupMinute int         `gorm:"type:smallint;not null"`
	Location     LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Status       int         `gorm:"not null;index"`
	CreatedAt    time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO represents the embedded delivery location coordinates within the order table.
type LocationDTO struct {
	X float64 `gorm:"type:double precision"`
	Y float64 `gorm:"type:double precision"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(order *order.Order) OrderDTO {
	return OrderDTO{
		ID:           order.ID().Bytes(),
		KitchenID:    order.KitchenID(),
		CustomerID:   order.CustomerID(),
		PickupMinute: order.PickupTime().Minutes(),
		Location: LocationDTO{
			X: order.Location().X(),
			Y: order.Location().Y(),
		},
		Status: int(order.Status()),
	}
}

// ToDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status using RestoreOrder.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.TimeOfDayFromMinutes(dto.PickupMinute)
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.X, dto.Location.Y)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.KitchenID, dto.CustomerID, pickup, loc, order.Status(dto.Status))
}
