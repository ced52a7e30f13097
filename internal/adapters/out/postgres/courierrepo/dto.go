// Package courierrepo maps courier aggregates to the couriers table.
package courierrepo

import (
	"time"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name      string      `gorm:"type:varchar(255);not null"`
	Location  LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	CreatedAt time.Time
}

func (CourierDTO) TableName() string {
	return "couriers"
}

// LocationDTO holds the courier's current coordinates.
type LocationDTO struct {
	X float64 `gorm:"type:double precision"`
	Y float64 `gorm:"type:double precision"`
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:   aggregate.ID().Bytes(),
		Name: aggregate.Name(),
		Location: LocationDTO{
			X: aggregate.Location().X(),
			Y: aggregate.Location().Y(),
		},
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.X, dto.Location.Y)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, loc)
}
