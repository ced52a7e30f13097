// Package batchrepo persists the batches a dispatch run handed to couriers.
package batchrepo

import (
	"time"

	"lastmile/internal/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BatchDTO is one row per assigned batch. Member orders are referenced by id.
type BatchDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	DispatchID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	CourierID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Sequence     int            `gorm:"not null"`
	Rule         string         `gorm:"type:varchar(32);not null"`
	OrderIDs     pq.StringArray `gorm:"type:text[];not null"`
	DestinationX *float64       `gorm:"type:double precision"`
	DestinationY *float64       `gorm:"type:double precision"`
	CreatedAt    time.Time
}

func (BatchDTO) TableName() string {
	return "batches"
}

func fromDomain(dispatched ports.DispatchedBatch) BatchDTO {
	b := dispatched.Batch

	ids := make(pq.StringArray, 0, b.Len())
	for _, id := range b.OrderIDs() {
		ids = append(ids, id.String())
	}

	dto := BatchDTO{
		ID:         b.ID().Bytes(),
		DispatchID: dispatched.DispatchID.Bytes(),
		CourierID:  dispatched.CourierID.Bytes(),
		Sequence:   dispatched.Sequence,
		Rule:       b.Rule().String(),
		OrderIDs:   ids,
	}

	if dest, ok := b.Destination(); ok {
		x, y := dest.X(), dest.Y()
		dto.DestinationX = &x
		dto.DestinationY = &y
	}

	return dto
}
