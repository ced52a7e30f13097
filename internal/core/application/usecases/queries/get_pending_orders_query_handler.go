package queries

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler reads Pending orders from the orders table.
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle returns the pending orders in creation order, the same order dispatch sees them in.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT 
			id, 
			kitchen_id, 
			customer_id, 
			pickup_minute, 
			location_x, 
			location_y 
		FROM orders
		WHERE status = ?
		ORDER BY created_at, id
	`, int(order.Pending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingOrdersQueryResponse
		var pickupMinute int
		var locationX, locationY float64
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.KitchenID,
			&resp.CustomerID,
			&pickupMinute,
			&locationX,
			&locationY,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if resp.PickupTime, err = kernel.TimeOfDayFromMinutes(pickupMinute); err != nil {
			return nil, err
		}
		if resp.Location, err = kernel.NewLocation(locationX, locationY); err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
