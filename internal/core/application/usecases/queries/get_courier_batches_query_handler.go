package queries

import (
	"context"

	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetCourierBatchesQueryHandler reads a courier's batches from the batches table.
type GetCourierBatchesQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierBatchesQueryHandler(db *gorm.DB) GetCourierBatchesQueryHandler {
	return GetCourierBatchesQueryHandler{db: db}
}

// Handle returns the courier's batches, oldest dispatch first and by sequence within a run.
// An unknown courier yields an empty slice.
func (h GetCourierBatchesQueryHandler) Handle(
	ctx context.Context,
	query GetCourierBatchesQuery,
) ([]GetCourierBatchesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	batches := make([]GetCourierBatchesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT 
			id, 
			dispatch_id, 
			sequence, 
			rule, 
			order_ids, 
			destination_x, 
			destination_y 
		FROM batches
		WHERE courier_id = ?
		ORDER BY MIN(created_at) OVER (PARTITION BY dispatch_id), dispatch_id, sequence
	`, query.CourierID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetCourierBatchesQueryResponse
		var id, dispatchID uuid.UUID
		var rule string
		var orderIDs pq.StringArray
		var destX, destY *float64

		err = rows.Scan(
			&id,
			&dispatchID,
			&resp.Sequence,
			&rule,
			&orderIDs,
			&destX,
			&destY,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if resp.DispatchID, err = kernel.UUIDFromGoogle(dispatchID); err != nil {
			return nil, err
		}
		if resp.Rule, err = batch.ParseRule(rule); err != nil {
			return nil, err
		}

		resp.OrderIDs = make([]kernel.UUID, 0, len(orderIDs))
		for _, raw := range orderIDs {
			orderID, idErr := kernel.UUIDFromString(raw)
			if idErr != nil {
				return nil, idErr
			}
			resp.OrderIDs = append(resp.OrderIDs, orderID)
		}

		if destX != nil && destY != nil {
			if resp.Destination, err = kernel.NewLocation(*destX, *destY); err != nil {
				return nil, err
			}
			resp.HasDestination = true
		}

		batches = append(batches, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return batches, nil
}
