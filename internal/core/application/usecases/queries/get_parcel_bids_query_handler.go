package queries

import (
	"context"
	"time"

	"parcelmatch/internal/core/domain/model/bid"
	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelBidsQueryHandler reads a parcel's bid list from the database.
// The ordering is part of the contract: clients render the rows as
// returned, so the selected bid must come first and pending bids must be
// sorted cheapest first with creation time as the tiebreaker.
type GetParcelBidsQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelBidsQueryHandler creates a handler for bid list queries.
// Requires a GORM database connection for query execution.
func NewGetParcelBidsQueryHandler(db *gorm.DB) GetParcelBidsQueryHandler {
	return GetParcelBidsQueryHandler{db: db}
}

// Handle executes the bid list query.
func (h GetParcelBidsQueryHandler) Handle(
	ctx context.Context,
	query GetParcelBidsQuery,
) ([]GetParcelBidsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	bids := make([]GetParcelBidsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			courier_id,
			price_cents,
			estimated_hours,
			message,
			status,
			created_at,
			selected_at
		FROM bids
		WHERE parcel_id = ?
		ORDER BY
			CASE status WHEN ? THEN 0 WHEN ? THEN 1 ELSE 2 END,
			price_cents,
			created_at
	`, query.ParcelID().Bytes(), bid.Selected.String(), bid.Pending.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetParcelBidsQueryResponse
		var id, courierID uuid.UUID
		var createdAt time.Time
		var selectedAt *time.Time

		err = rows.Scan(
			&id,
			&courierID,
			&resp.PriceCents,
			&resp.EstimatedHours,
			&resp.Message,
			&resp.Status,
			&createdAt,
			&selectedAt,
		)
		if err != nil {
			return nil, err
		}

		bidID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		courierUUID, idErr := kernel.UUIDFromBytes(courierID[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = bidID
		resp.CourierID = courierUUID
		resp.CreatedAt = createdAt
		resp.SelectedAt = selectedAt
		bids = append(bids, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bids, nil
}
