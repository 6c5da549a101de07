package queries

import (
	"context"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUserParcelsQueryHandler reads a sender's parcel list from the database.
type GetUserParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetUserParcelsQueryHandler creates a handler for parcel list queries.
// Requires a GORM database connection for query execution.
func NewGetUserParcelsQueryHandler(db *gorm.DB) GetUserParcelsQueryHandler {
	return GetUserParcelsQueryHandler{db: db}
}

// Handle executes the parcel list query, newest parcels first.
func (h GetUserParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetUserParcelsQuery,
) ([]GetUserParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parcels := make([]GetUserParcelsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			description,
			size,
			weight_grams,
			status,
			suggested_price_cents,
			bidding_deadline,
			selected_courier_id,
			version,
			created_at
		FROM parcels
		WHERE sender_id = ?
		ORDER BY created_at DESC, id
	`, query.SenderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUserParcelsQueryResponse
		var id uuid.UUID
		var selectedCourierID *uuid.UUID
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&resp.Description,
			&resp.Size,
			&resp.WeightGrams,
			&resp.Status,
			&resp.SuggestedCents,
			&resp.BiddingDeadline,
			&selectedCourierID,
			&resp.Version,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = parcelID
		resp.CreatedAt = createdAt

		if selectedCourierID != nil {
			courierID, idErr := kernel.UUIDFromBytes(selectedCourierID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.SelectedCourierID = &courierID
		}

		parcels = append(parcels, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
