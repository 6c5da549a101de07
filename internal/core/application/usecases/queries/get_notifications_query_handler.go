package queries

import (
	"context"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotificationsQueryHandler reads a user's notification feed from the
// database. Titles and deep links are derived from the stored type, not
// persisted, so changing the taxonomy display text never needs a migration.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for notification feed
// queries. Requires a GORM database connection for query execution.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle executes the feed query, newest notifications first.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) ([]GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	feed := make([]GetNotificationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			payload,
			read,
			parcel_id,
			created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC, id
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetNotificationsQueryResponse
		var id uuid.UUID
		var parcelID *uuid.UUID
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&resp.Kind,
			&resp.Payload,
			&resp.Read,
			&parcelID,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		notificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = notificationID
		resp.CreatedAt = createdAt

		if parcelID != nil {
			parcelUUID, idErr := kernel.UUIDFromBytes(parcelID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.ParcelID = &parcelUUID
		}

		kind := notification.Type(resp.Kind)
		resp.Title = kind.Title()
		resp.DeepLink = kind.DeepLink(resp.ParcelID, nil)

		feed = append(feed, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return feed, nil
}
