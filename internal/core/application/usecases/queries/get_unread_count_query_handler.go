package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUnreadCountQueryHandler reads a user's unread counter from the database.
type GetUnreadCountQueryHandler struct {
	db *gorm.DB
}

// NewGetUnreadCountQueryHandler creates a handler for unread counter queries.
// Requires a GORM database connection for query execution.
func NewGetUnreadCountQueryHandler(db *gorm.DB) GetUnreadCountQueryHandler {
	return GetUnreadCountQueryHandler{db: db}
}

// Handle executes the counter query.
func (h GetUnreadCountQueryHandler) Handle(ctx context.Context, query GetUnreadCountQuery) (int, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = ? AND read = FALSE
	`, query.UserID().Bytes()).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
