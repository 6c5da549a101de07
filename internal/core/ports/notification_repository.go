package ports

import (
	"context"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notification
// envelopes.
type NotificationRepository interface {
	// Add persists a new notification.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Update persists the read flag, the only mutable field.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// Get retrieves a notification by id.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetAllForUser retrieves a user's notifications, newest first.
	GetAllForUser(ctx context.Context, userID kernel.UUID) ([]*notification.Notification, error)

	// CountUnreadForUser returns the user's unread count.
	CountUnreadForUser(ctx context.Context, userID kernel.UUID) (int, error)

	// Delete removes a notification permanently. Only the explicit
	// user-initiated delete calls this.
	Delete(ctx context.Context, id kernel.UUID) error
}
