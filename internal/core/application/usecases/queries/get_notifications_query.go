package queries

import (
	"errors"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery retrieves a user's notification feed, newest first.
type GetNotificationsQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a query for a user's notifications.
func NewGetNotificationsQuery(userID kernel.UUID) (GetNotificationsQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetNotificationsQuery{}, err
	}

	return GetNotificationsQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// UserID returns the feed owner's identifier.
func (q GetNotificationsQuery) UserID() kernel.UUID {
	return q.userID
}

// GetNotificationsQueryResponse is one row of the feed.
type GetNotificationsQueryResponse struct {
	ID        kernel.UUID
	Kind      string
	Title     string
	Payload   string
	Read      bool
	ParcelID  *kernel.UUID
	DeepLink  string
	CreatedAt time.Time
}
