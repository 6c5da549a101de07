package queries

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrGetUnreadCountQueryIsNotConstructed = errors.New(
	"GetUnreadCountQuery must be created via NewGetUnreadCountQuery constructor",
)

// GetUnreadCountQuery retrieves a user's unread notification counter. The
// counter is always recomputed from the rows; there is no stored tally to
// drift out of sync.
type GetUnreadCountQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUnreadCountQuery creates a query for the unread counter.
func NewGetUnreadCountQuery(userID kernel.UUID) (GetUnreadCountQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUnreadCountQuery{}, err
	}

	return GetUnreadCountQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnreadCountQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreadCountQueryIsNotConstructed)
}

// UserID returns the counter owner's identifier.
func (q GetUnreadCountQuery) UserID() kernel.UUID {
	return q.userID
}
