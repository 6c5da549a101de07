package queries

import (
	"errors"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrGetUserParcelsQueryIsNotConstructed = errors.New(
	"GetUserParcelsQuery must be created via NewGetUserParcelsQuery constructor",
)

// GetUserParcelsQuery retrieves every parcel a sender has posted, newest
// first. Backs the sender dashboard and the idempotent poll fallback that
// reconciles missed realtime pushes by status and version.
type GetUserParcelsQuery struct {
	senderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUserParcelsQuery creates a query for a sender's parcel list.
func NewGetUserParcelsQuery(senderID kernel.UUID) (GetUserParcelsQuery, error) {
	if err := senderID.Validate(); err != nil {
		return GetUserParcelsQuery{}, err
	}

	return GetUserParcelsQuery{
		senderID: senderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetUserParcelsQueryIsNotConstructed)
}

// SenderID returns the sender whose parcels are listed.
func (q GetUserParcelsQuery) SenderID() kernel.UUID {
	return q.senderID
}

// GetUserParcelsQueryResponse is one row of the parcel list. Version is
// exposed so pollers can detect changes without diffing every field.
type GetUserParcelsQueryResponse struct {
	ID                kernel.UUID
	Description       string
	Size              string
	WeightGrams       int
	Status            string
	SuggestedCents    *int64
	BiddingDeadline   *time.Time
	SelectedCourierID *kernel.UUID
	Version           int
	CreatedAt         time.Time
}
