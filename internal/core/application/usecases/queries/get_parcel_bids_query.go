// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain aggregates and read projection rows
// straight from the database; they never mutate state.
package queries

import (
	"errors"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrGetParcelBidsQueryIsNotConstructed = errors.New(
	"GetParcelBidsQuery must be created via NewGetParcelBidsQuery constructor",
)

// GetParcelBidsQuery retrieves every bid on a parcel in display order:
// the selected bid first, then pending bids from cheapest up, then the
// terminal remainder.
type GetParcelBidsQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetParcelBidsQuery creates a query for a parcel's bid list.
func NewGetParcelBidsQuery(parcelID kernel.UUID) (GetParcelBidsQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetParcelBidsQuery{}, err
	}

	return GetParcelBidsQuery{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelBidsQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelBidsQueryIsNotConstructed)
}

// ParcelID returns the parcel whose bids are listed.
func (q GetParcelBidsQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// GetParcelBidsQueryResponse is one row of the bid list.
type GetParcelBidsQueryResponse struct {
	ID             kernel.UUID
	CourierID      kernel.UUID
	PriceCents     int64
	EstimatedHours *int
	Message        string
	Status         string
	CreatedAt      time.Time
	SelectedAt     *time.Time
}
