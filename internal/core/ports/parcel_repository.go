package ports

import (
	"context"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
//
// Update performs an optimistic-concurrency write: the row is updated only
// if its stored version still equals the aggregate's loaded version, and a
// stale version surfaces as a conflict error. This is the commit-time check
// that makes concurrent bid selections fail loudly instead of
// double-selecting.
type ParcelRepository interface {
	// Add persists a new parcel aggregate.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel, guarded by the
	// aggregate's version. Returns a conflict error when the stored version
	// moved on.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by tracking id.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetAllBySender retrieves every parcel posted by the given sender.
	GetAllBySender(ctx context.Context, senderID kernel.UUID) ([]*parcel.Parcel, error)

	// GetAllOpenPastDeadline retrieves parcels still open for bids whose
	// bidding deadline lies at or before now. Used by the expiry sweep.
	GetAllOpenPastDeadline(ctx context.Context, now time.Time) ([]*parcel.Parcel, error)
}
