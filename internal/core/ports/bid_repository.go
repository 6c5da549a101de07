package ports

import (
	"context"

	"parcelmatch/internal/core/domain/model/bid"
	"parcelmatch/internal/core/domain/model/kernel"
)

// BidRepository defines the persistence contract for bid aggregates.
// Update uses the same optimistic version guard as ParcelRepository.
type BidRepository interface {
	// Add persists a new bid aggregate.
	Add(ctx context.Context, aggregate *bid.Bid) error

	// Update persists changes to an existing bid, guarded by its version.
	Update(ctx context.Context, aggregate *bid.Bid) error

	// Get retrieves a bid by id.
	Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error)

	// GetAllForParcel retrieves every bid on a parcel, any status.
	GetAllForParcel(ctx context.Context, parcelID kernel.UUID) ([]*bid.Bid, error)

	// GetPendingForCourier retrieves the courier's pending bid on the
	// parcel, or a not-found error. Enforces the one-active-bid-per-courier
	// precondition for placement.
	GetPendingForCourier(ctx context.Context, parcelID, courierID kernel.UUID) (*bid.Bid, error)
}
