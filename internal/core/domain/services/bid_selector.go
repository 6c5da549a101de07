package services

import (
	"time"

	"parcelmatch/internal/core/domain/model/bid"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/parcel"
	"parcelmatch/internal/pkg/errs"
)

// SelectionResult carries every aggregate the selection rule mutated. The
// caller must persist all of them inside a single unit-of-work transaction;
// committing only part of the result would break the exactly-one-winner
// invariant.
type SelectionResult struct {
	// Parcel is the parcel, now in BidSelected status.
	Parcel *parcel.Parcel

	// Selected is the winning bid with selectedAt stamped.
	Selected *bid.Bid

	// Rejected are all previously pending competing bids, now rejected.
	Rejected []*bid.Bid
}

// BidSelector implements the atomic cross-bid selection rule:
// accepting one bid simultaneously rejects every other still-pending bid on
// the same parcel and moves the parcel to BidSelected with the winner's
// courier recorded.
//
// The rule mutates in-memory aggregates only. Race handling lives at commit
// time: the persistence layer verifies the parcel is still OpenForBids at
// its loaded version, so a second concurrent selection fails with a
// conflict error instead of silently double-selecting.
type BidSelector struct{}

// NewBidSelector creates a new BidSelector instance.
func NewBidSelector() BidSelector {
	return BidSelector{}
}

// Select applies the selection rule.
//
// Preconditions checked here:
//   - the parcel is OpenForBids
//   - the target bid exists among the parcel's bids, belongs to the parcel,
//     and is still Pending
//
// Caller identity (only the sender may select) is an application-layer
// concern checked by the command handler before invoking the rule.
func (s BidSelector) Select(
	p *parcel.Parcel,
	bids []*bid.Bid,
	targetBidID kernel.UUID,
	now time.Time,
) (*SelectionResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var target *bid.Bid
	for _, b := range bids {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if !b.Parcel().IsEqual(p.ID()) {
			return nil, errs.NewValidationErrorWithCause("bids",
				errs.NewConflictError("bid", b.ID().String(), "bid does not belong to parcel"))
		}
		if b.ID().IsEqual(targetBidID) {
			target = b
		}
	}
	if target == nil {
		return nil, errs.NewNotFoundError("bidId", targetBidID.String())
	}

	// Order matters: the winning bid and the parcel transition first so a
	// non-pending target or an already-decided parcel surfaces as a
	// conflict before any competitor is touched.
	if err := target.Select(now); err != nil {
		return nil, err
	}
	if err := p.AssignCourier(target.Courier()); err != nil {
		return nil, err
	}

	result := &SelectionResult{
		Parcel:   p,
		Selected: target,
	}

	for _, b := range bids {
		if b.IsEqual(target) || b.Status() != bid.Pending {
			continue
		}
		if err := b.Reject(); err != nil {
			return nil, err
		}
		result.Rejected = append(result.Rejected, b)
	}

	return result, nil
}
