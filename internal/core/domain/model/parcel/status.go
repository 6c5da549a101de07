package parcel

import (
	"fmt"

	"parcelmatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel. It implements a
// forward-only state machine: a parcel never returns to an earlier state,
// and terminal states allow no further transitions.
//
// State transitions:
//
//	New ──> OpenForBids ──> BidSelected ──> PendingPickup ──> InTransit ──> Delivered
//	 │           │               │                │               │
//	 │           │               │                ├───────────────┴──> Failed
//	 └───────────┴───────────────┴────────────────┴──> Canceled
//
// Delivered, Canceled and Failed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status of a freshly created parcel. The parcel is
	// not yet visible to couriers.
	New

	// OpenForBids means the parcel is published and couriers may place bids
	// until the bidding deadline passes.
	OpenForBids

	// BidSelected means the sender accepted exactly one bid. All competing
	// bids are rejected at the same instant.
	BidSelected

	// PendingPickup means the selected courier confirmed the match and is
	// on the way to the pickup point.
	PendingPickup

	// InTransit means the courier picked the parcel up and is carrying it.
	InTransit

	// Delivered is the terminal success state. Requires a proof-of-delivery
	// reference.
	Delivered

	// Canceled is the terminal state for a sender cancellation. Reachable
	// from any state before the parcel is in transit.
	Canceled

	// Failed is the terminal state for a delivery that could not complete.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "unknown",
		New:           "new",
		OpenForBids:   "open_for_bids",
		BidSelected:   "bid_selected",
		PendingPickup: "pending_pickup",
		InTransit:     "in_transit",
		Delivered:     "delivered",
		Canceled:      "canceled",
		Failed:        "failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:           "new",
		OpenForBids:   "open_for_bids",
		BidSelected:   "bid_selected",
		PendingPickup: "pending_pickup",
		InTransit:     "in_transit",
		Delivered:     "delivered",
		Canceled:      "canceled",
		Failed:        "failed",
	}
}

// StatusFromString parses the wire representation of a status. The string
// forms are part of the wire format shared with clients and must not change.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValidationErrorWithCause("status", fmt.Errorf("%q is not a valid parcel status", s))
}

// Validate checks that the Status holds one of the defined lifecycle values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValidationErrorWithCause("status", fmt.Errorf("%d is not a valid parcel status", s))
	}
	return nil
}

// String returns the wire name of the status ("open_for_bids" etc.).
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled || s == Failed
}

// transition centralizes the forward-only rule: the target status is reached
// only from the listed origins, everything else is a conflict.
func (s Status) transition(to Status, from ...Status) (Status, error) {
	for _, f := range from {
		if s == f {
			return to, nil
		}
	}
	return 0, errs.NewConflictError("parcel", s.String(),
		fmt.Sprintf("cannot transition from %s to %s", s, to))
}

// OpenForBids transitions New -> OpenForBids.
func (s Status) OpenForBids() (Status, error) {
	return s.transition(OpenForBids, New)
}

// SelectBid transitions OpenForBids -> BidSelected. The selection rule in
// the services package ensures exactly one selected bid exists at this point.
func (s Status) SelectBid() (Status, error) {
	return s.transition(BidSelected, OpenForBids)
}

// AwaitPickup transitions BidSelected -> PendingPickup.
func (s Status) AwaitPickup() (Status, error) {
	return s.transition(PendingPickup, BidSelected)
}

// StartTransit transitions PendingPickup -> InTransit.
func (s Status) StartTransit() (Status, error) {
	return s.transition(InTransit, PendingPickup)
}

// Deliver transitions InTransit -> Delivered.
func (s Status) Deliver() (Status, error) {
	return s.transition(Delivered, InTransit)
}

// Cancel transitions any pre-transit state to Canceled.
func (s Status) Cancel() (Status, error) {
	return s.transition(Canceled, New, OpenForBids, BidSelected, PendingPickup)
}

// Fail transitions PendingPickup or InTransit to Failed.
func (s Status) Fail() (Status, error) {
	return s.transition(Failed, PendingPickup, InTransit)
}
