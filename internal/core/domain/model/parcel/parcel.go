package parcel

import (
	"errors"
	"fmt"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

	// ErrNotSelectedCourier is returned when a delivery-progress transition
	// is attempted by anyone other than the parcel's selected courier.
	ErrNotSelectedCourier = errors.New("only the selected courier may update delivery progress")

	// ErrNotSender is returned when a sender-only operation (cancel) is
	// attempted by anyone other than the parcel's sender.
	ErrNotSender = errors.New("only the sender may cancel the parcel")
)

// Parcel is the aggregate root for a delivery request. It owns the lifecycle
// state machine and enforces its guards:
//
//   - transitions are forward-only, terminal states are immutable
//   - BidSelected requires a selected courier, set atomically by the
//     selection rule
//   - transitions past BidSelected require the caller to be the selected
//     courier
//   - Delivered requires a proof-of-delivery reference produced by an
//     external collaborator
//
// The version field carries the persistence-level optimistic lock; it is
// loaded with the aggregate and checked at commit time so concurrent
// selections fail with a conflict instead of silently double-selecting.
type Parcel struct {
	// id is the tracking identifier, the public handle for the parcel.
	id kernel.UUID

	// senderID references the posting sender's account.
	senderID kernel.UUID

	description string
	size        SizeClass

	// weightGrams is the declared weight. Must be positive.
	weightGrams int

	pickup  Waypoint
	dropoff Waypoint

	// suggestedPrice is the sender's optional asking price. Bids are free to
	// undercut or exceed it.
	suggestedPrice *kernel.Price

	status Status

	// biddingDeadline is the server-owned deadline after which pending bids
	// expire. Nil until the parcel is opened for bids.
	biddingDeadline *time.Time

	// selectedCourierID is set when a bid is selected and never changes
	// afterwards.
	selectedCourierID *kernel.UUID

	// proofOfDeliveryID references the externally stored proof artifact.
	// Required for the Delivered transition.
	proofOfDeliveryID *kernel.UUID

	// version is the optimistic concurrency token from persistence.
	version int

	isConstructed bool
}

// NewParcel creates a parcel in New status with validation of every input.
func NewParcel(
	id kernel.UUID,
	senderID kernel.UUID,
	description string,
	size SizeClass,
	weightGrams int,
	pickup Waypoint,
	dropoff Waypoint,
	suggestedPrice *kernel.Price,
) (*Parcel, error) {
	p := &Parcel{
		status:        New,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setSender(senderID),
		p.setDescription(description),
		p.setSize(size),
		p.setWeight(weightGrams),
		p.setWaypoints(pickup, dropoff),
		p.setSuggestedPrice(suggestedPrice),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a parcel from persistence. Unlike NewParcel it
// accepts any valid status and the stored version; waypoints and price have
// already passed construction validation when first stored.
func RestoreParcel(
	id kernel.UUID,
	senderID kernel.UUID,
	description string,
	size SizeClass,
	weightGrams int,
	pickup Waypoint,
	dropoff Waypoint,
	suggestedPrice *kernel.Price,
	status Status,
	biddingDeadline *time.Time,
	selectedCourierID *kernel.UUID,
	proofOfDeliveryID *kernel.UUID,
	version int,
) (*Parcel, error) {
	p, err := NewParcel(id, senderID, description, size, weightGrams, pickup, dropoff, suggestedPrice)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.validateCanHaveCourier(selectedCourierID != nil); err != nil {
		return nil, err
	}

	p.status = status
	p.biddingDeadline = biddingDeadline
	p.selectedCourierID = selectedCourierID
	p.proofOfDeliveryID = proofOfDeliveryID
	p.version = version
	return p, nil
}

// validateCanHaveCourier enforces consistency between status and courier
// assignment when rehydrating from storage.
func (s Status) validateCanHaveCourier(hasCourier bool) error {
	requiresCourier := s == BidSelected || s == PendingPickup || s == InTransit || s == Delivered || s == Failed
	if hasCourier && !requiresCourier && s != Canceled {
		return errs.NewValidationErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a selected courier", s))
	}
	if !hasCourier && requiresCourier {
		return errs.NewValidationErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no selected courier", s))
	}
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setSender(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.senderID = id
	return nil
}

func (p *Parcel) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	p.description = description
	return nil
}

func (p *Parcel) setSize(size SizeClass) error {
	if err := size.Validate(); err != nil {
		return err
	}
	p.size = size
	return nil
}

func (p *Parcel) setWeight(weightGrams int) error {
	if weightGrams <= 0 {
		return errs.NewValidationErrorWithCause("weightGrams",
			fmt.Errorf("%d is not greater than 0", weightGrams))
	}
	p.weightGrams = weightGrams
	return nil
}

func (p *Parcel) setWaypoints(pickup, dropoff Waypoint) error {
	if err := errors.Join(pickup.Validate(), dropoff.Validate()); err != nil {
		return err
	}
	p.pickup = pickup
	p.dropoff = dropoff
	return nil
}

func (p *Parcel) setSuggestedPrice(price *kernel.Price) error {
	if price != nil {
		if err := price.Validate(); err != nil {
			return err
		}
	}
	p.suggestedPrice = price
	return nil
}

// Validate ensures the Parcel was constructed through NewParcel/RestoreParcel.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by tracking id.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the tracking identifier.
func (p *Parcel) ID() kernel.UUID { return p.id }

// Sender returns the posting sender's account id.
func (p *Parcel) Sender() kernel.UUID { return p.senderID }

// Description returns the sender's free-text description.
func (p *Parcel) Description() string { return p.description }

// Size returns the size class.
func (p *Parcel) Size() SizeClass { return p.size }

// WeightGrams returns the declared weight.
func (p *Parcel) WeightGrams() int { return p.weightGrams }

// Pickup returns the pickup waypoint.
func (p *Parcel) Pickup() Waypoint { return p.pickup }

// Dropoff returns the dropoff waypoint.
func (p *Parcel) Dropoff() Waypoint { return p.dropoff }

// SuggestedPrice returns the optional asking price, nil when not set.
func (p *Parcel) SuggestedPrice() *kernel.Price { return p.suggestedPrice }

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status { return p.status }

// BiddingDeadline returns the server-owned deadline, nil before publication.
func (p *Parcel) BiddingDeadline() *time.Time { return p.biddingDeadline }

// SelectedCourier returns the selected courier's id, nil before selection.
func (p *Parcel) SelectedCourier() *kernel.UUID { return p.selectedCourierID }

// ProofOfDelivery returns the proof-of-delivery reference, nil until delivered.
func (p *Parcel) ProofOfDelivery() *kernel.UUID { return p.proofOfDeliveryID }

// Version returns the optimistic concurrency token loaded with the aggregate.
func (p *Parcel) Version() int { return p.version }

// IsOpenForBidding reports whether couriers may currently place bids:
// the parcel is open and the deadline has not passed.
func (p *Parcel) IsOpenForBidding(now time.Time) bool {
	return p.status == OpenForBids &&
		p.biddingDeadline != nil &&
		now.Before(*p.biddingDeadline)
}

// DeadlinePassed reports whether the bidding deadline exists and lies in the past.
func (p *Parcel) DeadlinePassed(now time.Time) bool {
	return p.biddingDeadline != nil && !now.Before(*p.biddingDeadline)
}

// Publish opens the parcel for bids with the given deadline.
// The deadline must lie in the future.
func (p *Parcel) Publish(deadline time.Time, now time.Time) error {
	if !deadline.After(now) {
		return errs.NewValidationErrorWithCause("deadline",
			fmt.Errorf("deadline %s is not in the future", deadline.Format(time.RFC3339)))
	}

	newStatus, err := p.status.OpenForBids()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.biddingDeadline = &deadline
	return nil
}

// AssignCourier records the winning courier and moves the parcel to
// BidSelected. Called only by the selection rule, which guarantees the
// exactly-one-selected-bid invariant across the parcel's bids.
func (p *Parcel) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := p.status.SelectBid()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.selectedCourierID = &courierID
	return nil
}

// ConfirmPickupPending moves BidSelected -> PendingPickup. Only the selected
// courier may drive delivery progress.
func (p *Parcel) ConfirmPickupPending(actor kernel.UUID) error {
	if err := p.requireSelectedCourier(actor); err != nil {
		return err
	}

	newStatus, err := p.status.AwaitPickup()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// StartTransit moves PendingPickup -> InTransit.
func (p *Parcel) StartTransit(actor kernel.UUID) error {
	if err := p.requireSelectedCourier(actor); err != nil {
		return err
	}

	newStatus, err := p.status.StartTransit()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// CompleteDelivery moves InTransit -> Delivered. The proof-of-delivery
// reference is produced by an external collaborator and is mandatory.
func (p *Parcel) CompleteDelivery(actor kernel.UUID, proofID kernel.UUID) error {
	if err := p.requireSelectedCourier(actor); err != nil {
		return err
	}
	if err := proofID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("proofOfDeliveryId")
	}

	newStatus, err := p.status.Deliver()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.proofOfDeliveryID = &proofID
	return nil
}

// Cancel moves any pre-transit state to Canceled. Only the sender holds the
// cancel right; ownership is checked here so a racing courier call can never
// cancel.
func (p *Parcel) Cancel(actor kernel.UUID) error {
	if !actor.IsEqual(p.senderID) {
		return ErrNotSender
	}

	newStatus, err := p.status.Cancel()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// Fail moves PendingPickup or InTransit to Failed.
func (p *Parcel) Fail(actor kernel.UUID) error {
	if err := p.requireSelectedCourier(actor); err != nil {
		return err
	}

	newStatus, err := p.status.Fail()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

func (p *Parcel) requireSelectedCourier(actor kernel.UUID) error {
	if p.selectedCourierID == nil || !actor.IsEqual(*p.selectedCourierID) {
		return ErrNotSelectedCourier
	}
	return nil
}
