package bid

import (
	"errors"
	"fmt"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/errs"
)

var (
	// ErrBidIsNotConstructed is returned when a Bid instance was not created
	// through NewBid or RestoreBid.
	ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid or RestoreBid")

	// ErrNotBidOwner is returned when someone other than the bidding courier
	// tries to withdraw the bid.
	ErrNotBidOwner = errors.New("only the bidding courier may withdraw the bid")
)

// Bid is the aggregate for a courier's priced proposal on one parcel.
//
// Invariants enforced here:
//   - price is a valid positive amount
//   - estimated hours, when given, are positive
//   - transitions out of Pending are the only legal ones; terminal bids
//     never change
//   - selectedAt is set exactly when the bid enters Selected
type Bid struct {
	id        kernel.UUID
	parcelID  kernel.UUID
	courierID kernel.UUID

	price kernel.Price

	// estimatedHours is the courier's optional delivery-time estimate.
	estimatedHours *int

	// message is an optional note from the courier to the sender.
	message string

	status     Status
	createdAt  time.Time
	selectedAt *time.Time

	// version is the optimistic concurrency token from persistence.
	version int

	isConstructed bool
}

// NewBid creates a pending bid with validation of every input.
func NewBid(
	id kernel.UUID,
	parcelID kernel.UUID,
	courierID kernel.UUID,
	price kernel.Price,
	estimatedHours *int,
	message string,
	now time.Time,
) (*Bid, error) {
	b := &Bid{
		status:        Pending,
		createdAt:     now,
		message:       message,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setParcel(parcelID),
		b.setCourier(courierID),
		b.setPrice(price),
		b.setEstimatedHours(estimatedHours),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBid reconstructs a bid from persistence with any valid status.
func RestoreBid(
	id kernel.UUID,
	parcelID kernel.UUID,
	courierID kernel.UUID,
	price kernel.Price,
	estimatedHours *int,
	message string,
	status Status,
	createdAt time.Time,
	selectedAt *time.Time,
	version int,
) (*Bid, error) {
	b, err := NewBid(id, parcelID, courierID, price, estimatedHours, message, createdAt)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if status == Selected && selectedAt == nil {
		return nil, errs.NewValueIsRequiredError("selectedAt")
	}
	if status != Selected && selectedAt != nil {
		return nil, errs.NewValidationErrorWithCause("selectedAt",
			fmt.Errorf("selectedAt must be nil for %s bids", status))
	}

	b.status = status
	b.selectedAt = selectedAt
	b.version = version
	return b, nil
}

func (b *Bid) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bid) setParcel(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.parcelID = id
	return nil
}

func (b *Bid) setCourier(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.courierID = id
	return nil
}

func (b *Bid) setPrice(price kernel.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}
	b.price = price
	return nil
}

func (b *Bid) setEstimatedHours(hours *int) error {
	if hours != nil && *hours <= 0 {
		return errs.NewValidationErrorWithCause("estimatedHours",
			fmt.Errorf("%d is not greater than 0", *hours))
	}
	b.estimatedHours = hours
	return nil
}

// Validate ensures the Bid was constructed through NewBid/RestoreBid.
func (b *Bid) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBidIsNotConstructed
	}
	return nil
}

// IsEqual compares two bids by id.
func (b *Bid) IsEqual(other *Bid) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the bid identifier.
func (b *Bid) ID() kernel.UUID { return b.id }

// Parcel returns the id of the parcel the bid competes for.
func (b *Bid) Parcel() kernel.UUID { return b.parcelID }

// Courier returns the bidding courier's account id.
func (b *Bid) Courier() kernel.UUID { return b.courierID }

// Price returns the proposed price.
func (b *Bid) Price() kernel.Price { return b.price }

// EstimatedHours returns the optional delivery-time estimate, nil when not given.
func (b *Bid) EstimatedHours() *int { return b.estimatedHours }

// Message returns the optional courier note, empty when not given.
func (b *Bid) Message() string { return b.message }

// Status returns the current bid status.
func (b *Bid) Status() Status { return b.status }

// CreatedAt returns the placement time.
func (b *Bid) CreatedAt() time.Time { return b.createdAt }

// SelectedAt returns the selection time, nil unless the bid is Selected.
func (b *Bid) SelectedAt() *time.Time { return b.selectedAt }

// Version returns the optimistic concurrency token loaded with the aggregate.
func (b *Bid) Version() int { return b.version }

// Select marks the bid as the parcel's winner and stamps selectedAt.
// Callers must use the selection rule in the services package, which also
// rejects every competing pending bid in the same transaction.
func (b *Bid) Select(now time.Time) error {
	newStatus, err := b.status.Select()
	if err != nil {
		return err
	}

	b.status = newStatus
	b.selectedAt = &now
	return nil
}

// Reject closes the bid because a competing bid won.
func (b *Bid) Reject() error {
	newStatus, err := b.status.Reject()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// Withdraw pulls the bid at its courier's request. Irreversible.
func (b *Bid) Withdraw(actor kernel.UUID) error {
	if !actor.IsEqual(b.courierID) {
		return ErrNotBidOwner
	}

	newStatus, err := b.status.Withdraw()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// Expire closes the bid because the parcel's bidding deadline passed.
// System-triggered only.
func (b *Bid) Expire() error {
	newStatus, err := b.status.Expire()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}
