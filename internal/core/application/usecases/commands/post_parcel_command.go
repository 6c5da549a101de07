package commands

import (
	"errors"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/parcel"
	"parcelmatch/internal/pkg/guard"
)

var (
	ErrPostParcelCommandIsNotConstructed = errors.New(
		"PostParcelCommand must be created via NewPostParcelCommand constructor",
	)
	ErrBiddingDeadlineIsRequired = errors.New("bidding deadline is required")
)

// PostParcelCommand represents a sender's request to post a new parcel and
// open it for bids until the given deadline.
//
// Example:
//
//	pickup, _ := parcel.NewWaypoint("1 Harbor Rd", "Ann", "+15550100")
//	dropoff, _ := parcel.NewWaypoint("9 Hill St", "Bo", "+15550101")
//	cmd, err := NewPostParcelCommand(
//	    kernel.NewUUID(), senderID, "Guitar in a hard case",
//	    parcel.Large, 4200, pickup, dropoff, nil, deadline,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
type PostParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID        kernel.UUID
	senderID        kernel.UUID
	description     string
	size            parcel.SizeClass
	weightGrams     int
	pickup          parcel.Waypoint
	dropoff         parcel.Waypoint
	suggestedPrice  *kernel.Price
	biddingDeadline time.Time

	guard guard.ConstructorGuard
}

// NewPostParcelCommand creates a command to post a parcel. Field-level
// validation (description, size, weight, waypoints, price) is delegated to
// the parcel constructor; the command validates only what the aggregate
// cannot see, which here is the identifiers and the deadline being set.
func NewPostParcelCommand(
	parcelID kernel.UUID,
	senderID kernel.UUID,
	description string,
	size parcel.SizeClass,
	weightGrams int,
	pickup parcel.Waypoint,
	dropoff parcel.Waypoint,
	suggestedPrice *kernel.Price,
	biddingDeadline time.Time,
) (PostParcelCommand, error) {
	cmd := PostParcelCommand{
		description:    description,
		size:           size,
		weightGrams:    weightGrams,
		pickup:         pickup,
		dropoff:        dropoff,
		suggestedPrice: suggestedPrice,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSenderID(senderID),
		cmd.setBiddingDeadline(biddingDeadline),
	); err != nil {
		return PostParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PostParcelCommand) Validate() error {
	return c.guard.Validate(ErrPostParcelCommandIsNotConstructed)
}

// ParcelID returns the tracking identifier for the new parcel.
func (c PostParcelCommand) ParcelID() kernel.UUID { return c.parcelID }

// SenderID returns the posting user's identifier.
func (c PostParcelCommand) SenderID() kernel.UUID { return c.senderID }

// Description returns the free-form contents description.
func (c PostParcelCommand) Description() string { return c.description }

// Size returns the declared size class.
func (c PostParcelCommand) Size() parcel.SizeClass { return c.size }

// WeightGrams returns the declared weight in grams.
func (c PostParcelCommand) WeightGrams() int { return c.weightGrams }

// Pickup returns the pickup waypoint.
func (c PostParcelCommand) Pickup() parcel.Waypoint { return c.pickup }

// Dropoff returns the dropoff waypoint.
func (c PostParcelCommand) Dropoff() parcel.Waypoint { return c.dropoff }

// SuggestedPrice returns the sender's optional asking price.
func (c PostParcelCommand) SuggestedPrice() *kernel.Price { return c.suggestedPrice }

// BiddingDeadline returns the instant bidding closes.
func (c PostParcelCommand) BiddingDeadline() time.Time { return c.biddingDeadline }

func (c *PostParcelCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.parcelID = id
	return nil
}

func (c *PostParcelCommand) setSenderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.senderID = id
	return nil
}

func (c *PostParcelCommand) setBiddingDeadline(deadline time.Time) error {
	if deadline.IsZero() {
		return ErrBiddingDeadlineIsRequired
	}

	c.biddingDeadline = deadline
	return nil
}
