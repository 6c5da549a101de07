package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrPlaceBidCommandIsNotConstructed = errors.New(
	"PlaceBidCommand must be created via NewPlaceBidCommand constructor",
)

// PlaceBidCommand represents a courier's offer to deliver a parcel at a
// given price.
type PlaceBidCommand struct { //nolint:recvcheck //using for validation
	bidID          kernel.UUID
	parcelID       kernel.UUID
	courierID      kernel.UUID
	price          kernel.Price
	estimatedHours *int
	message        string

	guard guard.ConstructorGuard
}

// NewPlaceBidCommand creates a command to place a bid. Price validity is
// enforced by the kernel.Price constructor at the transport boundary; here
// only construction is checked.
func NewPlaceBidCommand(
	bidID kernel.UUID,
	parcelID kernel.UUID,
	courierID kernel.UUID,
	price kernel.Price,
	estimatedHours *int,
	message string,
) (PlaceBidCommand, error) {
	cmd := PlaceBidCommand{
		estimatedHours: estimatedHours,
		message:        message,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBidID(bidID),
		cmd.setParcelID(parcelID),
		cmd.setCourierID(courierID),
		cmd.setPrice(price),
	); err != nil {
		return PlaceBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceBidCommand) Validate() error {
	return c.guard.Validate(ErrPlaceBidCommandIsNotConstructed)
}

// BidID returns the identifier for the new bid.
func (c PlaceBidCommand) BidID() kernel.UUID { return c.bidID }

// ParcelID returns the parcel being bid on.
func (c PlaceBidCommand) ParcelID() kernel.UUID { return c.parcelID }

// CourierID returns the bidding courier's identifier.
func (c PlaceBidCommand) CourierID() kernel.UUID { return c.courierID }

// Price returns the offered delivery price.
func (c PlaceBidCommand) Price() kernel.Price { return c.price }

// EstimatedHours returns the optional delivery time estimate.
func (c PlaceBidCommand) EstimatedHours() *int { return c.estimatedHours }

// Message returns the optional note to the sender.
func (c PlaceBidCommand) Message() string { return c.message }

func (c *PlaceBidCommand) setBidID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.bidID = id
	return nil
}

func (c *PlaceBidCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.parcelID = id
	return nil
}

func (c *PlaceBidCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *PlaceBidCommand) setPrice(price kernel.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}

	c.price = price
	return nil
}
