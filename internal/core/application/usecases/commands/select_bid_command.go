package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrSelectBidCommandIsNotConstructed = errors.New(
	"SelectBidCommand must be created via NewSelectBidCommand constructor",
)

// SelectBidCommand represents the sender accepting one bid on their parcel.
type SelectBidCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	bidID    kernel.UUID
	senderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSelectBidCommand creates a command to select a bid.
func NewSelectBidCommand(parcelID, bidID, senderID kernel.UUID) (SelectBidCommand, error) {
	cmd := SelectBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setBidID(bidID),
		cmd.setSenderID(senderID),
	); err != nil {
		return SelectBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectBidCommand) Validate() error {
	return c.guard.Validate(ErrSelectBidCommandIsNotConstructed)
}

// ParcelID returns the parcel whose bid is being selected.
func (c SelectBidCommand) ParcelID() kernel.UUID { return c.parcelID }

// BidID returns the winning bid's identifier.
func (c SelectBidCommand) BidID() kernel.UUID { return c.bidID }

// SenderID returns the acting sender's identifier.
func (c SelectBidCommand) SenderID() kernel.UUID { return c.senderID }

func (c *SelectBidCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.parcelID = id
	return nil
}

func (c *SelectBidCommand) setBidID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.bidID = id
	return nil
}

func (c *SelectBidCommand) setSenderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.senderID = id
	return nil
}
