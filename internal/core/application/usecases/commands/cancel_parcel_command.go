package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrCancelParcelCommandIsNotConstructed = errors.New(
	"CancelParcelCommand must be created via NewCancelParcelCommand constructor",
)

// CancelParcelCommand represents the sender withdrawing their parcel before
// it enters transit.
type CancelParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	senderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelParcelCommand creates a command to cancel a parcel.
func NewCancelParcelCommand(parcelID, senderID kernel.UUID) (CancelParcelCommand, error) {
	cmd := CancelParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSenderID(senderID),
	); err != nil {
		return CancelParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelParcelCommand) Validate() error {
	return c.guard.Validate(ErrCancelParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel being canceled.
func (c CancelParcelCommand) ParcelID() kernel.UUID { return c.parcelID }

// SenderID returns the acting sender's identifier.
func (c CancelParcelCommand) SenderID() kernel.UUID { return c.senderID }

func (c *CancelParcelCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.parcelID = id
	return nil
}

func (c *CancelParcelCommand) setSenderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.senderID = id
	return nil
}
