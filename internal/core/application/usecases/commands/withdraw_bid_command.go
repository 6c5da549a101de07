package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrWithdrawBidCommandIsNotConstructed = errors.New(
	"WithdrawBidCommand must be created via NewWithdrawBidCommand constructor",
)

// WithdrawBidCommand represents a courier retracting their own pending bid.
type WithdrawBidCommand struct { //nolint:recvcheck //using for validation
	bidID     kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewWithdrawBidCommand creates a command to withdraw a bid.
func NewWithdrawBidCommand(bidID, courierID kernel.UUID) (WithdrawBidCommand, error) {
	cmd := WithdrawBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBidID(bidID),
		cmd.setCourierID(courierID),
	); err != nil {
		return WithdrawBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c WithdrawBidCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawBidCommandIsNotConstructed)
}

// BidID returns the bid being withdrawn.
func (c WithdrawBidCommand) BidID() kernel.UUID { return c.bidID }

// CourierID returns the acting courier's identifier.
func (c WithdrawBidCommand) CourierID() kernel.UUID { return c.courierID }

func (c *WithdrawBidCommand) setBidID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.bidID = id
	return nil
}

func (c *WithdrawBidCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}
