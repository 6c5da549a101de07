package commands

import (
	"errors"
	"time"

	"parcelmatch/internal/pkg/guard"
)

var (
	ErrExpireBidsCommandIsNotConstructed = errors.New(
		"ExpireBidsCommand must be created via NewExpireBidsCommand constructor",
	)
	ErrAsOfIsRequired = errors.New("asOf instant is required")
)

// ExpireBidsCommand represents one run of the deadline sweep: every pending
// bid on a parcel whose bidding deadline lies at or before the asOf instant
// is expired.
type ExpireBidsCommand struct { //nolint:recvcheck //using for validation
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewExpireBidsCommand creates a command for one sweep run. The caller
// supplies the instant so retried runs stay deterministic.
func NewExpireBidsCommand(asOf time.Time) (ExpireBidsCommand, error) {
	cmd := ExpireBidsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setAsOf(asOf); err != nil {
		return ExpireBidsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireBidsCommand) Validate() error {
	return c.guard.Validate(ErrExpireBidsCommandIsNotConstructed)
}

// AsOf returns the instant the sweep evaluates deadlines against.
func (c ExpireBidsCommand) AsOf() time.Time { return c.asOf }

func (c *ExpireBidsCommand) setAsOf(asOf time.Time) error {
	if asOf.IsZero() {
		return ErrAsOfIsRequired
	}

	c.asOf = asOf
	return nil
}
