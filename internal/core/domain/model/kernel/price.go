package kernel

import (
	"fmt"

	"parcelmatch/internal/pkg/errs"
)

// ErrPriceIsNotConstructed indicates a zero-value Price that bypassed NewPrice.
var ErrPriceIsNotConstructed = errs.NewValueIsRequiredError("Price must be created via NewPrice")

// Price is a money value object holding an amount in cents. Bid prices and
// suggested parcel prices use it so that comparison and ordering never touch
// floating point.
//
// Price is immutable; the zero value is invalid.
type Price struct {
	cents         int64
	isConstructed bool
}

// NewPrice creates a Price from a cent amount. The amount must be positive:
// a bid of zero is meaningless in the marketplace and negative amounts are
// always a caller bug.
func NewPrice(cents int64) (Price, error) {
	if cents <= 0 {
		return Price{}, errs.NewValidationErrorWithCause(
			"price",
			fmt.Errorf("%d cents is not a positive amount", cents),
		)
	}

	return Price{cents: cents, isConstructed: true}, nil
}

// Cents returns the amount in cents.
func (p Price) Cents() int64 {
	return p.cents
}

// LessThan reports whether p is strictly cheaper than other. Used for the
// pending-bids display ordering.
func (p Price) LessThan(other Price) bool {
	return p.cents < other.cents
}

// IsEqual reports whether both prices hold the same amount.
func (p Price) IsEqual(other Price) bool {
	return p.cents == other.cents
}

// String renders the price as dollars with two decimals, e.g. "18.50".
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", p.cents/100, p.cents%100)
}

// Validate returns ErrPriceIsNotConstructed for the zero value.
func (p Price) Validate() error {
	if !p.isConstructed {
		return ErrPriceIsNotConstructed
	}
	return nil
}
