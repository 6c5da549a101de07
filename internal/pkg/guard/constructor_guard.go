// Package guard implements the constructor-guard pattern used by commands and
// value objects to reject zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// was supplied and the object was not built through its constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embedding one in
// a struct lets Validate distinguish constructor-built instances from zero
// values, which keeps invariant checks at the construction boundary.
//
// Example:
//
//	type PlaceBidCommand struct {
//	    bidID kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func NewPlaceBidCommand(...) (PlaceBidCommand, error) {
//	    return PlaceBidCommand{..., guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c *PlaceBidCommand) Validate() error {
//	    return c.guard.Validate(ErrPlaceBidCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard flagged as constructed. Call it only
// from the owning type's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructor-built objects. For zero values it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
