package account

import (
	"fmt"

	"parcelmatch/internal/pkg/errs"
)

// Role represents what a user does on the marketplace. A user holding Both
// is held to the stricter courier-level verification bar for every action,
// including sender-only ones.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	Sender
	Courier
	Both
	Admin
)

func getRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		Sender:  "sender",
		Courier: "courier",
		Both:    "both",
		Admin:   "admin",
	}
}

// RoleFromString parses the wire representation of a role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValidationErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the Role holds one of the defined values.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValidationErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// CarriesParcels reports whether the role includes courier duties, which
// carry the stricter verification bar.
func (r Role) CarriesParcels() bool {
	return r == Courier || r == Both
}
