package account

import (
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/errs"
)

// ErrProfileIsNotConstructed indicates a zero-value Profile that bypassed
// NewProfile.
var ErrProfileIsNotConstructed = errs.NewValueIsRequiredError("Profile must be created via NewProfile")

// Profile is the verification snapshot for one user. It is a read model:
// the verification flows that flip these flags are external collaborators,
// the engine only reads the result.
//
// Profile is an immutable value object.
type Profile struct {
	userID        kernel.UUID
	role          Role
	emailVerified bool
	phoneVerified bool
	idVerified    bool
	isConstructed bool
}

// NewProfile creates a validated verification profile.
func NewProfile(userID kernel.UUID, role Role, emailVerified, phoneVerified, idVerified bool) (Profile, error) {
	if err := userID.Validate(); err != nil {
		return Profile{}, err
	}
	if err := role.Validate(); err != nil {
		return Profile{}, err
	}

	return Profile{
		userID:        userID,
		role:          role,
		emailVerified: emailVerified,
		phoneVerified: phoneVerified,
		idVerified:    idVerified,
		isConstructed: true,
	}, nil
}

// UserID returns the profile owner's account id.
func (p Profile) UserID() kernel.UUID { return p.userID }

// Role returns the user's marketplace role.
func (p Profile) Role() Role { return p.role }

// EmailVerified reports whether the email flow completed.
func (p Profile) EmailVerified() bool { return p.emailVerified }

// PhoneVerified reports whether the phone flow completed.
func (p Profile) PhoneVerified() bool { return p.phoneVerified }

// IDVerified reports whether the government-id flow completed.
func (p Profile) IDVerified() bool { return p.idVerified }

// Validate returns ErrProfileIsNotConstructed for the zero value.
func (p Profile) Validate() error {
	if !p.isConstructed {
		return ErrProfileIsNotConstructed
	}
	return nil
}
