package queries

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrGetVerificationProfileQueryIsNotConstructed = errors.New(
	"GetVerificationProfileQuery must be created via NewGetVerificationProfileQuery constructor",
)

// GetVerificationProfileQuery retrieves a user's verification flags plus
// the gate decision for each lifecycle action, so clients can disable
// controls up front instead of discovering the redirect on submit.
type GetVerificationProfileQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetVerificationProfileQuery creates a query for a verification profile.
func NewGetVerificationProfileQuery(userID kernel.UUID) (GetVerificationProfileQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetVerificationProfileQuery{}, err
	}

	return GetVerificationProfileQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetVerificationProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetVerificationProfileQueryIsNotConstructed)
}

// UserID returns the profile owner's identifier.
func (q GetVerificationProfileQuery) UserID() kernel.UUID {
	return q.userID
}

// ActionDecision reports the gate outcome for one action.
type ActionDecision struct {
	Action     string
	Allowed    bool
	RedirectTo string
}

// GetVerificationProfileQueryResponse carries the flags and the per-action
// decisions.
type GetVerificationProfileQueryResponse struct {
	UserID        kernel.UUID
	Role          string
	EmailVerified bool
	PhoneVerified bool
	IDVerified    bool
	Actions       []ActionDecision
}
