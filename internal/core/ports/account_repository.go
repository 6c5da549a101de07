package ports

import (
	"context"

	"parcelmatch/internal/core/domain/model/account"
	"parcelmatch/internal/core/domain/model/kernel"
)

// AccountRepository reads verification profiles. Profiles are written by the
// external verification flows; the engine only consumes them, so the
// contract is read-only.
type AccountRepository interface {
	// GetProfile retrieves the verification profile for a user.
	GetProfile(ctx context.Context, userID kernel.UUID) (*account.Profile, error)
}
