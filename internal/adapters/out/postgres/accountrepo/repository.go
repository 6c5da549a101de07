package accountrepo

import (
	"context"
	"errors"

	"parcelmatch/internal/core/domain/model/account"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM.
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GORM account repository.
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// GetProfile retrieves the verification profile for a user.
func (r *GormAccountRepository) GetProfile(ctx context.Context, userID kernel.UUID) (*account.Profile, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("profile", userID.String())
		}
		return nil, err
	}

	profile, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}
