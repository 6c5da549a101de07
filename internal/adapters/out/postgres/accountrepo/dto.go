// Package accountrepo provides read-only access to verification profiles.
// Profiles are written by the external verification flows; this package
// only rehydrates them for the gate.
package accountrepo

import (
	"parcelmatch/internal/core/domain/model/account"
	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ProfileDTO represents the database structure of a verification profile.
type ProfileDTO struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role          string    `gorm:"type:varchar(16)"`
	EmailVerified bool      `gorm:""`
	PhoneVerified bool      `gorm:""`
	IDVerified    bool      `gorm:""`
}

// TableName specifies the database table name for profiles.
func (ProfileDTO) TableName() string {
	return "profiles"
}

// toDomain converts a database row to a Profile value object.
func toDomain(dto ProfileDTO) (account.Profile, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return account.Profile{}, err
	}

	role, err := account.RoleFromString(dto.Role)
	if err != nil {
		return account.Profile{}, err
	}

	return account.NewProfile(userID, role, dto.EmailVerified, dto.PhoneVerified, dto.IDVerified)
}
