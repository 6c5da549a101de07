// Package notificationrepo provides data transfer objects and mapping
// functions for notification persistence.
package notificationrepo

import (
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting
// notification envelopes. The read flag is the only mutable column.
type NotificationDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;index:idx_notifications_user"`
	Kind      string     `gorm:"type:varchar(32)"`
	Payload   string     `gorm:"type:text"`
	Read      bool       `gorm:"index:idx_notifications_user"`
	ParcelID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"index"`
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification aggregate to its database representation.
func fromDomain(aggregate *notification.Notification) NotificationDTO {
	var parcelID *uuid.UUID
	if id := aggregate.Parcel(); id != nil {
		raw := id.Bytes()
		parcelID = &raw
	}

	return NotificationDTO{
		ID:        aggregate.ID().Bytes(),
		UserID:    aggregate.User().Bytes(),
		Kind:      string(aggregate.Kind()),
		Payload:   aggregate.Payload(),
		Read:      aggregate.Read(),
		ParcelID:  parcelID,
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database row to a notification aggregate.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var parcelID *kernel.UUID
	if dto.ParcelID != nil {
		parcelUUID, idErr := kernel.UUIDFromBytes((*dto.ParcelID)[:])
		if idErr != nil {
			return nil, idErr
		}
		parcelID = &parcelUUID
	}

	return notification.RestoreNotification(
		id,
		userID,
		notification.Type(dto.Kind),
		dto.Payload,
		dto.Read,
		parcelID,
		dto.CreatedAt,
	)
}
