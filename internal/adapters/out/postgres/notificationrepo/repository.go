package notificationrepo

import (
	"context"
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add saves a new notification to the database.
func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update persists the read flag.
func (r *GormNotificationRepository) Update(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("read", aggregate.Read())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("notification", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a notification by id.
func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForUser retrieves a user's notifications, newest first.
func (r *GormNotificationRepository) GetAllForUser(ctx context.Context, userID kernel.UUID) ([]*notification.Notification, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&dtos, "user_id = ?", userID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	feed := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		feed = append(feed, n)
	}

	return feed, nil
}

// CountUnreadForUser returns the user's unread count.
func (r *GormNotificationRepository) CountUnreadForUser(ctx context.Context, userID kernel.UUID) (int, error) {
	if err := userID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("user_id = ? AND read = ?", userID.Bytes(), false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// Delete removes a notification permanently.
func (r *GormNotificationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&NotificationDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("notification", id.String())
	}

	return nil
}
