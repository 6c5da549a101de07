package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrDeleteNotificationCommandIsNotConstructed = errors.New(
	"DeleteNotificationCommand must be created via NewDeleteNotificationCommand constructor",
)

// DeleteNotificationCommand represents a user permanently removing one of
// their notifications.
type DeleteNotificationCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	userID         kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteNotificationCommand creates a command to delete a notification.
func NewDeleteNotificationCommand(notificationID, userID kernel.UUID) (DeleteNotificationCommand, error) {
	cmd := DeleteNotificationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNotificationID(notificationID),
		cmd.setUserID(userID),
	); err != nil {
		return DeleteNotificationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteNotificationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteNotificationCommandIsNotConstructed)
}

// NotificationID returns the notification being deleted.
func (c DeleteNotificationCommand) NotificationID() kernel.UUID { return c.notificationID }

// UserID returns the acting user's identifier.
func (c DeleteNotificationCommand) UserID() kernel.UUID { return c.userID }

func (c *DeleteNotificationCommand) setNotificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.notificationID = id
	return nil
}

func (c *DeleteNotificationCommand) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.userID = id
	return nil
}
