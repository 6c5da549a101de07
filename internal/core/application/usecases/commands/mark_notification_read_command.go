package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

// MarkNotificationReadCommand represents a user marking one of their
// notifications as read.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	userID         kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkNotificationReadCommand creates a command to mark a notification read.
func NewMarkNotificationReadCommand(notificationID, userID kernel.UUID) (MarkNotificationReadCommand, error) {
	cmd := MarkNotificationReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNotificationID(notificationID),
		cmd.setUserID(userID),
	); err != nil {
		return MarkNotificationReadCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

// NotificationID returns the notification being marked.
func (c MarkNotificationReadCommand) NotificationID() kernel.UUID { return c.notificationID }

// UserID returns the acting user's identifier.
func (c MarkNotificationReadCommand) UserID() kernel.UUID { return c.userID }

func (c *MarkNotificationReadCommand) setNotificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.notificationID = id
	return nil
}

func (c *MarkNotificationReadCommand) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.userID = id
	return nil
}
