package commands

import (
	"context"

	"parcelmatch/internal/core/ports"
	"parcelmatch/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler handles the read-flag mutation.
// Marking is idempotent; the pushed unread counter is the authoritative
// post-commit value either way.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	publisher  ports.EventPublisher
}

// NewMarkNotificationReadCommandHandler creates a handler for marking
// notifications read.
func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory, publisher ports.EventPublisher) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the mark-read command. Another user's notification is
// reported as not found rather than forbidden, so notification ids leak
// nothing about other accounts.
func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()

	target, err := notificationRepo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}
	if !target.User().IsEqual(cmd.UserID()) {
		return errs.NewNotFoundError("notificationId", cmd.NotificationID().String())
	}

	target.MarkRead()
	if err = notificationRepo.Update(ctx, target); err != nil {
		return err
	}

	pushes, err := stageUnreadCount(ctx, notificationRepo, cmd.UserID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	flush(ctx, h.publisher, pushes)
	return nil
}
