package commands

import (
	"context"

	"parcelmatch/internal/core/ports"
	"parcelmatch/internal/pkg/errs"
)

// DeleteNotificationCommandHandler handles permanent notification removal.
// Deletion is the only operation that removes envelopes; everything else
// at most flips the read flag.
type DeleteNotificationCommandHandler struct {
	uowFactory NotificationUoWFactory
	publisher  ports.EventPublisher
}

// NewDeleteNotificationCommandHandler creates a handler for notification
// deletion.
func NewDeleteNotificationCommandHandler(uowFactory NotificationUoWFactory, publisher ports.EventPublisher) DeleteNotificationCommandHandler {
	return DeleteNotificationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the deletion command. Deleting an unread notification
// lowers the unread counter, so the fresh value is pushed after commit.
func (h DeleteNotificationCommandHandler) Handle(ctx context.Context, cmd DeleteNotificationCommand) error {
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

	if err = notificationRepo.Delete(ctx, cmd.NotificationID()); err != nil {
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
