package commands

import (
	"context"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/domain/model/parcel"
	"parcelmatch/internal/core/domain/services"
	"parcelmatch/internal/core/ports"
)

// UpdateProgressCommandHandler handles the business logic for delivery
// progress updates. Every transition is forward-only and restricted to the
// selected courier; the sender is notified of each stage.
type UpdateProgressCommandHandler struct {
	uowFactory ParcelUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateProgressCommandHandler creates a handler for progress updates.
func NewUpdateProgressCommandHandler(uowFactory ParcelUoWFactory, publisher ports.EventPublisher) UpdateProgressCommandHandler {
	return UpdateProgressCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the progress command. Repeating a stage or skipping
// ahead surfaces as a conflict from the status state machine.
func (h UpdateProgressCommandHandler) Handle(ctx context.Context, cmd UpdateProgressCommand) error {
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

	if err := checkGate(ctx, uow.AccountRepository(), cmd.CourierID(), services.ActionUpdateProgress); err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()

	target, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	switch cmd.Stage() {
	case parcel.PendingPickup:
		err = target.ConfirmPickupPending(cmd.CourierID())
	case parcel.InTransit:
		err = target.StartTransit(cmd.CourierID())
	case parcel.Delivered:
		err = target.CompleteDelivery(cmd.CourierID(), *cmd.ProofID())
	case parcel.Failed:
		err = target.Fail(cmd.CourierID())
	}
	if err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, target); err != nil {
		return err
	}

	parcelID := target.ID()
	senderNote, err := notification.NewNotification(
		kernel.NewUUID(),
		target.Sender(),
		progressNotificationType(cmd.Stage()),
		progressNotificationBody(cmd.Stage()),
		&parcelID,
		time.Now(),
	)
	if err != nil {
		return err
	}

	pushes, err := stageNotification(ctx, uow.NotificationRepository(), senderNote)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	flush(ctx, h.publisher, pushes)
	return nil
}

// progressNotificationType maps a lifecycle stage to the notification
// taxonomy. Failure has no dedicated type and uses the system fallback.
func progressNotificationType(stage parcel.Status) notification.Type {
	switch stage {
	case parcel.PendingPickup:
		return notification.TypePackagePickedUp
	case parcel.InTransit:
		return notification.TypePackageInTransit
	case parcel.Delivered:
		return notification.TypePackageDelivered
	default:
		return notification.TypeSystem
	}
}

func progressNotificationBody(stage parcel.Status) string {
	switch stage {
	case parcel.PendingPickup:
		return "Your courier confirmed the pickup arrangements"
	case parcel.InTransit:
		return "Your courier picked the package up and is on the way"
	case parcel.Delivered:
		return "Your package arrived. Proof of delivery is attached."
	default:
		return "The courier reported a problem with the delivery"
	}
}
