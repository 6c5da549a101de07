package commands

import (
	"context"
	"time"

	"parcelmatch/internal/core/domain/model/bid"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/domain/services"
	"parcelmatch/internal/core/ports"
)

// CancelParcelCommandHandler handles the business logic for canceling a
// parcel. Cancellation is forward-only damage control: still-pending bids
// are rejected in the same transaction and every affected courier is
// notified, the selected one included.
type CancelParcelCommandHandler struct {
	uowFactory BiddingUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelParcelCommandHandler creates a handler for parcel cancellation.
func NewCancelParcelCommandHandler(uowFactory BiddingUoWFactory, publisher ports.EventPublisher) CancelParcelCommandHandler {
	return CancelParcelCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command. The aggregate enforces that
// only the sender may cancel and only before transit begins.
func (h CancelParcelCommandHandler) Handle(ctx context.Context, cmd CancelParcelCommand) error {
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

	if err := checkGate(ctx, uow.AccountRepository(), cmd.SenderID(), services.ActionCancelParcel); err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	bidRepo := uow.BidRepository()

	target, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	selectedCourier := target.SelectedCourier()

	if err = target.Cancel(cmd.SenderID()); err != nil {
		return err
	}
	if err = parcelRepo.Update(ctx, target); err != nil {
		return err
	}

	bids, err := bidRepo.GetAllForParcel(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	now := time.Now()
	parcelID := target.ID()
	var pushes []outbound

	notify := func(userID kernel.UUID) error {
		note, noteErr := notification.NewNotification(
			kernel.NewUUID(),
			userID,
			notification.TypePackageCancelled,
			"The sender cancelled this package",
			&parcelID,
			now,
		)
		if noteErr != nil {
			return noteErr
		}
		staged, noteErr := stageNotification(ctx, uow.NotificationRepository(), note)
		if noteErr != nil {
			return noteErr
		}
		pushes = append(pushes, staged...)
		return nil
	}

	for _, b := range bids {
		if b.Status() != bid.Pending {
			continue
		}
		if err = b.Reject(); err != nil {
			return err
		}
		if err = bidRepo.Update(ctx, b); err != nil {
			return err
		}
		if err = notify(b.Courier()); err != nil {
			return err
		}
	}

	// The selected courier holds no pending bid anymore, so notify them
	// separately.
	if selectedCourier != nil {
		if err = notify(*selectedCourier); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	flush(ctx, h.publisher, pushes)
	return nil
}
