package commands

import (
	"context"

	"parcelmatch/internal/core/domain/model/bid"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/ports"
)

// ExpireBidsCommandHandler handles the deadline sweep. The sweep is
// idempotent: a bid already expired, withdrawn or decided is skipped, so
// rerunning over the same parcels changes nothing.
type ExpireBidsCommandHandler struct {
	uowFactory BiddingUoWFactory
	publisher  ports.EventPublisher
}

// NewExpireBidsCommandHandler creates a handler for the deadline sweep.
func NewExpireBidsCommandHandler(uowFactory BiddingUoWFactory, publisher ports.EventPublisher) ExpireBidsCommandHandler {
	return ExpireBidsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes one sweep run. The parcel itself stays OpenForBids with
// a passed deadline; only its pending bids expire, and each affected
// courier is notified once.
func (h ExpireBidsCommandHandler) Handle(ctx context.Context, cmd ExpireBidsCommand) error {
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

	parcelRepo := uow.ParcelRepository()
	bidRepo := uow.BidRepository()

	overdue, err := parcelRepo.GetAllOpenPastDeadline(ctx, cmd.AsOf())
	if err != nil {
		return err
	}

	var pushes []outbound
	for _, p := range overdue {
		bids, listErr := bidRepo.GetAllForParcel(ctx, p.ID())
		if listErr != nil {
			return listErr
		}

		parcelID := p.ID()
		for _, b := range bids {
			if b.Status() != bid.Pending {
				continue
			}
			if err = b.Expire(); err != nil {
				return err
			}
			if err = bidRepo.Update(ctx, b); err != nil {
				return err
			}

			note, noteErr := notification.NewNotification(
				kernel.NewUUID(),
				b.Courier(),
				notification.TypeSystem,
				"Your offer expired when bidding closed on this package",
				&parcelID,
				cmd.AsOf(),
			)
			if noteErr != nil {
				return noteErr
			}
			staged, noteErr := stageNotification(ctx, uow.NotificationRepository(), note)
			if noteErr != nil {
				return noteErr
			}
			pushes = append(pushes, staged...)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	flush(ctx, h.publisher, pushes)
	return nil
}
