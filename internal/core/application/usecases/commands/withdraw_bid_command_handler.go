package commands

import (
	"context"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/domain/services"
	"parcelmatch/internal/core/ports"
)

// WithdrawBidCommandHandler handles the business logic for withdrawing a
// bid. Only the bid's owner may withdraw, and only while it is still
// pending; the parcel's sender is notified of the retraction.
type WithdrawBidCommandHandler struct {
	uowFactory BiddingUoWFactory
	publisher  ports.EventPublisher
}

// NewWithdrawBidCommandHandler creates a handler for bid withdrawal.
func NewWithdrawBidCommandHandler(uowFactory BiddingUoWFactory, publisher ports.EventPublisher) WithdrawBidCommandHandler {
	return WithdrawBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the withdrawal command. Ownership and the
// pending-status rule are enforced by the bid aggregate itself.
func (h WithdrawBidCommandHandler) Handle(ctx context.Context, cmd WithdrawBidCommand) error {
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

	if err := checkGate(ctx, uow.AccountRepository(), cmd.CourierID(), services.ActionWithdrawBid); err != nil {
		return err
	}

	bidRepo := uow.BidRepository()

	target, err := bidRepo.Get(ctx, cmd.BidID())
	if err != nil {
		return err
	}

	if err = target.Withdraw(cmd.CourierID()); err != nil {
		return err
	}

	if err = bidRepo.Update(ctx, target); err != nil {
		return err
	}

	owner, err := uow.ParcelRepository().Get(ctx, target.Parcel())
	if err != nil {
		return err
	}

	parcelID := owner.ID()
	senderNote, err := notification.NewNotification(
		kernel.NewUUID(),
		owner.Sender(),
		notification.TypeSystem,
		"A courier withdrew their offer on your package",
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
