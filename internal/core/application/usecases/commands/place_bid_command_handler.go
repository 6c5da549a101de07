package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcelmatch/internal/core/domain/model/bid"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/domain/services"
	"parcelmatch/internal/core/ports"
	"parcelmatch/internal/pkg/errs"
)

// PlaceBidCommandHandler handles the business logic for placing a bid.
// Verifies the courier through the verification gate, enforces the
// one-pending-bid-per-courier rule and the bidding window, persists the bid
// and notifies the sender.
type PlaceBidCommandHandler struct {
	uowFactory BiddingUoWFactory
	publisher  ports.EventPublisher
}

// NewPlaceBidCommandHandler creates a handler for bid placement.
func NewPlaceBidCommandHandler(uowFactory BiddingUoWFactory, publisher ports.EventPublisher) PlaceBidCommandHandler {
	return PlaceBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the bid placement command. The parcel must still be
// OpenForBids with its deadline ahead; a courier cannot bid on their own
// parcel and cannot hold two pending bids on the same parcel.
func (h PlaceBidCommandHandler) Handle(ctx context.Context, cmd PlaceBidCommand) error {
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

	if err := checkGate(ctx, uow.AccountRepository(), cmd.CourierID(), services.ActionPlaceBid); err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	bidRepo := uow.BidRepository()

	target, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if target.Sender().IsEqual(cmd.CourierID()) {
		return errs.NewAuthorizationError(string(services.ActionPlaceBid), "")
	}

	now := time.Now()
	if !target.IsOpenForBidding(now) {
		return errs.NewConflictError("parcel", target.ID().String(), "not open for bids")
	}

	existing, err := bidRepo.GetPendingForCourier(ctx, cmd.ParcelID(), cmd.CourierID())
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	if existing != nil {
		return errs.NewConflictError("bid", existing.ID().String(),
			"courier already has a pending bid on this parcel")
	}

	newBid, err := bid.NewBid(
		cmd.BidID(),
		cmd.ParcelID(),
		cmd.CourierID(),
		cmd.Price(),
		cmd.EstimatedHours(),
		cmd.Message(),
		now,
	)
	if err != nil {
		return err
	}

	if err = bidRepo.Add(ctx, newBid); err != nil {
		return err
	}

	parcelID := target.ID()
	senderNote, err := notification.NewNotification(
		kernel.NewUUID(),
		target.Sender(),
		notification.TypePackageMatchFound,
		fmt.Sprintf("A courier offered to deliver your package for %s", cmd.Price()),
		&parcelID,
		now,
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
