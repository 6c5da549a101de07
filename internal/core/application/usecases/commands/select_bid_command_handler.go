package commands

import (
	"context"
	"fmt"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/domain/services"
	"parcelmatch/internal/core/ports"
	"parcelmatch/internal/pkg/errs"
)

// SelectBidCommandHandler handles the business logic for bid selection.
// Applies the atomic selection rule: one winner, every competitor rejected,
// the parcel assigned to the winning courier, all persisted in a single
// transaction. A concurrent selection on the same parcel loses at commit
// time through the version guard on the parcel row and surfaces as a
// conflict error.
type SelectBidCommandHandler struct {
	uowFactory BiddingUoWFactory
	publisher  ports.EventPublisher
}

// NewSelectBidCommandHandler creates a handler for bid selection.
func NewSelectBidCommandHandler(uowFactory BiddingUoWFactory, publisher ports.EventPublisher) SelectBidCommandHandler {
	return SelectBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the selection command. Only the sender may select, and
// only while bidding is open: a passed deadline is a conflict even if the
// expiry sweep has not run yet.
func (h SelectBidCommandHandler) Handle(ctx context.Context, cmd SelectBidCommand) error {
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

	if err := checkGate(ctx, uow.AccountRepository(), cmd.SenderID(), services.ActionSelectBid); err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	bidRepo := uow.BidRepository()

	target, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if !target.Sender().IsEqual(cmd.SenderID()) {
		return errs.NewAuthorizationError(string(services.ActionSelectBid), "")
	}

	now := time.Now()
	if target.DeadlinePassed(now) {
		return errs.NewConflictError("parcel", target.ID().String(), "bidding deadline has passed")
	}

	bids, err := bidRepo.GetAllForParcel(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	result, err := services.NewBidSelector().Select(target, bids, cmd.BidID(), now)
	if err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, result.Parcel); err != nil {
		return err
	}
	if err = bidRepo.Update(ctx, result.Selected); err != nil {
		return err
	}
	for _, rejected := range result.Rejected {
		if err = bidRepo.Update(ctx, rejected); err != nil {
			return err
		}
	}

	pushes, err := h.stageOutcome(ctx, uow, result, now)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	flush(ctx, h.publisher, pushes)
	return nil
}

// stageOutcome creates the notifications announcing the selection: the
// sender and the winning courier learn the match, every rejected bidder
// learns they lost.
func (h SelectBidCommandHandler) stageOutcome(
	ctx context.Context,
	uow BiddingUoW,
	result *services.SelectionResult,
	now time.Time,
) ([]outbound, error) {
	notificationRepo := uow.NotificationRepository()
	parcelID := result.Parcel.ID()

	var pushes []outbound

	stage := func(userID kernel.UUID, kind notification.Type, body string) error {
		note, err := notification.NewNotification(kernel.NewUUID(), userID, kind, body, &parcelID, now)
		if err != nil {
			return err
		}
		staged, err := stageNotification(ctx, notificationRepo, note)
		if err != nil {
			return err
		}
		pushes = append(pushes, staged...)
		return nil
	}

	if err := stage(
		result.Parcel.Sender(),
		notification.TypePackageMatched,
		fmt.Sprintf("You accepted an offer of %s for your package", result.Selected.Price()),
	); err != nil {
		return nil, err
	}

	if err := stage(
		result.Selected.Courier(),
		notification.TypePackageMatched,
		"Your offer was accepted. Arrange the pickup with the sender.",
	); err != nil {
		return nil, err
	}

	for _, rejected := range result.Rejected {
		if err := stage(
			rejected.Courier(),
			notification.TypeSystem,
			"The sender chose another offer for this package",
		); err != nil {
			return nil, err
		}
	}

	return pushes, nil
}
