package commands

import (
	"context"
	"time"

	"parcelmatch/internal/core/domain/model/parcel"
	"parcelmatch/internal/core/domain/services"
)

// PostParcelCommandHandler handles the business logic for posting a parcel.
// Verifies the sender through the verification gate, creates the parcel and
// immediately opens it for bids until the requested deadline.
type PostParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewPostParcelCommandHandler creates a handler for parcel posting.
// Requires a ParcelUoWFactory for transactional persistence.
func NewPostParcelCommandHandler(uowFactory ParcelUoWFactory) PostParcelCommandHandler {
	return PostParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the parcel posting command. The parcel is created in New
// status and published to OpenForBids in the same transaction; a deadline
// at or before now fails validation inside Publish.
func (h PostParcelCommandHandler) Handle(ctx context.Context, cmd PostParcelCommand) error {
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

	if err := checkGate(ctx, uow.AccountRepository(), cmd.SenderID(), services.ActionPostParcel); err != nil {
		return err
	}

	newParcel, err := parcel.NewParcel(
		cmd.ParcelID(),
		cmd.SenderID(),
		cmd.Description(),
		cmd.Size(),
		cmd.WeightGrams(),
		cmd.Pickup(),
		cmd.Dropoff(),
		cmd.SuggestedPrice(),
	)
	if err != nil {
		return err
	}

	if err = newParcel.Publish(cmd.BiddingDeadline(), time.Now()); err != nil {
		return err
	}

	if err = uow.ParcelRepository().Add(ctx, newParcel); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
