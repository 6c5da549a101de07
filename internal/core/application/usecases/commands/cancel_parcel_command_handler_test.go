package commands_test

import (
	"testing"

	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/domain/model/bid"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/domain/model/parcel"
	"parcelmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelParcelCommandHandler_Handle_RejectsPendingBids(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	target := openParcel(t, senderID)
	pending := pendingBid(t, target.ID(), courierID, 1500)

	cmd, err := commands.NewCancelParcelCommand(target.ID(), senderID)
	require.NoError(t, err)

	accounts := new(MockAccountRepository)
	accounts.On("GetProfile", mock.Anything, senderID).Return(verifiedSender(senderID), nil).Once()

	parcels := new(MockParcelRepository)
	parcels.On("Get", mock.Anything, target.ID()).Return(target, nil).Once()
	parcels.On("Update", mock.Anything, mock.MatchedBy(func(p *parcel.Parcel) bool {
		return p.Status() == parcel.Canceled
	})).Return(nil).Once()

	bids := new(MockBidRepository)
	bids.On("GetAllForParcel", mock.Anything, target.ID()).Return([]*bid.Bid{pending}, nil).Once()
	bids.On("Update", mock.Anything, pending).Return(nil).Once()

	notifications := new(MockNotificationRepository)
	notifications.On("Add", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.User().IsEqual(courierID) && n.Kind() == notification.TypePackageCancelled
	})).Return(nil).Once()
	notifications.On("CountUnreadForUser", mock.Anything, courierID).Return(1, nil).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, courierID, mock.Anything).Return(nil).Twice()

	uow := new(MockBiddingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AccountRepository").Return(accounts).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("BidRepository").Return(bids).Once()
	uow.On("NotificationRepository").Return(notifications)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBiddingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelParcelCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, bid.Rejected, pending.Status())
	notifications.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCancelParcelCommandHandler_Handle_NotSender(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	impostorID := kernel.NewUUID()
	target := openParcel(t, senderID)

	cmd, err := commands.NewCancelParcelCommand(target.ID(), impostorID)
	require.NoError(t, err)

	accounts := new(MockAccountRepository)
	accounts.On("GetProfile", mock.Anything, impostorID).Return(verifiedSender(impostorID), nil).Once()

	parcels := new(MockParcelRepository)
	parcels.On("Get", mock.Anything, target.ID()).Return(target, nil).Once()

	uow := new(MockBiddingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AccountRepository").Return(accounts).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("BidRepository").Return(new(MockBidRepository)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBiddingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelParcelCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, parcel.ErrNotSender)
	assert.Equal(t, parcel.OpenForBids, target.Status())
}

func TestCancelParcelCommandHandler_Handle_InTransitConflict(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	target := openParcel(t, senderID)
	require.NoError(t, target.AssignCourier(courierID))
	require.NoError(t, target.ConfirmPickupPending(courierID))
	require.NoError(t, target.StartTransit(courierID))

	cmd, err := commands.NewCancelParcelCommand(target.ID(), senderID)
	require.NoError(t, err)

	accounts := new(MockAccountRepository)
	accounts.On("GetProfile", mock.Anything, senderID).Return(verifiedSender(senderID), nil).Once()

	parcels := new(MockParcelRepository)
	parcels.On("Get", mock.Anything, target.ID()).Return(target, nil).Once()

	uow := new(MockBiddingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AccountRepository").Return(accounts).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("BidRepository").Return(new(MockBidRepository)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBiddingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelParcelCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, parcel.InTransit, target.Status())
}
