package commands_test

import (
	"testing"
	"time"

	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/domain/model/bid"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewExpireBidsCommand_RequiresInstant(t *testing.T) {
	_, err := commands.NewExpireBidsCommand(time.Time{})
	require.ErrorIs(t, err, commands.ErrAsOfIsRequired)

	cmd, err := commands.NewExpireBidsCommand(time.Now())
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
}

func TestExpireBidsCommandHandler_Handle_ExpiresOnlyPendingBids(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	target := openParcel(t, senderID)
	pending := pendingBid(t, target.ID(), courierID, 1500)
	withdrawn := pendingBid(t, target.ID(), kernel.NewUUID(), 1700)
	require.NoError(t, withdrawn.Withdraw(withdrawn.Courier()))

	asOf := time.Now()
	cmd, err := commands.NewExpireBidsCommand(asOf)
	require.NoError(t, err)

	parcels := new(MockParcelRepository)
	parcels.On("GetAllOpenPastDeadline", mock.Anything, asOf).Return([]*parcel.Parcel{target}, nil).Once()

	bids := new(MockBidRepository)
	bids.On("GetAllForParcel", mock.Anything, target.ID()).Return([]*bid.Bid{pending, withdrawn}, nil).Once()
	bids.On("Update", mock.Anything, pending).Return(nil).Once()

	notifications := new(MockNotificationRepository)
	notifications.On("Add", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.User().IsEqual(courierID) && n.Kind() == notification.TypeSystem
	})).Return(nil).Once()
	notifications.On("CountUnreadForUser", mock.Anything, courierID).Return(2, nil).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, courierID, mock.Anything).Return(nil).Twice()

	uow := new(MockBiddingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("BidRepository").Return(bids).Once()
	uow.On("NotificationRepository").Return(notifications)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBiddingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireBidsCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, bid.Expired, pending.Status())
	assert.Equal(t, bid.Withdrawn, withdrawn.Status())
	bids.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestExpireBidsCommandHandler_Handle_NothingOverdue(t *testing.T) {
	ctx := t.Context()
	asOf := time.Now()
	cmd, err := commands.NewExpireBidsCommand(asOf)
	require.NoError(t, err)

	parcels := new(MockParcelRepository)
	parcels.On("GetAllOpenPastDeadline", mock.Anything, asOf).Return([]*parcel.Parcel{}, nil).Once()

	uow := new(MockBiddingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("BidRepository").Return(new(MockBidRepository)).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBiddingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireBidsCommandHandler(factory, new(MockEventPublisher))
	require.NoError(t, h.Handle(ctx, cmd))
}
