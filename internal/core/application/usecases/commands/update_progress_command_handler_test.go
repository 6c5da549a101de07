package commands_test

import (
	"testing"

	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateProgressCommandHandler_Handle_StartTransit(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	target := openParcel(t, senderID)
	require.NoError(t, target.AssignCourier(courierID))
	require.NoError(t, target.ConfirmPickupPending(courierID))

	cmd, err := commands.NewUpdateProgressCommand(target.ID(), courierID, parcel.InTransit, nil)
	require.NoError(t, err)

	accounts := new(MockAccountRepository)
	accounts.On("GetProfile", mock.Anything, courierID).Return(verifiedCourier(courierID), nil).Once()

	parcels := new(MockParcelRepository)
	parcels.On("Get", mock.Anything, target.ID()).Return(target, nil).Once()
	parcels.On("Update", mock.Anything, mock.MatchedBy(func(p *parcel.Parcel) bool {
		return p.Status() == parcel.InTransit
	})).Return(nil).Once()

	notifications := new(MockNotificationRepository)
	notifications.On("Add", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.User().IsEqual(senderID) && n.Kind() == notification.TypePackageInTransit
	})).Return(nil).Once()
	notifications.On("CountUnreadForUser", mock.Anything, senderID).Return(1, nil).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, senderID, mock.Anything).Return(nil).Twice()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AccountRepository").Return(accounts).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("NotificationRepository").Return(notifications).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateProgressCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	notifications.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateProgressCommandHandler_Handle_PickupNotifiesPickedUp(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	target := openParcel(t, senderID)
	require.NoError(t, target.AssignCourier(courierID))

	cmd, err := commands.NewUpdateProgressCommand(target.ID(), courierID, parcel.PendingPickup, nil)
	require.NoError(t, err)

	accounts := new(MockAccountRepository)
	accounts.On("GetProfile", mock.Anything, courierID).Return(verifiedCourier(courierID), nil).Once()

	parcels := new(MockParcelRepository)
	parcels.On("Get", mock.Anything, target.ID()).Return(target, nil).Once()
	parcels.On("Update", mock.Anything, mock.MatchedBy(func(p *parcel.Parcel) bool {
		return p.Status() == parcel.PendingPickup
	})).Return(nil).Once()

	notifications := new(MockNotificationRepository)
	notifications.On("Add", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.User().IsEqual(senderID) && n.Kind() == notification.TypePackagePickedUp
	})).Return(nil).Once()
	notifications.On("CountUnreadForUser", mock.Anything, senderID).Return(1, nil).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, senderID, mock.Anything).Return(nil).Twice()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AccountRepository").Return(accounts).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("NotificationRepository").Return(notifications).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateProgressCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	notifications.AssertExpectations(t)
}

func TestUpdateProgressCommandHandler_Handle_WrongCourier(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	otherID := kernel.NewUUID()
	target := openParcel(t, senderID)
	require.NoError(t, target.AssignCourier(courierID))

	cmd, err := commands.NewUpdateProgressCommand(target.ID(), otherID, parcel.PendingPickup, nil)
	require.NoError(t, err)

	accounts := new(MockAccountRepository)
	accounts.On("GetProfile", mock.Anything, otherID).Return(verifiedCourier(otherID), nil).Once()

	parcels := new(MockParcelRepository)
	parcels.On("Get", mock.Anything, target.ID()).Return(target, nil).Once()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AccountRepository").Return(accounts).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateProgressCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, parcel.ErrNotSelectedCourier)
	assert.Equal(t, parcel.BidSelected, target.Status())
}

func TestUpdateProgressCommandHandler_Handle_DeliveredStoresProof(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	target := openParcel(t, senderID)
	require.NoError(t, target.AssignCourier(courierID))
	require.NoError(t, target.ConfirmPickupPending(courierID))
	require.NoError(t, target.StartTransit(courierID))

	proofID := kernel.NewUUID()
	cmd, err := commands.NewUpdateProgressCommand(target.ID(), courierID, parcel.Delivered, &proofID)
	require.NoError(t, err)

	accounts := new(MockAccountRepository)
	accounts.On("GetProfile", mock.Anything, courierID).Return(verifiedCourier(courierID), nil).Once()

	parcels := new(MockParcelRepository)
	parcels.On("Get", mock.Anything, target.ID()).Return(target, nil).Once()
	parcels.On("Update", mock.Anything, mock.MatchedBy(func(p *parcel.Parcel) bool {
		return p.Status() == parcel.Delivered && p.ProofOfDelivery() != nil && p.ProofOfDelivery().IsEqual(proofID)
	})).Return(nil).Once()

	notifications := new(MockNotificationRepository)
	notifications.On("Add", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.Kind() == notification.TypePackageDelivered
	})).Return(nil).Once()
	notifications.On("CountUnreadForUser", mock.Anything, senderID).Return(1, nil).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, senderID, mock.Anything).Return(nil).Twice()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AccountRepository").Return(accounts).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("NotificationRepository").Return(notifications).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateProgressCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	parcels.AssertExpectations(t)
}
