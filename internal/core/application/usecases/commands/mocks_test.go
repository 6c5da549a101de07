package commands_test

import (
	"context"
	"testing"
	"time"

	"parcelmatch/internal/core/application/events"
	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/domain/model/account"
	"parcelmatch/internal/core/domain/model/bid"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/domain/model/parcel"
	"parcelmatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllBySender(ctx context.Context, senderID kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, senderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllOpenPastDeadline(ctx context.Context, now time.Time) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockBidRepository struct{ mock.Mock }

func (m *MockBidRepository) Add(ctx context.Context, b *bid.Bid) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBidRepository) Update(ctx context.Context, b *bid.Bid) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBidRepository) Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bid.Bid), args.Error(1)
}

func (m *MockBidRepository) GetAllForParcel(ctx context.Context, parcelID kernel.UUID) ([]*bid.Bid, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bid.Bid), args.Error(1)
}

func (m *MockBidRepository) GetPendingForCourier(ctx context.Context, parcelID, courierID kernel.UUID) (*bid.Bid, error) {
	args := m.Called(ctx, parcelID, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bid.Bid), args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) GetProfile(ctx context.Context, userID kernel.UUID) (*account.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Profile), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetAllForUser(ctx context.Context, userID kernel.UUID) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnreadForUser(ctx context.Context, userID kernel.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, userID kernel.UUID, envelope events.Envelope) error {
	args := m.Called(ctx, userID, envelope)
	return args.Error(0)
}

type MockBiddingUoW struct{ mock.Mock }

func (m *MockBiddingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBiddingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBiddingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBiddingUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockBiddingUoW) BidRepository() ports.BidRepository {
	args := m.Called()
	return args.Get(0).(ports.BidRepository)
}

func (m *MockBiddingUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

func (m *MockBiddingUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockBiddingUoWFactory struct{ mock.Mock }

func (m *MockBiddingUoWFactory) Create() commands.BiddingUoW {
	args := m.Called()
	return args.Get(0).(commands.BiddingUoW)
}

type MockParcelUoW struct{ mock.Mock }

func (m *MockParcelUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockParcelUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

func (m *MockParcelUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockNotificationUoW struct{ mock.Mock }

func (m *MockNotificationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

// openParcel returns a parcel in OpenForBids with an hour of bidding left.
func openParcel(t *testing.T, senderID kernel.UUID) *parcel.Parcel {
	t.Helper()

	pickup, err := parcel.NewWaypoint("1 Harbor Rd", "Ann", "+15550100")
	require.NoError(t, err)
	dropoff, err := parcel.NewWaypoint("9 Hill St", "Bo", "+15550101")
	require.NoError(t, err)

	p, err := parcel.NewParcel(kernel.NewUUID(), senderID, "Box of books", parcel.Medium, 3000, pickup, dropoff, nil)
	require.NoError(t, err)
	require.NoError(t, p.Publish(time.Now().Add(time.Hour), time.Now()))
	return p
}

// pendingBid returns a pending bid on the parcel at the given price.
func pendingBid(t *testing.T, parcelID, courierID kernel.UUID, cents int64) *bid.Bid {
	t.Helper()

	price, err := kernel.NewPrice(cents)
	require.NoError(t, err)
	b, err := bid.NewBid(kernel.NewUUID(), parcelID, courierID, price, nil, "", time.Now())
	require.NoError(t, err)
	return b
}

// verifiedSender returns a profile that clears the gate for sender actions.
func verifiedSender(userID kernel.UUID) *account.Profile {
	profile, _ := account.NewProfile(userID, account.Sender, true, true, false)
	return &profile
}

// verifiedCourier returns a profile that clears the gate for courier actions.
func verifiedCourier(userID kernel.UUID) *account.Profile {
	profile, _ := account.NewProfile(userID, account.Courier, true, true, true)
	return &profile
}
