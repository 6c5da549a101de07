package parcel_test

import (
	"testing"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/parcel"
	"parcelmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWaypoint(t *testing.T, address string) parcel.Waypoint {
	t.Helper()
	w, err := parcel.NewWaypoint(address, "Alex Chen", "+15550100")
	require.NoError(t, err)
	return w
}

func newTestParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"box of books",
		parcel.Medium,
		2500,
		validWaypoint(t, "12 Pickup St"),
		validWaypoint(t, "99 Dropoff Ave"),
		nil,
	)
	require.NoError(t, err)
	return p
}

func TestNewParcel(t *testing.T) {
	t.Run("valid parcel starts in new status", func(t *testing.T) {
		p := newTestParcel(t)

		require.NoError(t, p.Validate())
		assert.Equal(t, parcel.New, p.Status())
		assert.Nil(t, p.BiddingDeadline())
		assert.Nil(t, p.SelectedCourier())
		assert.Nil(t, p.ProofOfDelivery())
		assert.Equal(t, 0, p.Version())
	})

	t.Run("fails with empty description", func(t *testing.T) {
		_, err := parcel.NewParcel(
			kernel.NewUUID(), kernel.NewUUID(), "",
			parcel.Small, 100,
			validWaypoint(t, "a"), validWaypoint(t, "b"), nil,
		)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Contains(t, err.Error(), "description")
	})

	t.Run("fails with non-positive weight", func(t *testing.T) {
		_, err := parcel.NewParcel(
			kernel.NewUUID(), kernel.NewUUID(), "books",
			parcel.Small, 0,
			validWaypoint(t, "a"), validWaypoint(t, "b"), nil,
		)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("fails with invalid size class", func(t *testing.T) {
		_, err := parcel.NewParcel(
			kernel.NewUUID(), kernel.NewUUID(), "books",
			parcel.SizeUnknown, 100,
			validWaypoint(t, "a"), validWaypoint(t, "b"), nil,
		)

		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("fails with zero-value waypoint", func(t *testing.T) {
		var missing parcel.Waypoint
		_, err := parcel.NewParcel(
			kernel.NewUUID(), kernel.NewUUID(), "books",
			parcel.Small, 100,
			missing, validWaypoint(t, "b"), nil,
		)

		require.ErrorIs(t, err, parcel.ErrWaypointIsNotConstructed)
	})

	t.Run("collects multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID
		_, err := parcel.NewParcel(
			invalidID, kernel.NewUUID(), "",
			parcel.Small, -5,
			validWaypoint(t, "a"), validWaypoint(t, "b"), nil,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "description")
		assert.Contains(t, err.Error(), "-5 is not greater than 0")
	})
}

func TestParcel_Validate(t *testing.T) {
	var notConstructed parcel.Parcel

	require.ErrorIs(t, notConstructed.Validate(), parcel.ErrParcelIsNotConstructed)
}

func TestParcel_Publish(t *testing.T) {
	now := time.Now()

	t.Run("opens bidding with future deadline", func(t *testing.T) {
		p := newTestParcel(t)
		deadline := now.Add(time.Hour)

		require.NoError(t, p.Publish(deadline, now))

		assert.Equal(t, parcel.OpenForBids, p.Status())
		require.NotNil(t, p.BiddingDeadline())
		assert.True(t, p.BiddingDeadline().Equal(deadline))
		assert.True(t, p.IsOpenForBidding(now))
		assert.False(t, p.IsOpenForBidding(deadline))
	})

	t.Run("rejects past deadline", func(t *testing.T) {
		p := newTestParcel(t)

		err := p.Publish(now.Add(-time.Minute), now)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, parcel.New, p.Status())
	})

	t.Run("rejects double publish", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.Publish(now.Add(time.Hour), now))

		err := p.Publish(now.Add(2*time.Hour), now)

		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestParcel_AssignCourier(t *testing.T) {
	now := time.Now()

	t.Run("assigns courier and moves to bid_selected", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.Publish(now.Add(time.Hour), now))
		courier := kernel.NewUUID()

		require.NoError(t, p.AssignCourier(courier))

		assert.Equal(t, parcel.BidSelected, p.Status())
		require.NotNil(t, p.SelectedCourier())
		assert.True(t, p.SelectedCourier().IsEqual(courier))
	})

	t.Run("second assignment conflicts", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.Publish(now.Add(time.Hour), now))
		require.NoError(t, p.AssignCourier(kernel.NewUUID()))

		err := p.AssignCourier(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("assignment before publication conflicts", func(t *testing.T) {
		p := newTestParcel(t)

		err := p.AssignCourier(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestParcel_DeliveryProgress(t *testing.T) {
	now := time.Now()
	courier := kernel.NewUUID()

	selected := func(t *testing.T) *parcel.Parcel {
		p := newTestParcel(t)
		require.NoError(t, p.Publish(now.Add(time.Hour), now))
		require.NoError(t, p.AssignCourier(courier))
		return p
	}

	t.Run("selected courier drives progress to delivered", func(t *testing.T) {
		p := selected(t)
		proof := kernel.NewUUID()

		require.NoError(t, p.ConfirmPickupPending(courier))
		require.NoError(t, p.StartTransit(courier))
		require.NoError(t, p.CompleteDelivery(courier, proof))

		assert.Equal(t, parcel.Delivered, p.Status())
		require.NotNil(t, p.ProofOfDelivery())
		assert.True(t, p.ProofOfDelivery().IsEqual(proof))
	})

	t.Run("stranger cannot drive progress", func(t *testing.T) {
		p := selected(t)

		err := p.ConfirmPickupPending(kernel.NewUUID())

		require.ErrorIs(t, err, parcel.ErrNotSelectedCourier)
		assert.Equal(t, parcel.BidSelected, p.Status())
	})

	t.Run("delivery without proof is rejected", func(t *testing.T) {
		p := selected(t)
		require.NoError(t, p.ConfirmPickupPending(courier))
		require.NoError(t, p.StartTransit(courier))

		var missingProof kernel.UUID
		err := p.CompleteDelivery(courier, missingProof)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, parcel.InTransit, p.Status())
	})

	t.Run("courier may fail an in-transit delivery", func(t *testing.T) {
		p := selected(t)
		require.NoError(t, p.ConfirmPickupPending(courier))
		require.NoError(t, p.StartTransit(courier))

		require.NoError(t, p.Fail(courier))

		assert.Equal(t, parcel.Failed, p.Status())
	})
}

func TestParcel_Cancel(t *testing.T) {
	now := time.Now()

	t.Run("sender cancels before transit", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.Publish(now.Add(time.Hour), now))

		require.NoError(t, p.Cancel(p.Sender()))

		assert.Equal(t, parcel.Canceled, p.Status())
	})

	t.Run("non-sender cannot cancel", func(t *testing.T) {
		p := newTestParcel(t)

		err := p.Cancel(kernel.NewUUID())

		require.ErrorIs(t, err, parcel.ErrNotSender)
	})

	t.Run("cancel of in-transit parcel conflicts", func(t *testing.T) {
		p := newTestParcel(t)
		courier := kernel.NewUUID()
		require.NoError(t, p.Publish(now.Add(time.Hour), now))
		require.NoError(t, p.AssignCourier(courier))
		require.NoError(t, p.ConfirmPickupPending(courier))
		require.NoError(t, p.StartTransit(courier))

		err := p.Cancel(p.Sender())

		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestRestoreParcel(t *testing.T) {
	now := time.Now()
	deadline := now.Add(time.Hour)
	courier := kernel.NewUUID()

	t.Run("restores full state", func(t *testing.T) {
		id := kernel.NewUUID()
		sender := kernel.NewUUID()

		p, err := parcel.RestoreParcel(
			id, sender, "books", parcel.Large, 1200,
			validWaypoint(t, "a"), validWaypoint(t, "b"), nil,
			parcel.BidSelected, &deadline, &courier, nil, 3,
		)

		require.NoError(t, err)
		assert.Equal(t, parcel.BidSelected, p.Status())
		assert.Equal(t, 3, p.Version())
		require.NotNil(t, p.SelectedCourier())
		assert.True(t, p.SelectedCourier().IsEqual(courier))
	})

	t.Run("rejects courier on un-selected parcel", func(t *testing.T) {
		_, err := parcel.RestoreParcel(
			kernel.NewUUID(), kernel.NewUUID(), "books", parcel.Large, 1200,
			validWaypoint(t, "a"), validWaypoint(t, "b"), nil,
			parcel.OpenForBids, &deadline, &courier, nil, 1,
		)

		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects selected status without courier", func(t *testing.T) {
		_, err := parcel.RestoreParcel(
			kernel.NewUUID(), kernel.NewUUID(), "books", parcel.Large, 1200,
			validWaypoint(t, "a"), validWaypoint(t, "b"), nil,
			parcel.BidSelected, &deadline, nil, nil, 1,
		)

		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := parcel.RestoreParcel(
			kernel.NewUUID(), kernel.NewUUID(), "books", parcel.Large, 1200,
			validWaypoint(t, "a"), validWaypoint(t, "b"), nil,
			parcel.Status(77), nil, nil, nil, 1,
		)

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}
