package parcelrepo

import (
	"testing"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWaypoint(t *testing.T, address string) parcel.Waypoint {
	t.Helper()
	w, err := parcel.NewWaypoint(address, "Alex Chen", "+15550100")
	require.NoError(t, err)
	return w
}

func TestParcelDTO_RoundTripPerStatus(t *testing.T) {
	courierID := kernel.NewUUID()
	proofID := kernel.NewUUID()
	deadline := time.Now().UTC().Truncate(time.Second).Add(2 * time.Hour)

	tests := []struct {
		name     string
		status   parcel.Status
		deadline *time.Time
		courier  *kernel.UUID
		proof    *kernel.UUID
	}{
		{"new", parcel.New, nil, nil, nil},
		{"open for bids", parcel.OpenForBids, &deadline, nil, nil},
		{"bid selected", parcel.BidSelected, &deadline, &courierID, nil},
		{"pending pickup", parcel.PendingPickup, &deadline, &courierID, nil},
		{"in transit", parcel.InTransit, &deadline, &courierID, nil},
		{"delivered", parcel.Delivered, &deadline, &courierID, &proofID},
		{"canceled before selection", parcel.Canceled, &deadline, nil, nil},
		{"canceled after selection", parcel.Canceled, &deadline, &courierID, nil},
		{"failed", parcel.Failed, &deadline, &courierID, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := kernel.NewPrice(2500)
			require.NoError(t, err)

			original, err := parcel.RestoreParcel(
				kernel.NewUUID(),
				kernel.NewUUID(),
				"framed print, keep flat",
				parcel.Medium,
				3000,
				testWaypoint(t, "12 Mission St"),
				testWaypoint(t, "400 Castro St"),
				&price,
				tt.status,
				tt.deadline,
				tt.courier,
				tt.proof,
				3,
			)
			require.NoError(t, err)

			restored, err := toDomain(fromDomain(original))
			require.NoError(t, err)

			assert.True(t, restored.ID().IsEqual(original.ID()))
			assert.True(t, restored.Sender().IsEqual(original.Sender()))
			assert.Equal(t, tt.status, restored.Status())
			assert.Equal(t, original.Description(), restored.Description())
			assert.Equal(t, original.Size(), restored.Size())
			assert.Equal(t, original.WeightGrams(), restored.WeightGrams())
			assert.Equal(t, original.Pickup(), restored.Pickup())
			assert.Equal(t, original.Dropoff(), restored.Dropoff())

			require.NotNil(t, restored.SuggestedPrice())
			assert.True(t, restored.SuggestedPrice().IsEqual(price))

			if tt.deadline == nil {
				assert.Nil(t, restored.BiddingDeadline())
			} else {
				require.NotNil(t, restored.BiddingDeadline())
				assert.True(t, tt.deadline.Equal(*restored.BiddingDeadline()))
			}

			if tt.courier == nil {
				assert.Nil(t, restored.SelectedCourier())
			} else {
				require.NotNil(t, restored.SelectedCourier())
				assert.True(t, restored.SelectedCourier().IsEqual(*tt.courier))
			}

			if tt.proof == nil {
				assert.Nil(t, restored.ProofOfDelivery())
			} else {
				require.NotNil(t, restored.ProofOfDelivery())
				assert.True(t, restored.ProofOfDelivery().IsEqual(*tt.proof))
			}

			// Writes advance the concurrency token, so one round trip
			// rehydrates at the stored version plus one.
			assert.Equal(t, original.Version()+1, restored.Version())
		})
	}
}

func TestParcelDTO_ToDomainRejectsInconsistentRows(t *testing.T) {
	price, err := kernel.NewPrice(2500)
	require.NoError(t, err)

	base, err := parcel.RestoreParcel(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"framed print, keep flat",
		parcel.Medium,
		3000,
		testWaypoint(t, "12 Mission St"),
		testWaypoint(t, "400 Castro St"),
		&price,
		parcel.New,
		nil,
		nil,
		nil,
		0,
	)
	require.NoError(t, err)

	t.Run("courier required", func(t *testing.T) {
		dto := fromDomain(base)
		dto.Status = parcel.Delivered.String()

		_, err := toDomain(dto)
		require.Error(t, err)
	})

	t.Run("courier forbidden", func(t *testing.T) {
		dto := fromDomain(base)
		courier := kernel.NewUUID().Bytes()
		dto.SelectedCourierID = &courier

		_, err := toDomain(dto)
		require.Error(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		dto := fromDomain(base)
		dto.Status = "lost"

		_, err := toDomain(dto)
		require.Error(t, err)
	})
}
