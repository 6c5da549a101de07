package queries_test

import (
	"testing"

	"parcelmatch/internal/core/application/usecases/queries"
	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetParcelBidsQuery_ValidInput(t *testing.T) {
	parcelID := kernel.NewUUID()
	q, err := queries.NewGetParcelBidsQuery(parcelID)
	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.Equal(t, parcelID, q.ParcelID())
}

func TestNewGetParcelBidsQuery_InvalidParcelID(t *testing.T) {
	_, err := queries.NewGetParcelBidsQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetParcelBidsQuery_Validate_NotConstructed(t *testing.T) {
	var q queries.GetParcelBidsQuery
	require.ErrorIs(t, q.Validate(), queries.ErrGetParcelBidsQueryIsNotConstructed)
}

func TestNewGetUserParcelsQuery_ValidInput(t *testing.T) {
	senderID := kernel.NewUUID()
	q, err := queries.NewGetUserParcelsQuery(senderID)
	require.NoError(t, err)
	assert.Equal(t, senderID, q.SenderID())
}

func TestNewGetNotificationsQuery_InvalidUserID(t *testing.T) {
	_, err := queries.NewGetNotificationsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewGetUnreadCountQuery_ValidInput(t *testing.T) {
	userID := kernel.NewUUID()
	q, err := queries.NewGetUnreadCountQuery(userID)
	require.NoError(t, err)
	assert.Equal(t, userID, q.UserID())
}

func TestNewGetVerificationProfileQuery_ValidInput(t *testing.T) {
	userID := kernel.NewUUID()
	q, err := queries.NewGetVerificationProfileQuery(userID)
	require.NoError(t, err)
	assert.Equal(t, userID, q.UserID())
}
