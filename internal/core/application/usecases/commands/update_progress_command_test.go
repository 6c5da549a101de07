package commands_test

import (
	"testing"

	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateProgressCommand_ValidStages(t *testing.T) {
	for _, stage := range []parcel.Status{parcel.PendingPickup, parcel.InTransit, parcel.Failed} {
		cmd, err := commands.NewUpdateProgressCommand(kernel.NewUUID(), kernel.NewUUID(), stage, nil)
		require.NoError(t, err, stage.String())
		assert.Equal(t, stage, cmd.Stage())
		assert.Nil(t, cmd.ProofID())
	}
}

func TestNewUpdateProgressCommand_DeliveredRequiresProof(t *testing.T) {
	_, err := commands.NewUpdateProgressCommand(kernel.NewUUID(), kernel.NewUUID(), parcel.Delivered, nil)
	require.ErrorIs(t, err, commands.ErrProofIsRequired)

	proofID := kernel.NewUUID()
	cmd, err := commands.NewUpdateProgressCommand(kernel.NewUUID(), kernel.NewUUID(), parcel.Delivered, &proofID)
	require.NoError(t, err)
	require.NotNil(t, cmd.ProofID())
	assert.True(t, cmd.ProofID().IsEqual(proofID))
}

func TestNewUpdateProgressCommand_ProofOnlyForDelivered(t *testing.T) {
	proofID := kernel.NewUUID()
	_, err := commands.NewUpdateProgressCommand(kernel.NewUUID(), kernel.NewUUID(), parcel.InTransit, &proofID)
	require.ErrorIs(t, err, commands.ErrProofIsNotPermitted)
}

func TestNewUpdateProgressCommand_NonProgressStage(t *testing.T) {
	for _, stage := range []parcel.Status{parcel.New, parcel.OpenForBids, parcel.BidSelected, parcel.Canceled} {
		_, err := commands.NewUpdateProgressCommand(kernel.NewUUID(), kernel.NewUUID(), stage, nil)
		require.ErrorIs(t, err, commands.ErrStageIsNotProgress, stage.String())
	}
}
