package commands

import (
	"errors"
	"fmt"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/parcel"
	"parcelmatch/internal/pkg/guard"
)

var (
	ErrUpdateProgressCommandIsNotConstructed = errors.New(
		"UpdateProgressCommand must be created via NewUpdateProgressCommand constructor",
	)
	ErrStageIsNotProgress  = errors.New("stage must be pending_pickup, in_transit, delivered or failed")
	ErrProofIsRequired     = errors.New("proof of delivery is required for the delivered stage")
	ErrProofIsNotPermitted = errors.New("proof of delivery is only accepted for the delivered stage")
)

// UpdateProgressCommand represents the selected courier advancing a parcel
// through the post-selection stages of its lifecycle.
type UpdateProgressCommand struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	courierID kernel.UUID
	stage     parcel.Status
	proofID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateProgressCommand creates a command to report delivery progress.
// Valid stages are PendingPickup, InTransit, Delivered and Failed; the
// Delivered stage requires a proof-of-delivery reference and the others
// forbid one.
func NewUpdateProgressCommand(
	parcelID kernel.UUID,
	courierID kernel.UUID,
	stage parcel.Status,
	proofID *kernel.UUID,
) (UpdateProgressCommand, error) {
	cmd := UpdateProgressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setCourierID(courierID),
		cmd.setStage(stage),
	); err != nil {
		return UpdateProgressCommand{}, err
	}

	// The proof rule depends on the stage, so it runs after the joined
	// setters.
	if err := cmd.setProof(proofID); err != nil {
		return UpdateProgressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateProgressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProgressCommandIsNotConstructed)
}

// ParcelID returns the parcel being advanced.
func (c UpdateProgressCommand) ParcelID() kernel.UUID { return c.parcelID }

// CourierID returns the acting courier's identifier.
func (c UpdateProgressCommand) CourierID() kernel.UUID { return c.courierID }

// Stage returns the lifecycle stage being reported.
func (c UpdateProgressCommand) Stage() parcel.Status { return c.stage }

// ProofID returns the proof-of-delivery reference for the Delivered stage.
func (c UpdateProgressCommand) ProofID() *kernel.UUID { return c.proofID }

func (c *UpdateProgressCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.parcelID = id
	return nil
}

func (c *UpdateProgressCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *UpdateProgressCommand) setStage(stage parcel.Status) error {
	switch stage {
	case parcel.PendingPickup, parcel.InTransit, parcel.Delivered, parcel.Failed:
		c.stage = stage
		return nil
	default:
		return fmt.Errorf("%w: got %q", ErrStageIsNotProgress, stage)
	}
}

func (c *UpdateProgressCommand) setProof(proofID *kernel.UUID) error {
	if c.stage == parcel.Delivered {
		if proofID == nil {
			return ErrProofIsRequired
		}
		if err := proofID.Validate(); err != nil {
			return err
		}
		c.proofID = proofID
		return nil
	}

	if proofID != nil {
		return ErrProofIsNotPermitted
	}
	return nil
}
