// Package parcelrepo provides data transfer objects and mapping functions
// for parcel persistence. Implements the repository pattern for the parcel
// aggregate, converting between domain entities and database rows.
package parcelrepo

import (
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. The version column is the optimistic concurrency token: a
// successful write always stores the loaded version plus one, and updates
// are guarded on the loaded version.
type ParcelDTO struct {
	ID                  uuid.UUID   `gorm:"type:uuid;primaryKey"`
	SenderID            uuid.UUID   `gorm:"type:uuid;index"`
	Description         string      `gorm:"type:text"`
	Size                string      `gorm:"type:varchar(16)"`
	WeightGrams         int         `gorm:""`
	Pickup              WaypointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff             WaypointDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	SuggestedPriceCents *int64      `gorm:""`
	Status              string      `gorm:"type:varchar(16);index"`
	BiddingDeadline     *time.Time  `gorm:"index"`
	SelectedCourierID   *uuid.UUID  `gorm:"type:uuid;index"`
	ProofOfDeliveryID   *uuid.UUID  `gorm:"type:uuid"`
	Version             int         `gorm:""`
	CreatedAt           time.Time   `gorm:"index"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// WaypointDTO represents an embedded pickup or dropoff point within the
// parcel table.
type WaypointDTO struct {
	Address      string `gorm:"type:text"`
	ContactName  string `gorm:"type:text"`
	ContactPhone string `gorm:"type:text"`
}

// fromDomain converts a parcel aggregate to its database representation.
// The stored version is bumped here so every successful write advances the
// concurrency token.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	var suggestedCents *int64
	if price := aggregate.SuggestedPrice(); price != nil {
		cents := price.Cents()
		suggestedCents = &cents
	}

	var selectedCourierID *uuid.UUID
	if id := aggregate.SelectedCourier(); id != nil {
		raw := id.Bytes()
		selectedCourierID = &raw
	}

	var proofID *uuid.UUID
	if id := aggregate.ProofOfDelivery(); id != nil {
		raw := id.Bytes()
		proofID = &raw
	}

	return ParcelDTO{
		ID:          aggregate.ID().Bytes(),
		SenderID:    aggregate.Sender().Bytes(),
		Description: aggregate.Description(),
		Size:        aggregate.Size().String(),
		WeightGrams: aggregate.WeightGrams(),
		Pickup: WaypointDTO{
			Address:      aggregate.Pickup().Address(),
			ContactName:  aggregate.Pickup().ContactName(),
			ContactPhone: aggregate.Pickup().ContactPhone(),
		},
		Dropoff: WaypointDTO{
			Address:      aggregate.Dropoff().Address(),
			ContactName:  aggregate.Dropoff().ContactName(),
			ContactPhone: aggregate.Dropoff().ContactPhone(),
		},
		SuggestedPriceCents: suggestedCents,
		Status:              aggregate.Status().String(),
		BiddingDeadline:     aggregate.BiddingDeadline(),
		SelectedCourierID:   selectedCourierID,
		ProofOfDeliveryID:   proofID,
		Version:             aggregate.Version() + 1,
	}
}

// toDomain converts a database row to a parcel aggregate using RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	size, err := parcel.SizeClassFromString(dto.Size)
	if err != nil {
		return nil, err
	}
	status, err := parcel.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := parcel.NewWaypoint(dto.Pickup.Address, dto.Pickup.ContactName, dto.Pickup.ContactPhone)
	if err != nil {
		return nil, err
	}
	dropoff, err := parcel.NewWaypoint(dto.Dropoff.Address, dto.Dropoff.ContactName, dto.Dropoff.ContactPhone)
	if err != nil {
		return nil, err
	}

	var suggestedPrice *kernel.Price
	if dto.SuggestedPriceCents != nil {
		price, priceErr := kernel.NewPrice(*dto.SuggestedPriceCents)
		if priceErr != nil {
			return nil, priceErr
		}
		suggestedPrice = &price
	}

	var selectedCourierID *kernel.UUID
	if dto.SelectedCourierID != nil {
		courierID, idErr := kernel.UUIDFromBytes((*dto.SelectedCourierID)[:])
		if idErr != nil {
			return nil, idErr
		}
		selectedCourierID = &courierID
	}

	var proofID *kernel.UUID
	if dto.ProofOfDeliveryID != nil {
		proofUUID, idErr := kernel.UUIDFromBytes((*dto.ProofOfDeliveryID)[:])
		if idErr != nil {
			return nil, idErr
		}
		proofID = &proofUUID
	}

	return parcel.RestoreParcel(
		id,
		senderID,
		dto.Description,
		size,
		dto.WeightGrams,
		pickup,
		dropoff,
		suggestedPrice,
		status,
		dto.BiddingDeadline,
		selectedCourierID,
		proofID,
		dto.Version,
	)
}
