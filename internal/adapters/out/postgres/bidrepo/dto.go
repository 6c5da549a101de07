// Package bidrepo provides data transfer objects and mapping functions for
// bid persistence. Implements the repository pattern for the bid aggregate.
package bidrepo

import (
	"time"

	"parcelmatch/internal/core/domain/model/bid"
	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BidDTO represents the database structure for persisting bid aggregates.
// Versioned the same way as parcels: writes store loaded version plus one,
// updates are guarded on the loaded version.
type BidDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParcelID       uuid.UUID  `gorm:"type:uuid;index:idx_bids_parcel"`
	CourierID      uuid.UUID  `gorm:"type:uuid;index"`
	PriceCents     int64      `gorm:""`
	EstimatedHours *int       `gorm:""`
	Message        string     `gorm:"type:text"`
	Status         string     `gorm:"type:varchar(16);index:idx_bids_parcel"`
	CreatedAt      time.Time  `gorm:""`
	SelectedAt     *time.Time `gorm:""`
	Version        int        `gorm:""`
}

// TableName specifies the database table name for bid entities.
func (BidDTO) TableName() string {
	return "bids"
}

// fromDomain converts a bid aggregate to its database representation.
func fromDomain(aggregate *bid.Bid) BidDTO {
	return BidDTO{
		ID:             aggregate.ID().Bytes(),
		ParcelID:       aggregate.Parcel().Bytes(),
		CourierID:      aggregate.Courier().Bytes(),
		PriceCents:     aggregate.Price().Cents(),
		EstimatedHours: aggregate.EstimatedHours(),
		Message:        aggregate.Message(),
		Status:         aggregate.Status().String(),
		CreatedAt:      aggregate.CreatedAt(),
		SelectedAt:     aggregate.SelectedAt(),
		Version:        aggregate.Version() + 1,
	}
}

// toDomain converts a database row to a bid aggregate using RestoreBid.
func toDomain(dto BidDTO) (*bid.Bid, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewPrice(dto.PriceCents)
	if err != nil {
		return nil, err
	}
	status, err := bid.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return bid.RestoreBid(
		id,
		parcelID,
		courierID,
		price,
		dto.EstimatedHours,
		dto.Message,
		status,
		dto.CreatedAt,
		dto.SelectedAt,
		dto.Version,
	)
}
