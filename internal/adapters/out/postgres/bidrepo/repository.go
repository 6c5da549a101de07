package bidrepo

import (
	"context"
	"errors"

	"parcelmatch/internal/core/domain/model/bid"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormBidRepository implements BidRepository using GORM.
type GormBidRepository struct {
	db *gorm.DB
}

// NewGormBidRepository creates a new GORM bid repository.
func NewGormBidRepository(db *gorm.DB) *GormBidRepository {
	return &GormBidRepository{db: db}
}

// Add saves a new bid to the database.
func (r *GormBidRepository) Add(ctx context.Context, aggregate *bid.Bid) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("bid", aggregate.ID().String(), "already exists", err)
		}
		return err
	}

	return nil
}

// Update saves an existing bid guarded on its loaded version.
func (r *GormBidRepository) Update(ctx context.Context, aggregate *bid.Bid) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&BidDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("bid", aggregate.ID().String(),
			"stale version, reload and retry")
	}

	return nil
}

// Get retrieves a bid by id.
func (r *GormBidRepository) Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BidDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("bid", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForParcel retrieves every bid on a parcel, any status.
func (r *GormBidRepository) GetAllForParcel(ctx context.Context, parcelID kernel.UUID) ([]*bid.Bid, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BidDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "parcel_id = ?", parcelID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	bids := make([]*bid.Bid, 0, len(dtos))
	for _, dto := range dtos {
		b, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		bids = append(bids, b)
	}

	return bids, nil
}

// GetPendingForCourier retrieves the courier's pending bid on the parcel.
func (r *GormBidRepository) GetPendingForCourier(ctx context.Context, parcelID, courierID kernel.UUID) (*bid.Bid, error) {
	if err := errors.Join(parcelID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}

	var dto BidDTO
	err := r.db.WithContext(ctx).
		First(&dto, "parcel_id = ? AND courier_id = ? AND status = ?",
			parcelID.Bytes(), courierID.Bytes(), bid.Pending.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("bid", courierID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// isUniqueViolation reports whether the error is a Postgres unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
