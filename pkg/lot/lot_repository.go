package lot

import (
	"Larder-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

// LotQuery is re-evaluated on every call; there is no cursor to invalidate.
// An unset field leaves that dimension unfiltered. Lots without an expiry
// date never match Expired or ExpiringWithinDays.
type LotQuery struct {
	ProductID          string
	ContainerID        string
	Expired            bool
	ExpiringWithinDays int
	Opened             *bool
}

type (
	LotRepository interface {
		CreateLot(ctx context.Context, lot *entities.Lot) error
		GetLotByID(ctx context.Context, id string) (*entities.Lot, error)
		UpdateLot(ctx context.Context, lot *entities.Lot) error
		DeleteLot(ctx context.Context, id string) error
		QueryLots(ctx context.Context, query LotQuery) ([]*entities.Lot, error)
		CountLots(ctx context.Context, query LotQuery) (int64, error)
		MoveLots(ctx context.Context, productID, containerID, targetContainerID string) (int64, error)
	}

	lotRepository struct {
		db *gorm.DB
	}
)

func NewLotRepository(db *gorm.DB) LotRepository {
	return &lotRepository{db: db}
}

func (r *lotRepository) CreateLot(ctx context.Context, lot *entities.Lot) error {
	return r.db.WithContext(ctx).Create(lot).Error
}

func (r *lotRepository) GetLotByID(ctx context.Context, id string) (*entities.Lot, error) {
	var lot entities.Lot
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&lot).Error; err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *lotRepository) UpdateLot(ctx context.Context, lot *entities.Lot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

func (r *lotRepository) DeleteLot(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Lot{}).Error
}

func (r *lotRepository) QueryLots(ctx context.Context, query LotQuery) ([]*entities.Lot, error) {
	var lots []*entities.Lot
	if err := r.applyQuery(ctx, query).
		Order("acquired_at asc").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

func (r *lotRepository) CountLots(ctx context.Context, query LotQuery) (int64, error) {
	var count int64
	if err := r.applyQuery(ctx, query).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *lotRepository) MoveLots(ctx context.Context, productID, containerID, targetContainerID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entities.Lot{}).
		Where("product_id = ? AND container_id = ?", productID, containerID).
		Update("container_id", targetContainerID)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *lotRepository) applyQuery(ctx context.Context, query LotQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&entities.Lot{})

	if query.ProductID != "" {
		db = db.Where("product_id = ?", query.ProductID)
	}

	if query.ContainerID != "" {
		db = db.Where("container_id = ?", query.ContainerID)
	}

	now := time.Now().UTC()

	if query.Expired {
		db = db.Where("expires_at IS NOT NULL AND expires_at < ?", now)
	}

	if query.ExpiringWithinDays > 0 {
		until := now.AddDate(0, 0, query.ExpiringWithinDays)
		db = db.Where("expires_at IS NOT NULL AND expires_at >= ? AND expires_at <= ?", now, until)
	}

	if query.Opened != nil {
		db = db.Where("opened = ?", *query.Opened)
	}

	return db
}
