package blocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sreedhargoud/camrental-backend/pkg/db/models"
)

// Repository persists admin-owned blocked dates.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, block *models.BlockedDate) (*models.BlockedDate, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.BlockedDate, error)
	ListForCamera(ctx context.Context, cameraID uuid.UUID) ([]models.BlockedDate, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]models.BlockedDate, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a blocked-dates repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, block *models.BlockedDate) (*models.BlockedDate, error) {
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		return nil, err
	}
	return block, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.BlockedDate{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.BlockedDate, error) {
	var block models.BlockedDate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&block).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *repository) ListForCamera(ctx context.Context, cameraID uuid.UUID) ([]models.BlockedDate, error) {
	var out []models.BlockedDate
	err := r.db.WithContext(ctx).
		Where("camera_id = ?", cameraID).
		Order("start_date ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) ListUpcoming(ctx context.Context, from time.Time) ([]models.BlockedDate, error) {
	var out []models.BlockedDate
	err := r.db.WithContext(ctx).
		Where("end_date >= ?", from).
		Order("start_date ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
