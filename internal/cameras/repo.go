package cameras

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sreedhargoud/camrental-backend/pkg/db/models"
)

// ListFilter narrows catalog listings.
type ListFilter struct {
	Category      string
	OnlyAvailable bool
}

// Repository persists the camera catalog. Rows carrying only the legacy
// per-day price are normalized into the tiered shape on the way out, so
// callers never see the legacy shape.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, camera *models.Camera) (*models.Camera, error)
	Update(ctx context.Context, camera *models.Camera) (*models.Camera, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Camera, error)
	FindBySlug(ctx context.Context, slug string) (*models.Camera, error)
	List(ctx context.Context, filter ListFilter) ([]models.Camera, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cameras repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, camera *models.Camera) (*models.Camera, error) {
	if err := r.db.WithContext(ctx).Create(camera).Error; err != nil {
		return nil, err
	}
	normalizePricing(camera)
	return camera, nil
}

func (r *repository) Update(ctx context.Context, camera *models.Camera) (*models.Camera, error) {
	if err := r.db.WithContext(ctx).Save(camera).Error; err != nil {
		return nil, err
	}
	normalizePricing(camera)
	return camera, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Camera{}, "id = ?", id).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Camera, error) {
	var camera models.Camera
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&camera).Error; err != nil {
		return nil, err
	}
	normalizePricing(&camera)
	return &camera, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.Camera, error) {
	var camera models.Camera
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&camera).Error; err != nil {
		return nil, err
	}
	normalizePricing(&camera)
	return &camera, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Camera, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.OnlyAvailable {
		q = q.Where("available = ?", true)
	}
	var cameras []models.Camera
	if err := q.Find(&cameras).Error; err != nil {
		return nil, err
	}
	for i := range cameras {
		normalizePricing(&cameras[i])
	}
	return cameras, nil
}
