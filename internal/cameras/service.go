package cameras

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sreedhargoud/camrental-backend/internal/pricing"
	"github.com/sreedhargoud/camrental-backend/pkg/db"
	"github.com/sreedhargoud/camrental-backend/pkg/db/models"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

// normalizePricing folds a legacy per-day price into the tiers when the
// tiered fields were never populated.
func normalizePricing(camera *models.Camera) {
	if camera == nil || camera.HasTieredPricing() || camera.LegacyPricePerDay == nil {
		return
	}
	table := pricing.NormalizeLegacy(*camera.LegacyPricePerDay)
	camera.PriceHalfDay = table.HalfDay
	camera.PriceFullDay9Hrs = table.FullDay9Hrs
	camera.PriceFullDay24Hrs = table.FullDay24Hrs
}

// PricingTable extracts the rate table from a normalized camera row.
func PricingTable(camera *models.Camera) pricing.Table {
	return pricing.Table{
		HalfDay:      camera.PriceHalfDay,
		FullDay9Hrs:  camera.PriceFullDay9Hrs,
		FullDay24Hrs: camera.PriceFullDay24Hrs,
	}
}

// Service exposes catalog operations.
type Service interface {
	Create(ctx context.Context, camera *models.Camera) (*models.Camera, error)
	Update(ctx context.Context, camera *models.Camera) (*models.Camera, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Camera, error)
	GetBySlug(ctx context.Context, slug string) (*models.Camera, error)
	List(ctx context.Context, filter ListFilter) ([]models.Camera, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the catalog service.
func NewService(repo Repository, logg *logger.Logger) Service {
	return &service{repo: repo, logg: logg}
}

func (s *service) Create(ctx context.Context, camera *models.Camera) (*models.Camera, error) {
	if err := s.validate(ctx, camera); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, camera)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, apperrors.New(apperrors.CodeConflict, "camera slug already exists")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "creating camera")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, camera *models.Camera) (*models.Camera, error) {
	if camera.ID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "camera id is required")
	}
	if err := s.validate(ctx, camera); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, camera)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, apperrors.New(apperrors.CodeConflict, "camera slug already exists")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating camera")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "deleting camera")
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Camera, error) {
	camera, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "camera not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading camera")
	}
	return camera, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Camera, error) {
	camera, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "camera not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading camera")
	}
	return camera, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Camera, error) {
	cameras, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing cameras")
	}
	return cameras, nil
}

func (s *service) validate(ctx context.Context, camera *models.Camera) error {
	if camera == nil {
		return apperrors.New(apperrors.CodeValidation, "camera is required")
	}
	if strings.TrimSpace(camera.Slug) == "" || strings.TrimSpace(camera.Name) == "" {
		return apperrors.New(apperrors.CodeValidation, "camera slug and name are required")
	}
	if camera.PriceHalfDay < 0 || camera.PriceFullDay9Hrs < 0 || camera.PriceFullDay24Hrs < 0 {
		return apperrors.New(apperrors.CodeValidation, "camera prices must not be negative")
	}
	if camera.LegacyPricePerDay != nil && *camera.LegacyPricePerDay < 0 {
		return apperrors.New(apperrors.CodeValidation, "camera prices must not be negative")
	}

	// Out-of-order tiers are a data quality issue, not a rejection.
	ctx = s.logg.WithCameraID(ctx, camera.Slug)
	for _, violation := range PricingTable(camera).TierOrderViolations() {
		s.logg.Warn(ctx, "camera pricing tiers out of order: "+violation)
	}
	return nil
}
