package blocks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sreedhargoud/camrental-backend/pkg/db/models"
	"github.com/sreedhargoud/camrental-backend/pkg/enums"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

// CreateInput captures an admin request to block dates on a camera.
type CreateInput struct {
	CameraID  uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Reason    *string
	IsFullDay bool
	TimeSlot  *enums.TimeSlot
}

// Service manages admin blocked dates.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.BlockedDate, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.BlockedDate, error)
	ListForCamera(ctx context.Context, cameraID uuid.UUID) ([]models.BlockedDate, error)
	ListUpcoming(ctx context.Context) ([]models.BlockedDate, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds the blocked-dates service.
func NewService(repo Repository, logg *logger.Logger) Service {
	return &service{repo: repo, logg: logg, now: time.Now}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.BlockedDate, error) {
	if input.CameraID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "camera id is required")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, apperrors.New(apperrors.CodeValidation, "start and end dates are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, apperrors.New(apperrors.CodeValidation, "end date must not precede start date")
	}
	if !input.IsFullDay {
		if input.TimeSlot == nil || !input.TimeSlot.IsValid() {
			return nil, apperrors.New(apperrors.CodeValidation, "half-day blocks require a valid time slot")
		}
	} else if input.TimeSlot != nil {
		return nil, apperrors.New(apperrors.CodeValidation, "full-day blocks must not carry a time slot")
	}

	block := &models.BlockedDate{
		ID:        uuid.New(),
		CameraID:  input.CameraID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Reason:    input.Reason,
		IsFullDay: input.IsFullDay,
		TimeSlot:  input.TimeSlot,
	}
	created, err := s.repo.Create(ctx, block)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "creating blocked date")
	}

	ctx = s.logg.WithCameraID(ctx, input.CameraID.String())
	s.logg.Info(ctx, "blocked date created")
	return created, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "deleting blocked date")
	}
	if affected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "blocked date not found")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.BlockedDate, error) {
	block, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "blocked date not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading blocked date")
	}
	return block, nil
}

func (s *service) ListForCamera(ctx context.Context, cameraID uuid.UUID) ([]models.BlockedDate, error) {
	out, err := s.repo.ListForCamera(ctx, cameraID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing blocked dates")
	}
	return out, nil
}

func (s *service) ListUpcoming(ctx context.Context) ([]models.BlockedDate, error) {
	out, err := s.repo.ListUpcoming(ctx, s.now())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing blocked dates")
	}
	return out, nil
}
