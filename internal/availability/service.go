package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

// Result is the outcome of an availability check.
type Result struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// DayStatus is one calendar day's availability for UI calendars.
type DayStatus struct {
	Date      time.Time `json:"date"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

// Service answers availability questions for a camera and window.
type Service interface {
	WithTx(tx *gorm.DB) Service
	Check(ctx context.Context, cameraID uuid.UUID, start, end time.Time, req Request) (Result, error)
	Calendar(ctx context.Context, cameraID uuid.UUID, from, to time.Time, req Request) ([]DayStatus, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds the availability service.
func NewService(repo Repository, logg *logger.Logger) Service {
	return &service{repo: repo, logg: logg, now: time.Now}
}

// NewServiceWithClock builds the service with a fixed clock for tests.
func NewServiceWithClock(repo Repository, logg *logger.Logger, now func() time.Time) Service {
	return &service{repo: repo, logg: logg, now: now}
}

func (s *service) WithTx(tx *gorm.DB) Service {
	if tx == nil {
		return s
	}
	return &service{repo: s.repo.WithTx(tx), logg: s.logg, now: s.now}
}

// Check reports whether the whole inclusive window is bookable for the
// request, with a display reason for the first conflicting day.
func (s *service) Check(ctx context.Context, cameraID uuid.UUID, start, end time.Time, req Request) (Result, error) {
	if start.IsZero() || end.IsZero() {
		return Result{}, apperrors.New(apperrors.CodeValidation, "start and end dates are required")
	}
	if toDate(end).Before(toDate(start)) {
		return Result{}, apperrors.New(apperrors.CodeValidation, "end date must not precede start date")
	}

	// The range query must see day-granular bounds: a stored block at
	// midnight still covers a request carrying a time-of-day.
	blocks, err := s.repo.BlocksForCameraRange(ctx, cameraID, toDate(start), toDate(end))
	if err != nil {
		return Result{}, apperrors.Wrap(apperrors.CodeInternal, err, "loading camera blocks")
	}

	now := s.now()
	for d := toDate(start); !d.After(toDate(end)); d = d.AddDate(0, 0, 1) {
		if !IsDateReserved(now, d, blocks, req) {
			continue
		}
		reason := ConflictReason(d, blocks)
		if reason == "" {
			// Past date or malformed block, nothing slot-specific to show.
			reason = "Fully reserved"
		}
		return Result{Available: false, Reason: reason}, nil
	}
	return Result{Available: true}, nil
}

// Calendar returns one status per day in [from, to] for the request.
func (s *service) Calendar(ctx context.Context, cameraID uuid.UUID, from, to time.Time, req Request) ([]DayStatus, error) {
	if from.IsZero() || to.IsZero() || toDate(to).Before(toDate(from)) {
		return nil, apperrors.New(apperrors.CodeValidation, "malformed calendar range")
	}

	blocks, err := s.repo.BlocksForCameraRange(ctx, cameraID, toDate(from), toDate(to))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading camera blocks")
	}

	now := s.now()
	var days []DayStatus
	for d := toDate(from); !d.After(toDate(to)); d = d.AddDate(0, 0, 1) {
		status := DayStatus{Date: d, Available: true}
		if IsDateReserved(now, d, blocks, req) {
			status.Available = false
			if reason := ConflictReason(d, blocks); reason != "" {
				status.Reason = reason
			} else {
				status.Reason = "Fully reserved"
			}
		}
		days = append(days, status)
	}
	return days, nil
}
