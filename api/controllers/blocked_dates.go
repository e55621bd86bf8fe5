package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sreedhargoud/camrental-backend/api/responses"
	"github.com/sreedhargoud/camrental-backend/api/validators"
	blocksvc "github.com/sreedhargoud/camrental-backend/internal/blocks"
	camerasvc "github.com/sreedhargoud/camrental-backend/internal/cameras"
	"github.com/sreedhargoud/camrental-backend/pkg/enums"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

type createBlockedDateRequest struct {
	CameraID  uuid.UUID `json:"cameraId" validate:"required"`
	StartDate string    `json:"startDate" validate:"required"`
	EndDate   string    `json:"endDate" validate:"required"`
	Reason    *string   `json:"reason,omitempty"`
	IsFullDay bool      `json:"isFullDay"`
	TimeSlot  *string   `json:"timeSlot,omitempty"`
}

func (p createBlockedDateRequest) toInput() (blocksvc.CreateInput, error) {
	start, err := time.ParseInLocation("2006-01-02", p.StartDate, time.UTC)
	if err != nil {
		return blocksvc.CreateInput{}, apperrors.Wrap(apperrors.CodeValidation, err, "invalid start date")
	}
	end, err := time.ParseInLocation("2006-01-02", p.EndDate, time.UTC)
	if err != nil {
		return blocksvc.CreateInput{}, apperrors.Wrap(apperrors.CodeValidation, err, "invalid end date")
	}

	input := blocksvc.CreateInput{
		CameraID:  p.CameraID,
		StartDate: start,
		EndDate:   end,
		Reason:    p.Reason,
		IsFullDay: p.IsFullDay,
	}
	if p.TimeSlot != nil {
		slot, err := enums.ParseTimeSlot(*p.TimeSlot)
		if err != nil {
			return blocksvc.CreateInput{}, apperrors.Wrap(apperrors.CodeValidation, err, "invalid time slot")
		}
		input.TimeSlot = &slot
	}
	return input, nil
}

// ListCameraBlockedDates is the public per-camera block list the
// storefront calendar renders from.
func ListCameraBlockedDates(cameras camerasvc.Service, svc blocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		camera, err := cameras.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		blocks, err := svc.ListForCamera(r.Context(), camera.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, blocks)
	}
}

// AdminCreateBlockedDate blocks dates on a camera.
func AdminCreateBlockedDate(svc blocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBlockedDateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		block, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, block)
	}
}

// AdminDeleteBlockedDate releases an admin block.
func AdminDeleteBlockedDate(svc blocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, apperrors.Wrap(apperrors.CodeValidation, err, "invalid blocked date id"))
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminListBlockedDates lists blocks, optionally per camera.
func AdminListBlockedDates(svc blocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if raw := r.URL.Query().Get("cameraId"); raw != "" {
			cameraID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, apperrors.Wrap(apperrors.CodeValidation, err, "invalid camera id"))
				return
			}
			blocks, err := svc.ListForCamera(r.Context(), cameraID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, blocks)
			return
		}

		blocks, err := svc.ListUpcoming(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, blocks)
	}
}
