package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sreedhargoud/camrental-backend/api/responses"
	"github.com/sreedhargoud/camrental-backend/api/validators"
	availsvc "github.com/sreedhargoud/camrental-backend/internal/availability"
	camerasvc "github.com/sreedhargoud/camrental-backend/internal/cameras"
	"github.com/sreedhargoud/camrental-backend/pkg/enums"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

func availabilityRequestFromQuery(r *http.Request) (availsvc.Request, error) {
	rentalType, err := enums.ParseRentalType(strings.TrimSpace(r.URL.Query().Get("rentalType")))
	if err != nil {
		return availsvc.Request{}, apperrors.Wrap(apperrors.CodeValidation, err, "invalid rental type")
	}

	req := availsvc.Request{RentalType: rentalType}
	switch rentalType {
	case enums.RentalTypeHalfDay:
		slot, err := enums.ParseTimeSlot(strings.TrimSpace(r.URL.Query().Get("timeSlot")))
		if err != nil {
			return availsvc.Request{}, apperrors.Wrap(apperrors.CodeValidation, err, "invalid time slot")
		}
		req.TimeSlot = &slot
	case enums.RentalTypeFullDay:
		fullDayType, err := enums.ParseFullDayType(strings.TrimSpace(r.URL.Query().Get("fullDayType")))
		if err != nil {
			return availsvc.Request{}, apperrors.Wrap(apperrors.CodeValidation, err, "invalid full-day type")
		}
		req.FullDayType = &fullDayType
	}
	return req, nil
}

// CheckAvailability answers whether a camera can be booked for a window.
func CheckAvailability(cameras camerasvc.Service, avail availsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		camera, err := cameras.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start, err := validators.ParseQueryDate(r, "start", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.ParseQueryDate(r, "end", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if end.IsZero() {
			end = start
		}

		req, err := availabilityRequestFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := avail.Check(r.Context(), camera.ID, start, end, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AvailabilityCalendar returns per-day availability for a camera.
func AvailabilityCalendar(cameras camerasvc.Service, avail availsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		camera, err := cameras.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		from, err := validators.ParseQueryDate(r, "from", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req, err := availabilityRequestFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		days, err := avail.Calendar(r.Context(), camera.ID, from, to, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, days)
	}
}
