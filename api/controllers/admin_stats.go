package controllers

import (
	"net/http"

	"github.com/sreedhargoud/camrental-backend/api/responses"
	"github.com/sreedhargoud/camrental-backend/api/validators"
	analyticsvc "github.com/sreedhargoud/camrental-backend/internal/analytics"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

// AdminDashboard returns the headline stats row.
func AdminDashboard(svc analyticsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// AdminMonthlyIncome returns revenue per month, newest first.
func AdminMonthlyIncome(svc analyticsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		months, err := validators.ParseQueryInt(r, "months", 12, 1, 60)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		incomes, err := svc.MonthlyIncomes(r.Context(), months)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, incomes)
	}
}

// AdminPopularCameras ranks cameras by paid bookings.
func AdminPopularCameras(svc analyticsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 10, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		popular, err := svc.PopularCameras(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, popular)
	}
}
