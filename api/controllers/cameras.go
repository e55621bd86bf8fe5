package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sreedhargoud/camrental-backend/api/responses"
	"github.com/sreedhargoud/camrental-backend/api/validators"
	camerasvc "github.com/sreedhargoud/camrental-backend/internal/cameras"
	"github.com/sreedhargoud/camrental-backend/pkg/db/models"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

// ListCameras is the public catalog listing.
func ListCameras(svc camerasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := camerasvc.ListFilter{
			Category:      strings.TrimSpace(r.URL.Query().Get("category")),
			OnlyAvailable: r.URL.Query().Get("all") == "",
		}
		cameras, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cameras)
	}
}

// GetCamera fetches a single catalog item by slug.
func GetCamera(svc camerasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		camera, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, camera)
	}
}

type cameraRequest struct {
	Slug              string   `json:"slug" validate:"required"`
	Name              string   `json:"name" validate:"required"`
	Brand             string   `json:"brand"`
	Category          string   `json:"category"`
	Description       string   `json:"description"`
	ImageURL          string   `json:"imageUrl"`
	Available         bool     `json:"available"`
	IsNew             bool     `json:"isNew"`
	Specs             []string `json:"specs"`
	Included          []string `json:"included"`
	PriceHalfDay      int64    `json:"priceHalfDay" validate:"gte=0"`
	PriceFullDay9Hrs  int64    `json:"priceFullDay9hrs" validate:"gte=0"`
	PriceFullDay24Hrs int64    `json:"priceFullDay24hrs" validate:"gte=0"`
}

func (p cameraRequest) toModel() *models.Camera {
	return &models.Camera{
		Slug:              p.Slug,
		Name:              p.Name,
		Brand:             p.Brand,
		Category:          p.Category,
		Description:       p.Description,
		ImageURL:          p.ImageURL,
		Available:         p.Available,
		IsNew:             p.IsNew,
		Specs:             pq.StringArray(p.Specs),
		Included:          pq.StringArray(p.Included),
		PriceHalfDay:      p.PriceHalfDay,
		PriceFullDay9Hrs:  p.PriceFullDay9Hrs,
		PriceFullDay24Hrs: p.PriceFullDay24Hrs,
	}
}

// AdminCreateCamera adds a catalog item.
func AdminCreateCamera(svc camerasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cameraRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		camera, err := svc.Create(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, camera)
	}
}

// AdminUpdateCamera replaces a catalog item.
func AdminUpdateCamera(svc camerasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, apperrors.Wrap(apperrors.CodeValidation, err, "invalid camera id"))
			return
		}

		var payload cameraRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		camera := payload.toModel()
		camera.ID = id
		updated, err := svc.Update(r.Context(), camera)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// AdminDeleteCamera removes a catalog item.
func AdminDeleteCamera(svc camerasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, apperrors.Wrap(apperrors.CodeValidation, err, "invalid camera id"))
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
