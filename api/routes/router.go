package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sreedhargoud/camrental-backend/api/controllers"
	"github.com/sreedhargoud/camrental-backend/api/middleware"
	"github.com/sreedhargoud/camrental-backend/internal/analytics"
	"github.com/sreedhargoud/camrental-backend/internal/availability"
	"github.com/sreedhargoud/camrental-backend/internal/blocks"
	"github.com/sreedhargoud/camrental-backend/internal/booking"
	"github.com/sreedhargoud/camrental-backend/internal/cameras"
	"github.com/sreedhargoud/camrental-backend/internal/orders"
	"github.com/sreedhargoud/camrental-backend/internal/payments"
	"github.com/sreedhargoud/camrental-backend/pkg/auth"
	"github.com/sreedhargoud/camrental-backend/pkg/config"
	"github.com/sreedhargoud/camrental-backend/pkg/db"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
	"github.com/sreedhargoud/camrental-backend/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        db.Pinger
	Redis     redis.Pinger
	IdemStore redis.IdempotencyStore
	Registry  *prometheus.Registry
	Cameras   cameras.Service
	Avail     availability.Service
	Blocks    blocks.Service
	Orders    orders.Service
	OrderRepo orders.Repository
	Analytics analytics.Service
	Gateway   payments.Gateway
	Guard     *payments.IdempotencyGuard
	Finalizer booking.Finalizer
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.Health(deps.DB, deps.Redis, logg))
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cameras", func(r chi.Router) {
			r.Get("/", controllers.ListCameras(deps.Cameras, logg))
			r.Get("/{slug}", controllers.GetCamera(deps.Cameras, logg))
			r.Get("/{slug}/availability", controllers.CheckAvailability(deps.Cameras, deps.Avail, logg))
			r.Get("/{slug}/calendar", controllers.AvailabilityCalendar(deps.Cameras, deps.Avail, logg))
			r.Get("/{slug}/blocked-dates", controllers.ListCameraBlockedDates(deps.Cameras, deps.Blocks, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(
				middleware.Auth(cfg.JWT, logg),
				middleware.Idempotency(deps.IdemStore, logg),
			)

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.CreateOrder(deps.Orders, logg))
				r.Get("/", controllers.ListMyOrders(deps.Orders, logg))
				r.Get("/{id}", controllers.GetMyOrder(deps.Orders, logg))
				r.Post("/{id}/cancel", controllers.CancelMyOrder(deps.Orders, logg))
			})

			r.Route("/payments/razorpay", func(r chi.Router) {
				r.Post("/order", controllers.CreateGatewayOrder(deps.Orders, deps.OrderRepo, deps.Gateway, cfg.Razorpay.KeyID, logg))
				r.Post("/verify", controllers.VerifyPayment(deps.OrderRepo, deps.Gateway, deps.Guard, deps.Finalizer, logg))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(
				middleware.Auth(cfg.JWT, logg),
				middleware.RequireRole(auth.RoleAdmin, logg),
				middleware.Idempotency(deps.IdemStore, logg),
			)

			r.Route("/cameras", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateCamera(deps.Cameras, logg))
				r.Put("/{id}", controllers.AdminUpdateCamera(deps.Cameras, logg))
				r.Delete("/{id}", controllers.AdminDeleteCamera(deps.Cameras, logg))
			})

			r.Route("/blocked-dates", func(r chi.Router) {
				r.Get("/", controllers.AdminListBlockedDates(deps.Blocks, logg))
				r.Post("/", controllers.AdminCreateBlockedDate(deps.Blocks, logg))
				r.Delete("/{id}", controllers.AdminDeleteBlockedDate(deps.Blocks, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(deps.Orders, logg))
				r.Post("/{id}/complete", controllers.AdminCompleteOrder(deps.Orders, logg))
				r.Post("/{id}/cancel", controllers.AdminCancelOrder(deps.Orders, logg))
			})

			r.Route("/stats", func(r chi.Router) {
				r.Get("/dashboard", controllers.AdminDashboard(deps.Analytics, logg))
				r.Get("/monthly-income", controllers.AdminMonthlyIncome(deps.Analytics, logg))
				r.Get("/popular-cameras", controllers.AdminPopularCameras(deps.Analytics, logg))
			})
		})
	})

	return r
}
