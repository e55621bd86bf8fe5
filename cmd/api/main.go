package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sreedhargoud/camrental-backend/api/routes"
	"github.com/sreedhargoud/camrental-backend/internal/analytics"
	"github.com/sreedhargoud/camrental-backend/internal/availability"
	"github.com/sreedhargoud/camrental-backend/internal/blocks"
	"github.com/sreedhargoud/camrental-backend/internal/booking"
	"github.com/sreedhargoud/camrental-backend/internal/cameras"
	"github.com/sreedhargoud/camrental-backend/internal/notifications"
	"github.com/sreedhargoud/camrental-backend/internal/orders"
	"github.com/sreedhargoud/camrental-backend/internal/payments"
	"github.com/sreedhargoud/camrental-backend/pkg/config"
	"github.com/sreedhargoud/camrental-backend/pkg/db"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
	"github.com/sreedhargoud/camrental-backend/pkg/metrics"
	"github.com/sreedhargoud/camrental-backend/pkg/migrate"
	"github.com/sreedhargoud/camrental-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	cameraRepo := cameras.NewRepository(dbClient.DB())
	cameraService := cameras.NewService(cameraRepo, logg)

	availService := availability.NewService(availability.NewRepository(dbClient.DB()), logg)
	blockService := blocks.NewService(blocks.NewRepository(dbClient.DB()), logg)

	orderRepo := orders.NewRepository(dbClient.DB())
	orderService := orders.NewService(orderRepo, cameraService, availService, dbClient, logg)

	gateway := payments.NewRazorpayGateway(cfg.Razorpay, logg)
	guard, err := payments.NewIdempotencyGuard(redisClient, cfg.Razorpay.WebhookTTL, "razorpay")
	if err != nil {
		logg.Error(context.Background(), "failed to create idempotency guard", err)
		os.Exit(1)
	}

	notifier := notifications.NewWhatsAppSender(cfg.WhatsApp, logg)
	finalizer := booking.NewFinalizer(orderRepo, availService, dbClient, notifier, bookingMetrics, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			IdemStore: redisClient,
			Registry:  registry,
			Cameras:   cameraService,
			Avail:     availService,
			Blocks:    blockService,
			Orders:    orderService,
			OrderRepo: orderRepo,
			Analytics: analytics.NewService(dbClient.DB()),
			Gateway:   gateway,
			Guard:     guard,
			Finalizer: finalizer,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithFields(ctx, map[string]any{"signal": sig.String()}), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
