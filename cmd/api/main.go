// Package main is the entry point for the hotel booking API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pkordes/hotel-booking/internal/auth"
	"github.com/pkordes/hotel-booking/internal/config"
	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/events"
	"github.com/pkordes/hotel-booking/internal/handler"
	"github.com/pkordes/hotel-booking/internal/media"
	"github.com/pkordes/hotel-booking/internal/metrics"
	"github.com/pkordes/hotel-booking/internal/middleware"
	"github.com/pkordes/hotel-booking/internal/obs"
	"github.com/pkordes/hotel-booking/internal/repo"
	"github.com/pkordes/hotel-booking/internal/service"
	"github.com/pkordes/hotel-booking/migrations"
	"github.com/pkordes/hotel-booking/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := obs.NewLogger(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		sqlDB := stdlib.OpenDBFromPool(pool)
		err := migrations.Up(context.Background(), sqlDB, logger)
		sqlDB.Close()
		if err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// --- Outbound adapters ------------------------------------------------
	var photos service.MediaStore = media.Unconfigured{}
	if cfg.S3.Endpoint != "" {
		store, err := media.NewStore(media.Config{
			Endpoint:       cfg.S3.Endpoint,
			PublicEndpoint: cfg.S3.PublicEndpoint,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			Bucket:         cfg.S3.Bucket,
			Region:         cfg.S3.Region,
			UseSSL:         cfg.S3.UseSSL,
		}, logger)
		if err != nil {
			slog.Error("failed to create media store", "error", err)
			os.Exit(1)
		}
		photos = store
	} else {
		slog.Warn("S3_ENDPOINT not set; room photo uploads will fail")
	}

	bookingOpts := []service.BookingOption{service.WithLogger(logger)}
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := events.Dial(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			slog.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		bookingOpts = append(bookingOpts, service.WithEventPublisher(publisher))
		slog.Info("booking events enabled", "topic", cfg.KafkaTopic)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, auth.DefaultTTL)

	// --- Services ---------------------------------------------------------
	rooms := repo.NewRoomRepo(pool)
	users := repo.NewUserRepo(pool)
	bookings := repo.NewBookingRepo(pool)

	userSvc := service.NewUserService(users, auth.BcryptHasher{}, tokens)
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		seedAdmin(context.Background(), userSvc, cfg.AdminEmail, cfg.AdminPassword)
	}

	srv := handler.NewServer(
		service.NewRoomService(rooms, photos),
		service.NewBookingService(repo.NewTransactor(pool), bookings, metrics.NewBookingMetrics(registry), bookingOpts...),
		userSvc,
		service.NewExportService(bookings),
		logger,
	)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID, RealIP, Logger, Recoverer, CORS, body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", metrics.Handler(registry))
	r.Get("/openapi.yaml", serveSpec)
	r.Mount("/", srv.Routes(tokens))

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// seedAdmin creates the bootstrap administrator. An existing account with the
// same email is left untouched.
func seedAdmin(ctx context.Context, users *service.UserService, email, password string) {
	_, err := users.CreateUser(ctx, domain.Registration{
		Email:    email,
		Name:     "Administrator",
		Password: password,
		Role:     domain.RoleAdmin,
	})
	switch {
	case err == nil:
		slog.Info("admin account created", "email", email)
	case errors.Is(err, domain.ErrAlreadyExists):
		slog.Info("admin account already present", "email", email)
	default:
		slog.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}
}

func serveSpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
