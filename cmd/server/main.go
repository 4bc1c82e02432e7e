package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fieldsales-backend/internal/config"
	"fieldsales-backend/internal/db"
	"fieldsales-backend/internal/handler"
	"fieldsales-backend/internal/repository"
	"fieldsales-backend/internal/server"
	"fieldsales-backend/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	customerRepo := repository.CustomerRepository{DB: pg}
	visitRepo := repository.VisitRepository{DB: pg}
	preferenceRepo := repository.PreferenceRepository{DB: pg}
	activityRepo := repository.ActivityLogRepository{DB: pg}

	// services
	authSvc := service.AuthService{Config: cfg, Users: userRepo, Logger: logger}
	snapshotSvc := service.NewSnapshotService(visitRepo, activityRepo, logger, cfg.SnapshotMaxRows, cfg.SnapshotTimeout)
	summarySvc := service.NewSummaryService(cfg.SummaryAPIURL, cfg.SummaryAPIKey, cfg.SummaryModel, cfg.SummaryTimeout)

	go snapshotSvc.Run(ctx)
	if err := snapshotSvc.Refresh(ctx); err != nil {
		logger.Warn("initial snapshot refresh failed", "err", err)
	}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	authHandler := handler.AuthHandler{Service: &authSvc}
	customerHandler := handler.CustomerHandler{Repo: customerRepo}
	visitHandler := handler.VisitHandler{Snapshot: snapshotSvc}
	clientsHandler := handler.ClientsHandler{Snapshot: snapshotSvc, Customers: customerRepo}
	appointmentsHandler := handler.AppointmentsHandler{Snapshot: snapshotSvc}
	preferencesHandler := handler.PreferencesHandler{Repo: preferenceRepo}
	dashboardHandler := handler.DashboardHandler{Snapshot: snapshotSvc, Summary: summarySvc}
	activityHandler := handler.ActivityLogHandler{Repo: activityRepo}
	homeHandler := handler.HomeHandler{}

	router := server.NewRouter(cfg, logger, healthHandler, authHandler, customerHandler, visitHandler, clientsHandler, appointmentsHandler, preferencesHandler, dashboardHandler, activityHandler, homeHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
