package main

import (
	"context"
	"log"

	"container-tracker/internal/app"
	"container-tracker/internal/core/config"
	"container-tracker/internal/core/logger"
	"container-tracker/internal/core/server"
	insighthandler "container-tracker/internal/features/insights/handler"
	lookuphandler "container-tracker/internal/features/lookup/handler"
	trackinghandler "container-tracker/internal/features/tracking/handler"

	"go.uber.org/zap"
)

// @title Container Tracker API
// @version 1.0
// @description Container shipment lookup with resilient carrier data acquisition and generated risk insights.
// @contact.name API Support
// @contact.email support@containertracker.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	services, err := app.Build(context.Background(), cfg)
	if err != nil {
		l.Fatal("Failed to build services", zap.Error(err))
	}
	defer services.Close()

	trackingHdl := trackinghandler.NewTrackingHandler(services.Tracking)
	insightHdl := insighthandler.NewInsightHandler(services.Insights)
	lookupHdl := lookuphandler.NewLookupHandler(services.Lookup)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/tracking/:containerId", trackingHdl.GetContainer)
	srv.App.Post("/insights", insightHdl.GenerateInsight)
	srv.App.Get("/lookup/:containerId", lookupHdl.Lookup)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
