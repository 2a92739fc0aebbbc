package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental-alert-service/internal/alerts"
	"rental-alert-service/internal/api"
	"rental-alert-service/internal/config"
	"rental-alert-service/internal/db"
	"rental-alert-service/internal/logging"
	"rental-alert-service/internal/utils"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Close()

	// Connect to database, retrying with backoff while it comes up
	var dbConn *db.DB
	err = utils.Retry(logger, utils.NewBackoff(), func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var connErr error
		dbConn, connErr = db.New(ctx, cfg.DB.DSN)
		return connErr
	})
	if err != nil {
		logger.Errorf("Database connection failed: %v", err)
		log.Fatalf("Database connection failed: %v", err)
	}
	defer dbConn.Close()

	// Alert engine with the caller-side cache in front
	engine := alerts.NewEngine(dbConn, logger, cfg.Alerts.Timeout)
	cache := alerts.NewCache(engine, cfg.Alerts.CacheTTL)

	handler := api.NewHandler(cache, dbConn, cache, logger)
	router := api.NewRouter(handler, logger, cfg)

	srv := &http.Server{
		Addr:    cfg.API.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting API server on %s", cfg.API.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("API server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Infof("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Infof("Service stopped")
}
