// Package main provides the API server entry point for the lead manager.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/leadstack/internal/api"
	"github.com/leadstack/internal/config"
	"github.com/leadstack/internal/logging"
	"github.com/leadstack/internal/service"
	"github.com/leadstack/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := logging.ParseLogLevel(cfg.Logging.Level)
	logFormat := logging.ParseLogFormat(cfg.Logging.Format)
	logging.InitGlobalLogger(logLevel, logFormat)

	logger := logging.GetGlobalLogger()
	logger.WithFields(map[string]interface{}{
		"level":  cfg.Logging.Level,
		"format": cfg.Logging.Format,
	}).Info("Structured logging initialized")

	var leadStore storage.LeadStore
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		postgres, err := storage.NewPostgresDB(&cfg.Database.Postgres)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Postgres")
		}
		defer postgres.Close()
		leadStore = storage.NewPostgresLeadStore(postgres, logger)
		logger.Info("Using Postgres lead store")
	default:
		leadStore = storage.NewFileLeadStore(cfg.Storage.LeadsCSVPath, logger)
		logger.WithField("path", cfg.Storage.LeadsCSVPath).Info("Using file-backed lead store")
	}

	listStore := storage.NewFileListStore(cfg.Storage.ListsJSONPath, logger)

	var leadCache *storage.LeadCache
	if cfg.Database.Redis.Enabled {
		redis, err := storage.NewRedisCache(&cfg.Database.Redis)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redis.Close()
		leadCache = storage.NewLeadCache(redis, cfg.Cache.TTL)
		logger.WithField("ttl", cfg.Cache.TTL.String()).Info("Lead snapshot cache enabled")
	}

	leadService := service.NewLeadService(leadStore, leadCache, logger)

	server := api.NewServer(api.DefaultServerConfig(cfg), leadService, listStore, logger)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	logger.WithFields(map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), api.DefaultServerConfig(cfg).ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
