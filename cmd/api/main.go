package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"optifuel/api/internal/config"
	"optifuel/api/internal/logging"
	"optifuel/api/internal/server"
	"optifuel/api/internal/service"
	"optifuel/api/internal/store"

	_ "optifuel/api/docs"
)

// @title OptiFuel API
// @version 1.0
// @description Fuel consumption forecasting and voyage history analytics

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	logger.Info("starting OptiFuel API server")

	// Apply migrations
	if err := store.Migrate(cfg.DatabaseURL, logger); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Connect to Redis. The API keeps working without it, uncached and unthrottled.
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, analytics cache and rate limiting disabled", "error", err)
		redisClient.Close()
		redisClient = nil
	} else {
		logger.Info("connected to redis")
		defer redisClient.Close()
	}
	cancel()

	// Connect to NATS JetStream
	var jetstream *service.JetStreamService
	if cfg.EventsEnabled {
		jetstream, err = connectJetStream(cfg.NATSURL)
		if err != nil {
			logger.Warn("jetstream unavailable, voyage events disabled", "error", err)
		} else {
			logger.Info("connected to jetstream", "stream", service.StreamVoyages)
		}
	}

	// Create and setup server
	srv := server.NewServer(cfg, db, redisClient, jetstream, logger)
	if err := srv.Setup(); err != nil {
		logger.Error("failed to set up server", "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", cfg.APIPort)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(addr)
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", "error", err)
		}
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}

func connectJetStream(url string) (*service.JetStreamService, error) {
	nc, err := nats.Connect(url,
		nats.Name("optifuel-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	js, err := service.NewJetStreamService(nc)
	if err != nil {
		nc.Close()
		return nil, err
	}
	return js, nil
}
