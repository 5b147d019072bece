// @title           Admin Quota Console API
// @version         1.0
// @host            localhost:8000
// @schemes         http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admin-console/internal/api"
	"admin-console/internal/config"
	"admin-console/internal/database"
	"admin-console/internal/localstore"
	"admin-console/internal/scheduler"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	_ "admin-console/docs"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source())
	if err != nil {
		logger.Fatal("Failed to connect to tenant database", zap.Error(err))
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping tenant database", zap.Error(err))
	}
	logger.Info("Connected to tenant database", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

	local, err := localstore.Open(cfg.Local.Path)
	if err != nil {
		logger.Fatal("Failed to open local store", zap.Error(err))
	}
	defer local.Close()
	logger.Info("Local store ready", zap.String("path", cfg.Local.Path))

	store := database.NewStore(dbpool)
	runner := scheduler.NewResetRunner(store, local, logger)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Fatal("Invalid scheduler timezone", zap.String("timezone", cfg.Scheduler.Timezone), zap.Error(err))
	}
	c := cron.New(cron.WithLocation(location))
	if _, err := runner.Schedule(c); err != nil {
		logger.Fatal("Failed to schedule nightly reset", zap.Error(err))
	}
	c.Start()
	logger.Info("Nightly quota reset scheduled", zap.String("timezone", cfg.Scheduler.Timezone))

	server := api.NewServer(cfg, store, local, runner, logger)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: server.Routes(),
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", cfg.Server.Addr()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	cronCtx := c.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", zap.Error(err))
	}
	// Let an in-flight scheduled run finish before the stores close.
	select {
	case <-cronCtx.Done():
	case <-shutdownCtx.Done():
	}
}
