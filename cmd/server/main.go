package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asterah/chaos-full-nightmare/internal/api"
	"github.com/asterah/chaos-full-nightmare/internal/config"
	"github.com/asterah/chaos-full-nightmare/internal/logging"
	"github.com/asterah/chaos-full-nightmare/internal/repository/gormdb"
	"github.com/asterah/chaos-full-nightmare/internal/service"
	"github.com/asterah/chaos-full-nightmare/internal/websocket"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		logger.Fatal("failed to load scoring rules", zap.String("path", cfg.RulesFile), zap.Error(err))
	}

	// Initialize database
	logLevel := gormlogger.Info
	if cfg.IsProduction() {
		logLevel = gormlogger.Warn
	}
	db, err := gormdb.NewConnection(cfg.DatabaseURL, logLevel)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Initialize repositories and services
	repos := gormdb.NewRepositories(db)
	services := service.NewServices(repos, cfg, rules, logger)

	syncCtx, cancelSync := context.WithTimeout(context.Background(), 30*time.Second)
	synced, err := services.Combatant.Sync(syncCtx)
	cancelSync()
	if err != nil {
		logger.Fatal("failed to sync combatant catalog", zap.Error(err))
	}
	logger.Info("combatant catalog synced", zap.Int("combatants", synced))

	// Initialize WebSocket hub
	hub := websocket.NewHub(services.Session, logger)
	go hub.Run()

	// Initialize router
	router := api.NewRouter(services, hub, cfg, logger)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	hub.Stop()

	logger.Info("server stopped")
}
