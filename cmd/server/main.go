package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"larder/internal/api"
	"larder/internal/config"
	"larder/internal/database"
	"larder/internal/inventory"
	"larder/internal/logger"
	"larder/internal/monitoring"
	"larder/internal/recipes"
	"larder/internal/store"

	"flag"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var configFile = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	logger.Init()
	defer logger.Sync()
	log := logger.L()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("auth.jwt_secret (or LARDER_JWT_SECRET) is required")
	}

	db, err := database.InitDB(database.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime.Std(),
		LogSQL:          cfg.Database.LogSQL,
	})
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.CloseDB()

	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("failed to seed database", zap.Error(err))
	}

	metrics := monitoring.NewCollector()
	st := store.New(db)
	manager := inventory.New(st, metrics)

	connector, err := recipes.NewConnector(recipes.Options{
		BaseURL:    cfg.Connector.BaseURL,
		SearchPath: cfg.Connector.SearchPath,
		PathPrefix: cfg.Connector.PathPrefix,
		UserAgent:  cfg.Connector.UserAgent,
		Timeout:    cfg.Connector.Timeout.Std(),
		ImageAttrs: cfg.Connector.ImageAttrs,
	})
	if err != nil {
		log.Fatal("failed to initialize recipe connector", zap.Error(err))
	}

	app := api.New(st, manager, connector, metrics, cfg.Auth.JWTSecret, log)

	// Metrics server on its own port
	go func() {
		metricsServer := &http.Server{
			Addr:    cfg.Server.MetricsAddr,
			Handler: metrics.Handler(),
		}
		log.Info("starting metrics server", zap.String("addr", cfg.Server.MetricsAddr))
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("metrics server error", zap.Error(err))
		}
	}()

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	log.Info("starting API server", zap.String("addr", cfg.Server.Addr))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("API server error", zap.Error(err))
	}
}
