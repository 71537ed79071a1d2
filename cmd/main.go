package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sufra-dev/sufra/catalog"
	"github.com/sufra-dev/sufra/config"
	"github.com/sufra-dev/sufra/database"
	"github.com/sufra-dev/sufra/handlers"
	"github.com/sufra-dev/sufra/middlewares"
	"github.com/sufra-dev/sufra/orders"
	"github.com/sufra-dev/sufra/server"
	"github.com/sufra-dev/sufra/settings"
	"github.com/sufra-dev/sufra/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Panicf("failed to load configuration, error: %v", err)
	}

	store, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		logrus.Panicf("failed to open storage, error: %v", err)
	}

	var cat catalog.Catalog
	switch cfg.CatalogBackend {
	case "postgres":
		db, err := database.ConnectAndMigrate(cfg.DatabaseURL)
		if err != nil {
			logrus.Panicf("failed to initialize database, error: %v", err)
		}
		logrus.Println("migration is successful")
		defer func() {
			if err := database.Shutdown(db); err != nil {
				logrus.WithError(err).Error("failed to close database connection")
			}
		}()
		cat = catalog.NewPostgres(db)
	default:
		cat, err = catalog.NewLocal(store)
		if err != nil {
			logrus.Panicf("failed to open catalog, error: %v", err)
		}
	}

	sets := settings.NewStore(store)
	repo := orders.NewRepository(store, sets)

	h := &handlers.Handler{
		Catalog:            cat,
		Orders:             repo,
		Settings:           sets,
		Store:              store,
		JWTSecret:          cfg.JWTSecret,
		AdminPasswordHash:  cfg.AdminPasswordHash,
		DriverPasswordHash: cfg.DriverPasswordHash,
	}
	auth := middlewares.NewAuth(cfg.JWTSecret)
	svr := server.SetupRoutes(h, auth, cfg.StaticDir)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		logrus.Infof("listening on :%s", cfg.Port)
		if err := svr.Run(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("server stopped")
			cancel()
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down...")
	if err := svr.Shutdown(shutdownTimeout); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
