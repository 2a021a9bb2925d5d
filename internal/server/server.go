// Package server boots the storefront: configuration, database,
// optional redis and mongo log sink, HTTP surface, optional gRPC
// health endpoint, and graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	grpcserver "github.com/shashiranjanraj/storefront/pkg/grpc"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// Start runs the storefront until a shutdown signal arrives.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// A missing database is fatal: every surface reads the catalog.
	if err := database.Connect(); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := database.DB.AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Redis only backs view counters; run degraded without it.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, view counters disabled", "error", err)
	}

	storage.Connect()

	if uri := config.LogMongoURI(); uri != "" {
		mh, err := logger.EnableMongo(uri)
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		} else {
			defer mh.Close()
		}
	}

	r := router.New()
	if err := routes.RegisterAPI(r, database.DB); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if port := config.GRPCPort(); port != "" {
		gsrv, _, err := grpcserver.Start(port)
		if err != nil {
			return fmt.Errorf("start grpc: %w", err)
		}
		defer grpcserver.Stop(gsrv)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
