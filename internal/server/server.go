// Package server boots the application: config, database, cache,
// storage, log sinks, the middleware stack, and the HTTP listener with
// graceful shutdown.
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

	"github.com/shashiranjanraj/novamarket/app/routes"
	"github.com/shashiranjanraj/novamarket/config"
	"github.com/shashiranjanraj/novamarket/pkg/cache"
	"github.com/shashiranjanraj/novamarket/pkg/database"
	"github.com/shashiranjanraj/novamarket/pkg/logger"
	"github.com/shashiranjanraj/novamarket/pkg/metrics"
	"github.com/shashiranjanraj/novamarket/pkg/middleware"
	"github.com/shashiranjanraj/novamarket/pkg/reqid"
	"github.com/shashiranjanraj/novamarket/pkg/router"
	"github.com/shashiranjanraj/novamarket/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	if err := database.Connect(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	// Redis is optional; cache helpers no-op when it is down.
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, caching disabled", "error", err)
	}

	storage.Connect()

	// Tee logs into Mongo when a sink is configured.
	if uri := config.MongoLogURI(); uri != "" {
		mh, err := logger.AttachMongo(uri, config.MongoLogDatabase(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("server: mongo log sink disabled", "error", err)
		} else {
			defer mh.Close()
		}
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)
	routes.RegisterAPI(r, database.DB)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	logger.Info("server: stopped")
	return nil
}
