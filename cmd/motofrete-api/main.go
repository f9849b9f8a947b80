// README: Entry point; loads config, wires services, starts the HTTP server and shuts down gracefully.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"motofrete/internal/config"
	httptransport "motofrete/internal/http"
	"motofrete/internal/infra"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := infra.NewLogger(cfg.AppEnv, "motofrete-api")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialise service", zap.Error(err))
	}
	defer app.Close()

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := httptransport.NewServer(httptransport.ServerDeps{
		Delivery:      app.delivery,
		Phone:         cfg.Store.Phone,
		Metrics:       app.serverMetrics,
		Gatherer:      app.registry,
		Logger:        log,
		SessionMaxAge: cfg.Session.TTL,
		SecureCookies: cfg.AppEnv != "development",
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting",
			zap.String("addr", cfg.HTTP.Addr),
			zap.String("routing_provider", cfg.Routing.Provider),
			zap.String("geocoding_provider", cfg.Geocoding.Provider),
			zap.String("session_store", cfg.Session.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down motofrete-api...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}
	log.Info("motofrete-api stopped")
}
