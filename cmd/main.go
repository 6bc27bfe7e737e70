package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/phoenixgodbrain/neurogate/internal/adapters/ai"
	"github.com/phoenixgodbrain/neurogate/internal/adapters/http/api"
	"github.com/phoenixgodbrain/neurogate/internal/adapters/repository"
	app "github.com/phoenixgodbrain/neurogate/internal/app"
	"github.com/phoenixgodbrain/neurogate/internal/auth"
	"github.com/phoenixgodbrain/neurogate/internal/config"
	"github.com/phoenixgodbrain/neurogate/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Local development secrets; absence is normal in production.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store := repository.NewFileStore(cfg.StorePath)
	tokens := auth.NewTokenService(cfg.TokenSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	var companion ai.Companion
	if cfg.GeminiAPIKey != "" {
		c, err := ai.NewGeminiCompanion(ctx, cfg.GeminiAPIKey,
			ai.WithChatModel(cfg.ChatModel),
			ai.WithAudioModel(cfg.AudioModel),
		)
		if err != nil {
			os.Stderr.WriteString("failed to create companion: " + err.Error() + "\n")
			return
		}
		companion = c
	} else {
		loggerInstance.Warn(ctx, "no API key configured; chat surface disabled")
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithStore(store),
		app.WithTokenService(tokens),
		app.WithCompanion(companion),
		app.WithAdminIdentities(cfg.AdminIdentities),
		app.WithAdminResetOnRestore(cfg.AdminResetOnRestore),
		app.WithFreeQueryLimit(cfg.FreeQueryLimit),
		app.WithOverlayDuration(time.Duration(cfg.OverlayDurationMS)*time.Millisecond),
		app.WithWarpDuration(time.Duration(cfg.WarpDurationMS)*time.Millisecond),
		app.WithChatLaneSize(cfg.ChatQueueSize),
		app.WithAudioCacheSize(cfg.AudioCacheSize),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}
