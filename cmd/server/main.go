package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kapu/marketpulse-go/internal/app"
	"github.com/kapu/marketpulse-go/internal/config"
	"github.com/kapu/marketpulse-go/internal/constants"
	"github.com/kapu/marketpulse-go/internal/util"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	mode := "production"
	if cfg.MockMode() {
		mode = "mock"
	}
	logger.Info("MarketPulse AI backend starting...",
		zap.String("version", constants.ServiceInfo.Version),
		zap.String("addr", cfg.Addr()),
		zap.String("mode", mode),
		zap.Strings("cors_origins", cfg.Server.CORSOrigins),
		zap.String("log_level", cfg.Logging.Level),
	)

	buildCtx, buildCancel := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := app.Build(buildCtx, cfg, logger)
	buildCancel()
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		os.Exit(1)
	}
	defer container.Close()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      container.Handler(),
		ReadTimeout:  constants.HTTPConfig.ReadTimeout,
		WriteTimeout: constants.HTTPConfig.WriteTimeout,
		IdleTimeout:  constants.HTTPConfig.IdleTimeout,
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logger.Info("Server started, waiting for signals...",
		zap.String("health", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port)),
	)

	exitCode := 0
	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("Server error", zap.Error(err))
		exitCode = 1
	}

	// Graceful shutdown
	logger.Info("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.HTTPConfig.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	if exitCode != 0 {
		container.Close()
		_ = logger.Sync()
		os.Exit(exitCode)
	}
}
