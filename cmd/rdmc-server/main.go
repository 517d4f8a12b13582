package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daniacca/rdmc/internal/logging"
)

func main() {
	cfg, err := loadServerConfig(os.Args[1:])
	if err != nil {
		logging.NewLogger("info").Fatalf("Invalid configuration: %v", err)
	}
	logger := logging.NewLogger(cfg.LogLevel)

	srv := NewServer(cfg, logger)
	defer srv.Close()

	if cfg.ModelFile != "" {
		model, err := loadModelFromFile(cfg.ModelFile)
		if err != nil {
			logger.Fatalf("Failed to load model %s: %v", cfg.ModelFile, err)
		}
		rec, err := srv.compile(model, nil)
		if err != nil {
			logger.Fatalf("Failed to compile model %s: %v", cfg.ModelFile, err)
		}
		logger.Infof("Startup model compiled: compile_id=%s model=%s", rec.ID, rec.Model)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("rdmc-server listening on %s (log level %s)", cfg.Addr, logger.Level())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Shutdown error: %v", err)
	}
}
