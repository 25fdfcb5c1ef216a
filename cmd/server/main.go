package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"account-service/internal/app"
	"account-service/internal/config"
	"account-service/internal/logger"

	"go.uber.org/zap"
)

func main() {
	log, err := logger.New()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize app", zap.Error(err))
	}

	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	log.Info("account-service started", zap.String("port", cfg.AppPort))

	<-ctx.Done()

	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Fatal("graceful shutdown failed", zap.Error(err))
	}

	log.Info("account-service stopped cleanly")
}
