package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	appamqp "wonderfinance/internal/amqp"
	"wonderfinance/internal/config"
	applog "wonderfinance/internal/log"
	"wonderfinance/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: "alert-worker",
	})
	slog.SetDefault(logger.Logger)

	logger.Info("Starting alert-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL must be set for the alert worker")
		os.Exit(1)
	}

	amqpClient, err := appamqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alertWorker := worker.NewAlertWorker(worker.LogNotifier{})

	go func() {
		err := amqpClient.ConsumeBudgetAlerts(ctx, func(alert *appamqp.BudgetAlert) error {
			return alertWorker.HandleAlert(ctx, alert)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Alert consumption failed", "error", err)
		}
		cancel()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Alert worker stopped")
}
