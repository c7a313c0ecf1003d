package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"wonderfinance/internal/advisor"
	"wonderfinance/internal/amqp"
	"wonderfinance/internal/auth"
	"wonderfinance/internal/config"
	apphttp "wonderfinance/internal/http"
	applog "wonderfinance/internal/log"
	"wonderfinance/internal/market"
	"wonderfinance/internal/news"
	"wonderfinance/internal/services"
	"wonderfinance/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: "wonderfinance",
	})
	slog.SetDefault(logger.Logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// AMQP is optional; without it budget alerts are simply not published.
	var alerts services.AlertPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		alerts = amqpClient
		logger.Info("AMQP alerts enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	stocks := market.NewAlphaVantage(cfg.StockAPIURL, cfg.StockAPIKey)
	crypto := market.NewCoinGecko(cfg.CryptoAPIURL)
	quoter := market.NewQuoter(stocks, crypto, cfg.QuoteCacheTTL)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Tokens:       tokens,
		Users:        services.NewUserService(repo, tokens),
		Transactions: services.NewTransactionService(repo, alerts),
		Budgets:      services.NewBudgetService(repo),
		Portfolio:    services.NewPortfolioService(repo, quoter),
		Insights:     services.NewInsightsService(repo, advisor.New(cfg.OpenAIKey, cfg.OpenAIModel)),
		Quoter:       quoter,
		News:         news.NewClient(cfg.NewsAPIURL, cfg.NewsAPIKey),
		Indices:      stocks,
		CORSOrigins:  cfg.CORSOrigins,
	})

	srv.ReadTimeout = 15 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting wonderfinance server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
