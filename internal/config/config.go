package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port        string
	CORSOrigins []string

	// Database
	SQLiteDBPath string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// AMQP (optional; alerts are skipped when the URL is empty)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Market data
	StockAPIKey   string
	StockAPIURL   string
	CryptoAPIURL  string
	QuoteCacheTTL time.Duration

	// News
	NewsAPIKey string
	NewsAPIURL string

	// AI advisor
	OpenAIKey   string
	OpenAIModel string
}

func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/wonderfinance.db"),

		JWTSecret: getEnv("SECRET_KEY", ""),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "wonderfinance"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "budget_alerts"),

		StockAPIKey:   getEnv("STOCK_API_KEY", ""),
		StockAPIURL:   getEnv("STOCK_API_URL", "https://www.alphavantage.co"),
		CryptoAPIURL:  getEnv("CRYPTO_API_URL", "https://api.coingecko.com"),
		QuoteCacheTTL: getEnvDuration("QUOTE_CACHE_TTL", 5*time.Minute),

		NewsAPIKey: getEnv("NEWS_API_KEY", ""),
		NewsAPIURL: getEnv("NEWS_API_URL", "https://newsapi.org"),

		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4"),
	}

	return cfg
}

// Validate checks the configuration once at startup and returns every problem
// found in a single error.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.JWTSecret == "" {
		errs = append(errs, "SECRET_KEY must be set")
	}

	if c.TokenTTL < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid token TTL %v: must be at least 1 minute", c.TokenTTL))
	}

	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
			}
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	for _, name := range []struct{ label, value string }{
		{"STOCK_API_URL", c.StockAPIURL},
		{"CRYPTO_API_URL", c.CryptoAPIURL},
		{"NEWS_API_URL", c.NewsAPIURL},
	} {
		if parsed, err := url.Parse(name.value); err != nil || parsed.Scheme == "" {
			errs = append(errs, fmt.Sprintf("invalid %s '%s'", name.label, name.value))
		}
	}

	if c.QuoteCacheTTL < time.Second {
		errs = append(errs, fmt.Sprintf("invalid quote cache TTL %v: must be at least 1 second", c.QuoteCacheTTL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
