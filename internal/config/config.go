package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// StoreInfo is the shop metadata stamped on rendered quote documents. It is
// passed explicitly to the renderer client, never read from ambient state.
type StoreInfo struct {
	Name    string
	Phone   string
	Address string
}

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	RendererAddress   string
	JWTSecret         string
	Currency          string
	Store             StoreInfo
	QuotePollInterval time.Duration
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration
	MaxQuoteBatch     int
}

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultCurrency          = "JOD"
	defaultQuotePollInterval = 15 * time.Second
	defaultWorkerPoolSize    = 2
	defaultShutdownTimeout   = 10 * time.Second
	defaultMaxQuoteBatch     = 16
)

// Load parses configuration from an optional .env file, environment
// variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		RendererAddress: getString(lookup, "QUOTE_RENDERER_ADDRESS", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		Currency:        getString(lookup, "CURRENCY", defaultCurrency),
		Store: StoreInfo{
			Name:    getString(lookup, "STORE_NAME", ""),
			Phone:   getString(lookup, "STORE_PHONE", ""),
			Address: getString(lookup, "STORE_ADDRESS", ""),
		},
		QuotePollInterval: getDuration(lookup, "QUOTE_POLL_INTERVAL", defaultQuotePollInterval),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxQuoteBatch:     getInt(lookup, "QUOTE_BATCH_SIZE", defaultMaxQuoteBatch),
	}

	fs := flag.NewFlagSet("tijara", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.QuotePollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RendererAddress, "r", cfg.RendererAddress, "Quote renderer base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "Currency tag stamped on new orders")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent quote render workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between quote render polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxQuoteBatch, "poll-batch", cfg.MaxQuoteBatch, "Maximum quotes per polling batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.QuotePollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxQuoteBatch <= 0 {
		cfg.MaxQuoteBatch = defaultMaxQuoteBatch
	}

	if cfg.QuotePollInterval <= 0 {
		cfg.QuotePollInterval = defaultQuotePollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.RendererAddress == "" {
		return nil, fmt.Errorf("quote renderer address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
