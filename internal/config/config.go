package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	NotifierAddress      string
	AuthSecret           string
	CardHashKey          string
	JournalFlushInterval time.Duration
	JournalWorkers       int
	JournalBatchSize     int
	ShutdownTimeout      time.Duration
	VoucherPercent       int
}

const (
	defaultRunAddress           = ":8080"
	defaultAuthSecret           = "change-me-in-production"
	defaultCardHashKey          = "orderflow-card-hash-key"
	defaultJournalFlushInterval = time.Second
	defaultJournalWorkers       = 2
	defaultJournalBatchSize     = 64
	defaultShutdownTimeout      = 10 * time.Second
	defaultVoucherPercent       = 10
)

// Load parses configuration from .env file, environment variables and flags.
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

// loadDotenv copies variables from the given files (.env by default) into the
// environment without overriding ones already set. Missing files are skipped.
func loadDotenv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		NotifierAddress:      getString(lookup, "NOTIFIER_ADDRESS", ""),
		AuthSecret:           getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		CardHashKey:          getString(lookup, "CARD_HASH_KEY", defaultCardHashKey),
		JournalFlushInterval: getDuration(lookup, "JOURNAL_FLUSH_INTERVAL", defaultJournalFlushInterval),
		JournalWorkers:       getInt(lookup, "JOURNAL_WORKERS", defaultJournalWorkers),
		JournalBatchSize:     getInt(lookup, "JOURNAL_BATCH_SIZE", defaultJournalBatchSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		VoucherPercent:       getInt(lookup, "VOUCHER_PERCENT", defaultVoucherPercent),
	}

	fs := flag.NewFlagSet("orderflow", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		flushIntervalStr   = cfg.JournalFlushInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.NotifierAddress, "n", cfg.NotifierAddress, "Push notification service base URL")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing customer tokens")
	fs.StringVar(&cfg.CardHashKey, "card-hash-key", cfg.CardHashKey, "Key for hashing card numbers")
	fs.StringVar(&flushIntervalStr, "journal-interval", flushIntervalStr, "Interval between effect journal flushes")
	fs.IntVar(&cfg.JournalWorkers, "journal-workers", cfg.JournalWorkers, "Number of concurrent journal writers")
	fs.IntVar(&cfg.JournalBatchSize, "journal-batch", cfg.JournalBatchSize, "Maximum effects per journal flush")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.VoucherPercent, "voucher-percent", cfg.VoucherPercent, "Discount percent for digital purchases")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.JournalFlushInterval, err = time.ParseDuration(flushIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid journal interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = strings.TrimSpace(string(content))
	}

	if cfg.JournalWorkers <= 0 {
		cfg.JournalWorkers = defaultJournalWorkers
	}

	if cfg.JournalBatchSize <= 0 {
		cfg.JournalBatchSize = defaultJournalBatchSize
	}

	if cfg.JournalFlushInterval <= 0 {
		cfg.JournalFlushInterval = defaultJournalFlushInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.VoucherPercent <= 0 || cfg.VoucherPercent > 100 {
		cfg.VoucherPercent = defaultVoucherPercent
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
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
