package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session storage backends.
const (
	SessionStoreMemory   = "memory"
	SessionStoreSQLite   = "sqlite"
	SessionStorePostgres = "postgres"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	APIBaseURL      string
	SessionStore    string
	DatabaseURI     string
	SQLitePath      string
	RequestTimeout  time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	ShutdownTimeout time.Duration
	AuditInterval   time.Duration
	AuditBatch      int
	AuditWorkers    int
	LoginRoute      string
	LogLevel        string
}

const (
	defaultRunAddress      = ":8081"
	defaultAPIBaseURL      = "http://localhost:3000/api"
	defaultSQLitePath      = "marketpanel.db"
	defaultRequestTimeout  = 10 * time.Second
	defaultMaxRetries      = 3
	defaultRetryDelay      = time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultAuditInterval   = 30 * time.Second
	defaultAuditBatch      = 10
	defaultAuditWorkers    = 2
	defaultLoginRoute      = "/login"
	defaultLogLevel        = "info"
	defaultEnvFile         = ".env"
)

// Load reads an optional dotenv file and parses configuration from flags and environment variables.
func Load() (*Config, error) {
	envFile := getString(os.LookupEnv, "ENV_FILE", defaultEnvFile)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		APIBaseURL:      getString(lookup, "API_URL", defaultAPIBaseURL),
		SessionStore:    getString(lookup, "SESSION_STORE", SessionStoreMemory),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		SQLitePath:      getString(lookup, "SQLITE_PATH", defaultSQLitePath),
		RequestTimeout:  getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		MaxRetries:      getInt(lookup, "MAX_RETRIES", defaultMaxRetries),
		RetryDelay:      getDuration(lookup, "RETRY_DELAY", defaultRetryDelay),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		AuditInterval:   getDuration(lookup, "AUDIT_INTERVAL", defaultAuditInterval),
		AuditBatch:      getInt(lookup, "AUDIT_BATCH", defaultAuditBatch),
		AuditWorkers:    getInt(lookup, "AUDIT_WORKERS", defaultAuditWorkers),
		LoginRoute:      getString(lookup, "LOGIN_ROUTE", defaultLoginRoute),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	flags := flag.NewFlagSet("marketpanel", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		requestTimeoutStr  = cfg.RequestTimeout.String()
		retryDelayStr      = cfg.RetryDelay.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		auditIntervalStr   = cfg.AuditInterval.String()
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "Marketplace API base URL")
	flags.StringVar(&cfg.SessionStore, "session-store", cfg.SessionStore, "Session storage backend: memory, sqlite or postgres")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "SQLite database file")
	flags.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Timeout of a single request attempt")
	flags.IntVar(&cfg.MaxRetries, "max-retries", cfg.MaxRetries, "Maximum retries of a failed request")
	flags.StringVar(&retryDelayStr, "retry-delay", retryDelayStr, "Base delay of the linear retry backoff")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&auditIntervalStr, "audit-interval", auditIntervalStr, "Interval between delivery history audits")
	flags.IntVar(&cfg.AuditBatch, "audit-batch", cfg.AuditBatch, "Deliveries fetched per audit run")
	flags.IntVar(&cfg.AuditWorkers, "audit-workers", cfg.AuditWorkers, "Number of concurrent audit workers")
	flags.StringVar(&cfg.LoginRoute, "login-route", cfg.LoginRoute, "Dashboard login route")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.RetryDelay, err = time.ParseDuration(retryDelayStr); err != nil {
		return nil, fmt.Errorf("invalid retry delay: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.AuditInterval, err = time.ParseDuration(auditIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid audit interval: %w", err)
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.AuditInterval <= 0 {
		cfg.AuditInterval = defaultAuditInterval
	}

	if cfg.AuditBatch <= 0 {
		cfg.AuditBatch = defaultAuditBatch
	}

	if cfg.AuditWorkers <= 0 {
		cfg.AuditWorkers = defaultAuditWorkers
	}

	if cfg.LoginRoute == "" {
		cfg.LoginRoute = defaultLoginRoute
	}

	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("api url must be absolute")
	}

	cfg.SessionStore = strings.ToLower(strings.TrimSpace(cfg.SessionStore))
	switch cfg.SessionStore {
	case SessionStoreMemory:
	case SessionStoreSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite path must be provided")
		}
	case SessionStorePostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided for postgres session store")
		}
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
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
