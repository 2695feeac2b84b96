package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress    string
	DatabaseURI   string
	PublicBaseURL string
	LogLevel      string

	JWTSecret              string
	SessionTTL             time.Duration
	AdminEmail             string
	AdminBootstrapPassword string
	SignInPath             string
	GuestEmail             string

	StripeSecretKey string
	StripeAPIURL    string

	MailerAPIKey        string
	MailerAPIURL        string
	MailerFromEmail     string
	MailerFromName      string
	MailerRatePerSecond float64
	OperatorEmail       string

	StorageURL        string
	StorageServiceKey string
	StorageBucket     string
	SignedURLTTL      time.Duration

	CatalogFile string

	DispatchWorkers     int
	DispatchQueueSize   int
	DispatchTaskTimeout time.Duration
	ShutdownTimeout     time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultLogLevel            = "info"
	defaultJWTSecret           = "change-me-in-production"
	defaultSessionTTL          = 24 * time.Hour
	defaultAdminEmail          = "admin@nailyourjobinterview.com"
	defaultSignInPath          = "/auth"
	defaultGuestEmail          = "guest@example.com"
	defaultStripeAPIURL        = "https://api.stripe.com"
	defaultMailerAPIURL        = "https://mandrillapp.com/api/1.0"
	defaultMailerFromEmail     = "andrew@nailyourjobinterview.com"
	defaultMailerFromName      = "Andrew - Nail Your Job Interview"
	defaultMailerRatePerSecond = 5
	defaultOperatorEmail       = "andrew@nailyourjobinterview.com"
	defaultStorageBucket       = "resumes"
	defaultSignedURLTTL        = time.Hour
	defaultDispatchWorkers     = 2
	defaultDispatchQueueSize   = 64
	defaultDispatchTaskTimeout = 30 * time.Second
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:             getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:            getString(lookup, "DATABASE_URI", ""),
		PublicBaseURL:          getString(lookup, "PUBLIC_BASE_URL", ""),
		LogLevel:               getString(lookup, "LOG_LEVEL", defaultLogLevel),
		JWTSecret:              getString(lookup, "JWT_SECRET", defaultJWTSecret),
		SessionTTL:             getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		AdminEmail:             getString(lookup, "ADMIN_EMAIL", defaultAdminEmail),
		AdminBootstrapPassword: getString(lookup, "ADMIN_BOOTSTRAP_PASSWORD", ""),
		SignInPath:             getString(lookup, "SIGN_IN_PATH", defaultSignInPath),
		GuestEmail:             getString(lookup, "GUEST_EMAIL", defaultGuestEmail),
		StripeSecretKey:        getString(lookup, "STRIPE_SECRET_KEY", ""),
		StripeAPIURL:           getString(lookup, "STRIPE_API_URL", defaultStripeAPIURL),
		MailerAPIKey:           getString(lookup, "MAILER_API_KEY", ""),
		MailerAPIURL:           getString(lookup, "MAILER_API_URL", defaultMailerAPIURL),
		MailerFromEmail:        getString(lookup, "MAILER_FROM_EMAIL", defaultMailerFromEmail),
		MailerFromName:         getString(lookup, "MAILER_FROM_NAME", defaultMailerFromName),
		MailerRatePerSecond:    getFloat(lookup, "MAILER_RATE_PER_SECOND", defaultMailerRatePerSecond),
		OperatorEmail:          getString(lookup, "OPERATOR_EMAIL", defaultOperatorEmail),
		StorageURL:             getString(lookup, "STORAGE_URL", ""),
		StorageServiceKey:      getString(lookup, "STORAGE_SERVICE_KEY", ""),
		StorageBucket:          getString(lookup, "STORAGE_BUCKET", defaultStorageBucket),
		SignedURLTTL:           getDuration(lookup, "SIGNED_URL_TTL", defaultSignedURLTTL),
		CatalogFile:            getString(lookup, "CATALOG_FILE", ""),
		DispatchWorkers:        getInt(lookup, "DISPATCH_WORKERS", defaultDispatchWorkers),
		DispatchQueueSize:      getInt(lookup, "DISPATCH_QUEUE_SIZE", defaultDispatchQueueSize),
		DispatchTaskTimeout:    getDuration(lookup, "DISPATCH_TASK_TIMEOUT", defaultDispatchTaskTimeout),
		ShutdownTimeout:        getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("interviewprep", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		signedURLTTLStr    = cfg.SignedURLTTL.String()
		taskTimeoutStr     = cfg.DispatchTaskTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		sessionTTLStr      = cfg.SessionTTL.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PublicBaseURL, "b", cfg.PublicBaseURL, "Public site base URL used in links")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Lifetime of issued auth tokens")
	fs.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "YAML file overriding the offering catalog")
	fs.IntVar(&cfg.DispatchWorkers, "dispatch-workers", cfg.DispatchWorkers, "Number of notification workers")
	fs.IntVar(&cfg.DispatchQueueSize, "dispatch-queue", cfg.DispatchQueueSize, "Notification queue capacity")
	fs.StringVar(&taskTimeoutStr, "dispatch-timeout", taskTimeoutStr, "Timeout of a single notification task")
	fs.StringVar(&signedURLTTLStr, "signed-url-ttl", signedURLTTLStr, "Lifetime of resume download links")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SignedURLTTL, err = time.ParseDuration(signedURLTTLStr); err != nil {
		return nil, fmt.Errorf("invalid signed url ttl: %w", err)
	}

	if cfg.DispatchTaskTimeout, err = time.ParseDuration(taskTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid dispatch timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	secrets := []struct {
		env    string
		target *string
	}{
		{"JWT_SECRET_FILE", &cfg.JWTSecret},
		{"STRIPE_SECRET_KEY_FILE", &cfg.StripeSecretKey},
		{"MAILER_API_KEY_FILE", &cfg.MailerAPIKey},
		{"STORAGE_SERVICE_KEY_FILE", &cfg.StorageServiceKey},
	}
	for _, s := range secrets {
		file, ok := lookup(s.env)
		if !ok || file == "" {
			continue
		}
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", strings.ToLower(s.env), err)
		}
		*s.target = strings.TrimSpace(string(content))
	}

	if cfg.DispatchWorkers <= 0 {
		cfg.DispatchWorkers = defaultDispatchWorkers
	}

	if cfg.DispatchQueueSize <= 0 {
		cfg.DispatchQueueSize = defaultDispatchQueueSize
	}

	if cfg.DispatchTaskTimeout <= 0 {
		cfg.DispatchTaskTimeout = defaultDispatchTaskTimeout
	}

	if cfg.SignedURLTTL <= 0 {
		cfg.SignedURLTTL = defaultSignedURLTTL
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MailerRatePerSecond <= 0 {
		cfg.MailerRatePerSecond = defaultMailerRatePerSecond
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe secret key must be provided")
	}

	if cfg.StorageURL == "" {
		return nil, fmt.Errorf("storage URL must be provided")
	}

	if cfg.PublicBaseURL == "" {
		return nil, fmt.Errorf("public base URL must be provided")
	}
	parsed, err := url.Parse(cfg.PublicBaseURL)
	if err != nil || !parsed.IsAbs() {
		return nil, fmt.Errorf("public base URL must be absolute")
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

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

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
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
