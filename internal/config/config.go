package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURL     string
	SecretKey       string
	Algorithm       string
	TokenTTL        time.Duration
	BcryptCost      int
	ShutdownTimeout time.Duration
	LogLevel        slog.Level
	Admin           AdminConfig
}

// AdminConfig describes the account seeded at startup. Empty email disables seeding.
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Enabled reports whether bootstrap admin seeding was requested.
func (a AdminConfig) Enabled() bool {
	return a.Email != "" && a.Password != ""
}

const (
	defaultRunAddress      = ":8000"
	defaultAlgorithm       = "HS256"
	defaultTokenTTLMinutes = 30
	defaultShutdownTimeout = 10 * time.Second
	defaultAdminName       = "admin"
)

var supportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// Load parses configuration from flags, environment variables and an optional .env file.
func Load() (*Config, error) {
	lookup, err := withEnvFile(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

// withEnvFile layers values from ENV_FILE (or .env.test / .env) under the process environment.
func withEnvFile(lookup envLookup) (envLookup, error) {
	path, explicit := lookup("ENV_FILE")
	if !explicit || path == "" {
		path = ""
		for _, candidate := range []string{".env.test", ".env"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return lookup, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURL:     getString(lookup, "DATABASE_URL", ""),
		SecretKey:       getString(lookup, "SECRET_KEY", ""),
		Algorithm:       getString(lookup, "ALGORITHM", defaultAlgorithm),
		BcryptCost:      getInt(lookup, "BCRYPT_COST", 0),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		Admin: AdminConfig{
			Name:     getString(lookup, "ADMIN_NAME", defaultAdminName),
			Email:    getString(lookup, "ADMIN_EMAIL", ""),
			Password: getString(lookup, "ADMIN_PASSWORD", ""),
		},
	}

	fset := flag.NewFlagSet("delivery", flag.ContinueOnError)
	fset.SetOutput(io.Discard)

	var (
		ttlMinutes         = getInt(lookup, "ACCESS_TOKEN_EXPIRE_MINUTES", defaultTokenTTLMinutes)
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		logLevelStr        = getString(lookup, "LOG_LEVEL", "info")
	)

	fset.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fset.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "PostgreSQL DSN")
	fset.StringVar(&cfg.SecretKey, "secret", cfg.SecretKey, "Secret for signing access tokens")
	fset.StringVar(&cfg.Algorithm, "algorithm", cfg.Algorithm, "Token signing algorithm")
	fset.IntVar(&ttlMinutes, "token-ttl", ttlMinutes, "Access token lifetime in minutes")
	fset.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fset.StringVar(&logLevelStr, "log-level", logLevelStr, "Log level (debug, info, warn, error)")

	if err := fset.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if err = cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if secretFile, ok := lookup("SECRET_KEY_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read secret key file: %w", err)
		}
		cfg.SecretKey = strings.TrimSpace(string(content))
	}

	if ttlMinutes <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %d", ttlMinutes)
	}
	cfg.TokenTTL = time.Duration(ttlMinutes) * time.Minute

	cfg.Algorithm = strings.ToUpper(cfg.Algorithm)
	if _, ok := supportedAlgorithms[cfg.Algorithm]; !ok {
		return nil, fmt.Errorf("unsupported token algorithm %q", cfg.Algorithm)
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.BcryptCost < 0 {
		cfg.BcryptCost = 0
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL must be provided")
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("secret key must be provided")
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
