package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers understood by the persistence layer.
const (
	StorageDatabase = "database"
	StorageBadger   = "badger"
	StorageMemory   = "memory"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Logging  LoggingConfig
	Auth     AuthConfig
	Checkout CheckoutConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

// StorageConfig selects the key-value medium backing the gallery stores.
type StorageConfig struct {
	Driver     string
	BadgerPath string
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// AuthConfig groups the session cookie and legacy login settings.
type AuthConfig struct {
	Session     SessionConfig
	LegacyLogin LegacyLoginConfig
}

// SessionConfig controls the cookie binding a browser to its workspace.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// LegacyLoginConfig holds the externally supplied admin pair checked by the
// deprecated role login.
type LegacyLoginConfig struct {
	Enabled       bool
	AdminEmail    string
	AdminPassword string
}

// CheckoutConfig tunes the simulated payment delays.
type CheckoutConfig struct {
	IntentDelay time.Duration
	VerifyDelay time.Duration
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 0),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 0),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 0),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 0),
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
	}

	cfg.Storage = StorageConfig{
		Driver:     strings.ToLower(firstNonEmpty(os.Getenv("STORAGE_DRIVER"), StorageDatabase)),
		BadgerPath: strings.TrimSpace(os.Getenv("STORAGE_BADGER_PATH")),
	}

	cfg.Logging = LoggingConfig{
		Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	cfg.Auth = AuthConfig{
		Session: SessionConfig{
			Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
			CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "artvista_session"),
			CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
			CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), true),
		},
		LegacyLogin: LegacyLoginConfig{
			Enabled:       parseBoolWithDefault(os.Getenv("AUTH_LEGACY_LOGIN"), false),
			AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		},
	}

	cfg.Checkout = CheckoutConfig{
		IntentDelay: parseDurationWithDefault(os.Getenv("CHECKOUT_INTENT_DELAY"), 1500*time.Millisecond),
		VerifyDelay: parseDurationWithDefault(os.Getenv("CHECKOUT_VERIFY_DELAY"), time.Second),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}

	switch cfg.Storage.Driver {
	case StorageDatabase, StorageBadger, StorageMemory:
	default:
		return Config{}, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	if strings.TrimSpace(value) == "" {
		return def
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return def
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	if strings.TrimSpace(value) == "" {
		return def
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}
