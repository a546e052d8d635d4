package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists environment variables that must always be set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
}

// RequiredDBEnvVars must also be set when the postgres backend is selected
var RequiredDBEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	required := RequiredEnvVars
	if backend := strings.ToLower(os.Getenv("STORAGE_BACKEND")); backend == "" || backend == StoragePostgres {
		required = append(append([]string{}, RequiredEnvVars...), RequiredDBEnvVars...)
	}

	var missing []string
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	return warnings, nil
}

// Validate rejects configurations the server cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > MaxPort {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and %d, got %d", MaxPort, c.Port))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be text or json", c.LogFormat))
	}
	if c.StorageBackend != StoragePostgres && c.StorageBackend != StorageMemory {
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND %q must be %s or %s", c.StorageBackend, StoragePostgres, StorageMemory))
	}
	if c.UsesPostgres() && c.DBMaxConns < 1 {
		errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
	}
	if c.TickInterval < MinTickInterval || c.TickInterval%time.Second != 0 {
		errs = append(errs, fmt.Errorf("TICK_INTERVAL must be a whole number of seconds, at least %s, got %s", MinTickInterval, c.TickInterval))
	}
	if c.WorkerCount < 1 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be positive, got %d", c.WorkerCount))
	}
	if c.FarmCacheSize < 1 {
		errs = append(errs, fmt.Errorf("FARM_CACHE_SIZE must be positive, got %d", c.FarmCacheSize))
	}
	if c.FarmCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("FARM_CACHE_TTL must not be negative, got %s", c.FarmCacheTTL))
	}
	if c.StartingPlots < 1 || c.StartingPlots > MaxPlots {
		errs = append(errs, fmt.Errorf("FARM_STARTING_PLOTS must be between 1 and %d, got %d", MaxPlots, c.StartingPlots))
	}
	if c.EventMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("EVENT_MAX_RETRIES must not be negative, got %d", c.EventMaxRetries))
	}
	if c.EventRetryDelay <= 0 {
		errs = append(errs, fmt.Errorf("EVENT_RETRY_DELAY must be positive, got %s", c.EventRetryDelay))
	}
	if c.EventRetentionDays < 1 {
		errs = append(errs, fmt.Errorf("EVENT_RETENTION_DAYS must be positive, got %d", c.EventRetentionDays))
	}

	if c.RateLimitRequests < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimitRequests))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow))
	}
	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				errs = append(errs, fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy))
			}
		}
	}

	return errors.Join(errs...)
}
