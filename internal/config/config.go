package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/ZetaFarm_Go/internal/database"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	Version     string
	APIKey      string // API key for authentication

	TrustedProxies    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	StorageBackend    string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBSSLMode         string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	TickInterval  time.Duration
	WorkerCount   int
	FarmCacheSize int
	FarmCacheTTL  time.Duration
	StartingPlots int
	CatalogDir    string

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
	EventRetentionDays  int
	CleanupInterval     time.Duration
	ShutdownTimeout     time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:     getEnv("VERSION", DefaultVersion),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies:    getEnvAsList("TRUSTED_PROXIES"),
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", DefaultRateLimitRequests),
		RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW", DefaultRateLimitWindow),

		StorageBackend:    strings.ToLower(getEnv("STORAGE_BACKEND", DefaultStorageBackend)),
		DBUser:            getEnv("DB_USER", DefaultDBUser),
		DBPassword:        getEnv("DB_PASSWORD", DefaultDBPassword),
		DBHost:            getEnv("DB_HOST", DefaultDBHost),
		DBPort:            getEnv("DB_PORT", DefaultDBPort),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBSSLMode:         getEnv("DB_SSLMODE", DefaultDBSSLMode),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		TickInterval:  getEnvAsDuration("TICK_INTERVAL", DefaultTickInterval),
		WorkerCount:   getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		FarmCacheSize: getEnvAsInt("FARM_CACHE_SIZE", DefaultFarmCacheSize),
		FarmCacheTTL:  getEnvAsDuration("FARM_CACHE_TTL", DefaultFarmCacheTTL),
		StartingPlots: getEnvAsInt("FARM_STARTING_PLOTS", DefaultStartingPlots),
		CatalogDir:    getEnv("CATALOG_DIR", ""),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultDeadLetterPath),
		EventRetentionDays:  getEnvAsInt("EVENT_RETENTION_DAYS", DefaultEventRetention),
		CleanupInterval:     getEnvAsDuration("EVENT_CLEANUP_INTERVAL", DefaultCleanupInterval),
		ShutdownTimeout:     getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to defaultValue
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping blank entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsDuration parses a Go duration variable, falling back to defaultValue
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return database.ConnString(c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// UsesPostgres reports whether farms are persisted in Postgres
func (c *Config) UsesPostgres() bool {
	return c.StorageBackend == StoragePostgres
}
