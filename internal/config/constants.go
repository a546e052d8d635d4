package config

import "time"

// Storage backends
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Defaults applied when an environment variable is unset or unparsable
const (
	DefaultPort              = "8080"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultLogDir            = "logs"
	DefaultEnvironment       = "dev"
	DefaultVersion           = "dev"
	DefaultStorageBackend    = StoragePostgres
	DefaultDBUser            = "postgres"
	DefaultDBPassword        = "postgres"
	DefaultDBHost            = "localhost"
	DefaultDBPort            = "5432"
	DefaultDBName            = "zetafarm"
	DefaultDBSSLMode         = "disable"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultTickInterval      = time.Second
	DefaultWorkerCount       = 4
	DefaultFarmCacheSize     = 10000
	DefaultFarmCacheTTL      = 30 * time.Minute
	DefaultStartingPlots     = 6
	DefaultEventMaxRetries   = 5
	DefaultEventRetryDelay   = 2 * time.Second
	DefaultDeadLetterPath    = "logs/deadletter.jsonl"
	DefaultEventRetention    = 30
	DefaultCleanupInterval   = 24 * time.Hour
	DefaultShutdownTimeout   = 15 * time.Second
	DefaultRateLimitRequests = 1000
	DefaultRateLimitWindow   = 5 * time.Minute
)

// Validation bounds
const (
	MinTickInterval = time.Second
	MaxPort         = 65535
	MaxPlots        = 18
)
