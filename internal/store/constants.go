package store

import "time"

// Cache defaults
const (
	DefaultCacheSize = 10000
	DefaultCacheTTL  = 30 * time.Minute
)

// Log messages
const (
	LogMsgFarmInactive = "Farm left the active set"
)
