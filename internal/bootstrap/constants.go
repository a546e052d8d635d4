package bootstrap

// File system permissions
const (
	DirPermission = 0o755
)

// Tuning that has no config knob
const (
	// WorkerQueueMultiplier sizes the worker queue relative to the worker count
	WorkerQueueMultiplier = 4
)

// Log messages for start-up
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingZetaFarm    = "Starting ZetaFarm"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgCatalogLoaded       = "Catalog loaded"
	LogMsgStorageReady        = "Storage ready"
	LogMsgMigrationsApplied   = "Database migrations applied"
	LogMsgSchedulerStarted    = "Scheduler started"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	LogMsgEventLoggerInitialized         = "Event logger initialized"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger     = "failed to subscribe event logger"
)

// Error messages for start-up
const (
	ErrMsgFailedInitLogger   = "failed to initialize logger"
	ErrMsgFailedLoadCatalog  = "failed to load catalog"
	ErrMsgFailedOpenDatabase = "failed to open database"
	ErrMsgFailedMigrate      = "failed to migrate database"
	ErrMsgUnknownBackend     = "unknown storage backend"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgStoppingScheduler          = "Stopping scheduler and workers..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
