package eventlog

// Query limits
const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
	DefaultRetentionDays = 30
)

// Log messages - service events
const (
	LogMsgEventPayloadNotMap = "Event payload could not be decoded, skipping log"
	LogMsgFailedToLogEvent   = "Failed to log event"
	LogMsgEventLogged        = "Event logged"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldAddress       = "address"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retentionDays"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deletedCount"
)

// CleanupJobName identifies the cleanup job in worker logs
const CleanupJobName = "eventlog.cleanup"

// MetadataFallbackAddressKey is the payload field read when metadata carries no address
const MetadataFallbackAddressKey = "address"
