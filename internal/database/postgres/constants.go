package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeCheckViolation is raised when a row breaks a CHECK constraint
	PgErrorCodeCheckViolation = "23514"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Farm Operations
const (
	ErrMsgFailedToGetFarm          = "failed to get farm"
	ErrMsgFailedToGetFarmForUpdate = "failed to get farm for update"
	ErrMsgFailedToInsertFarm       = "failed to insert farm"
	ErrMsgFailedToUpdateFarm       = "failed to update farm"
	ErrMsgFailedToListAddresses    = "failed to list addresses"
	ErrMsgFailedToMarshalFarm      = "failed to marshal farm column"
	ErrMsgFailedToUnmarshalFarm    = "failed to unmarshal farm column"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToMarshalEventData   = "failed to marshal event data"
	ErrMsgFailedToInsertEvent        = "failed to insert event"
	ErrMsgFailedToQueryEvents        = "failed to query events"
	ErrMsgFailedToUnmarshalEventData = "failed to unmarshal event data"
	ErrMsgFailedToCleanupEvents      = "failed to cleanup events"
)
