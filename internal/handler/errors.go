package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"

	// Action dispatch error messages
	ErrMsgUnknownActionType = "Unknown action type '%s'"
	ErrMsgInvalidActionData = "Invalid data for action '%s'"

	// Activity error messages
	ErrMsgActivityUnavailable = "Activity log is unavailable"
)

// Success messages for API responses
const (
	MsgRobotSubscribed = "Robot subscription saved"
)
