package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest = "Invalid request body"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError     = "Something went wrong"
	ErrMsgUnknownError           = "Unknown error"
	ErrMsgPlayerNotFoundError    = "Player not found"
	ErrMsgInsufficientFundsError = "Insufficient funds"
	ErrMsgInvalidInputError      = "Invalid request. Please check your inputs."
)
