package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Player errors
	ErrMsgPlayerNotFound = "player not found"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Catalog errors
	ErrMsgCatalogMisconfigured = "catalog misconfigured"

	// Concurrency errors
	ErrMsgConcurrentConflict = "concurrent conflict"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors.
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Player errors
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)

	// Economy errors. ErrInsufficientFunds is the only expected business
	// failure; it is surfaced verbatim to callers and never mutates state.
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Catalog errors. Raised only at startup validation, never per roll.
	ErrCatalogMisconfigured = errors.New(ErrMsgCatalogMisconfigured)

	// ErrConcurrentConflict signals a concurrency-control retry (serialization
	// failure or deadlock). It is retried transparently by the roll engine and
	// must never reach a caller.
	ErrConcurrentConflict = errors.New(ErrMsgConcurrentConflict)

	// Database errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
