package database

import "time"

// Pool sizing defaults. Overridable through PoolConfig, which the app
// config populates from the environment.
const (
	DefaultMinConnections  = 2
	DefaultMaxConnections  = 10
	DefaultMaxConnIdleTime = 5 * time.Minute
	DefaultMaxConnLifetime = 30 * time.Minute
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToRunMigrations   = "failed to run migrations"
)

// Log Messages
const (
	LogMsgPoolReady         = "database pool ready"
	LogMsgMigrationsApplied = "Database migrations applied"
)
