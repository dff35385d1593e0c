package config

import "time"

// Connection pool defaults. Sized for a single instance against a small
// Postgres; raise DB_MAX_CONNS when running more replicas than the server
// has headroom for.
const (
	DefaultDBMaxConns        = 10
	DefaultDBConnMaxIdleTime = 5 * time.Minute
	DefaultDBConnMaxLifetime = 30 * time.Minute
)

// Environment variable defaults
const (
	DefaultPort          = "8080"
	DefaultLogLevel      = "INFO"
	DefaultLogFormat     = "json"
	DefaultEnvironment   = "development"
	DefaultDBUser        = "postgres"
	DefaultDBPassword    = "postgres"
	DefaultDBHost        = "localhost"
	DefaultDBPort        = "5432"
	DefaultDBName        = "rollbox"
	DefaultCatalogPath   = "configs/catalog.json"
	DefaultMigrationsDir = "migrations"
)
