package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port              int
	LogLevel          string
	LogFormat         string
	Environment       string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBConnMaxIdleTime time.Duration
	DBConnMaxLifetime time.Duration
	CatalogPath       string
	MigrationsDir     string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:      getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:     getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment:   getEnv("ENVIRONMENT", DefaultEnvironment),
		DBUser:        getEnv("DB_USER", DefaultDBUser),
		DBPassword:    getEnv("DB_PASSWORD", DefaultDBPassword),
		DBHost:        getEnv("DB_HOST", DefaultDBHost),
		DBPort:        getEnv("DB_PORT", DefaultDBPort),
		DBName:        getEnv("DB_NAME", DefaultDBName),
		CatalogPath:   getEnv("CATALOG_PATH", DefaultCatalogPath),
		MigrationsDir: getEnv("MIGRATIONS_DIR", DefaultMigrationsDir),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	maxConns, err := getEnvInt("DB_MAX_CONNS", DefaultDBMaxConns)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxConns = maxConns

	idle, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", DefaultDBConnMaxIdleTime)
	if err != nil {
		return nil, err
	}
	cfg.DBConnMaxIdleTime = idle

	lifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", DefaultDBConnMaxLifetime)
	if err != nil {
		return nil, err
	}
	cfg.DBConnMaxLifetime = lifetime

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
