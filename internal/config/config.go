package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the service.
type Config struct {
	Port     string
	Env      string
	LogLevel string
	DB       DBConfig
}

// DBConfig holds database connection settings. ConnStr, when present,
// takes precedence over the individual fields.
type DBConfig struct {
	ConnStr  string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Load reads an optional .env file and resolves the configuration from
// environment variables with development-friendly defaults.
func Load() *Config {
	// A missing .env is fine in production; system env vars take over.
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),
		DB: DBConfig{
			ConnStr:  getEnv("DB_CONN_STR", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "fundflow"),
		},
	}
}

// getEnv returns the env var value or a fallback when unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
