// Package config loads server configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server binary needs to start.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// DBPath selects the storage backend: "memory" (default) for the
	// in-memory store, ":memory:" or a file path for SQLite.
	DBPath string

	// JWTSecret signs session tokens.
	JWTSecret string

	// TokenDuration is how long issued tokens stay valid.
	TokenDuration time.Duration

	// TeacherUsername and TeacherSecret are the single teacher
	// credential pair the login gate accepts.
	TeacherUsername string
	TeacherSecret   string

	// AllowedOrigins for CORS (dashboard front-ends).
	AllowedOrigins []string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using system environment")
	}

	return &Config{
		Port:            GetIntEnv("PORT", 8080),
		DBPath:          GetEnv("DB_PATH", "memory"),
		JWTSecret:       GetEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenDuration:   GetDurationEnv("TOKEN_DURATION", 24*time.Hour),
		TeacherUsername: GetEnv("TEACHER_USERNAME", "teacher"),
		TeacherSecret:   GetEnv("TEACHER_SECRET", "teacher123"),
		AllowedOrigins:  []string{GetEnv("ALLOWED_ORIGIN", "http://localhost:5173")},
	}
}

// GetEnv returns the env var's value or fallback when unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetIntEnv returns the env var parsed as int or fallback.
func GetIntEnv(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("Invalid integer in environment, using fallback", "key", key, "value", value)
		return fallback
	}
	return n
}

// GetDurationEnv returns the env var parsed as a duration or fallback.
func GetDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration in environment, using fallback", "key", key, "value", value)
		return fallback
	}
	return d
}
