package app

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIOrigin   string        // Optional: API origin override (default: http://127.0.0.1:8000)
	StateFile   string        // Optional: path to the local state database (default: $HOME/.tercera/state.db)
	Ephemeral   bool          // Optional: keep the session in memory only (default: false)
	HTTPTimeout time.Duration // Optional: transport timeout for API calls (default: 30s)
	LoginRate   int           // Optional: credential attempts per minute, 0 disables (default: 5)
	Env         string        // Environment (dev, staging, prod) (default: prod)
	LogLevel    string        // Log level (debug, info, warn, error) (default: warn)
	LogFormat   string        // Log format (json, text) (default: json)
}

// LoadConfig reads the environment, after merging a .env file from the
// working directory if there is one. Real environment variables win.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		APIOrigin:   getEnvOrDefault("TERCERA_API_ORIGIN", os.Getenv("REACT_APP_API_ORIGIN")),
		StateFile:   getEnvOrDefault("TERCERA_STATE_FILE", defaultStateFile()),
		Ephemeral:   getEnvBoolOrDefault("TERCERA_EPHEMERAL", false),
		HTTPTimeout: getEnvDurationOrDefault("TERCERA_HTTP_TIMEOUT", 30*time.Second),
		LoginRate:   getEnvIntOrDefault("TERCERA_LOGIN_RATE", 5),
		Env:         getEnvOrDefault("ENV", "prod"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "tercera.db"
	}
	return filepath.Join(home, ".tercera", "state.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "45s", "1m")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
