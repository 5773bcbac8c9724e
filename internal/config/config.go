// Package config loads server settings from the environment, with a
// .env file honored in development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Addr         string // listen address, e.g. ":8080"
	DBPath       string // sqlite database path
	DailySalt    string // HMAC salt for the daily deal seed
	HistoryLimit int    // max undo snapshots per session
	LogLevel     string // logrus level name
}

// FromEnv loads configuration from environment variables, falling back
// to defaults when unset. A .env file in the working directory is
// loaded first if present.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Addr:         getEnv("ADDR", ":8080"),
		DBPath:       getEnv("DB_PATH", "./data/solitaire.db"),
		DailySalt:    getEnv("DAILY_SALT", "plokmin-daily"),
		HistoryLimit: getEnvInt("HISTORY_LIMIT", 128),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
