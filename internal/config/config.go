// Package config loads runtime configuration from the environment.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/imrishuroy/go-attendance-punch/internal/attendance"
)

const defaultListenAddr = ":8080"

// Config holds the settings shared by the api and worker binaries.
type Config struct {
	TableName        string // TABLE_NAME, defaults to AttendanceTable
	RootPath         string // ROOT_PATH, API Gateway stage prefix such as /Prod
	RunLocal         bool   // RUN_LOCAL=true serves HTTP directly instead of Lambda
	ListenAddr       string // LISTEN_ADDR for local mode
	EventsQueueURL   string // PUNCH_EVENTS_QUEUE_URL, empty disables events
	MetricsNamespace string // METRICS_NAMESPACE, empty disables metrics
}

// Load reads a .env file when present and then the environment.
func Load() Config {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	return Config{
		TableName:        getenv("TABLE_NAME", attendance.DefaultTableName),
		RootPath:         normalizeRootPath(os.Getenv("ROOT_PATH")),
		RunLocal:         os.Getenv("RUN_LOCAL") == "true",
		ListenAddr:       getenv("LISTEN_ADDR", defaultListenAddr),
		EventsQueueURL:   os.Getenv("PUNCH_EVENTS_QUEUE_URL"),
		MetricsNamespace: os.Getenv("METRICS_NAMESPACE"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// normalizeRootPath turns "Prod/" or "/Prod/" into "/Prod"; "/" becomes "".
func normalizeRootPath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
