package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatasetSource names where the reference network is loaded from
type DatasetSource string

const (
	SourcePostgres DatasetSource = "postgres"
	SourceSQLite   DatasetSource = "sqlite"
	SourceFile     DatasetSource = "file"
	SourceEmbedded DatasetSource = "embedded"
)

// Config holds all configuration for the fare API
type Config struct {
	Port           string
	AllowedOrigins []string

	// Reference network sources, in order of precedence
	DatabaseURL string
	SQLitePath  string
	NetworkFile string

	// Caches
	FareCacheSize   int
	StationCacheTTL time.Duration

	// Static frontend, served from / when set
	StaticDir string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8081"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_DATABASE", ""),
		NetworkFile: getEnv("NETWORK_FILE", ""),

		FareCacheSize:   getEnvInt("FARE_CACHE_SIZE", 1024),
		StationCacheTTL: time.Duration(getEnvInt("STATION_CACHE_TTL_SECONDS", 300)) * time.Second,

		StaticDir: getEnv("STATIC_DIR", ""),
	}
}

// Source reports which dataset source the configuration selects
func (c *Config) Source() DatasetSource {
	switch {
	case c.DatabaseURL != "":
		return SourcePostgres
	case c.SQLitePath != "":
		return SourceSQLite
	case c.NetworkFile != "":
		return SourceFile
	default:
		return SourceEmbedded
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
