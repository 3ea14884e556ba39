// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/usestring/gbfs-validator/internal/logging"
	"github.com/usestring/gbfs-validator/internal/registry"
)

// Defaults for values that are also referenced outside this package.
const (
	DefaultMaxDocumentBytes = 50 << 20 // 50 MiB
	DefaultFilterMaxResults = 500
)

// Config holds all configuration for the MCP server.
type Config struct {
	SchemaDir              string   // SCHEMA_DIR, default "" (embedded schemas)
	SchemaCacheMaxVersions int      // SCHEMA_CACHE_MAX_VERSIONS, default 16
	PreloadVersions        []string // PRELOAD_VERSIONS, comma separated, default none
	DefaultVersion         string   // DEFAULT_VERSION, default "" (detect from document)
	MaxDocumentBytes       int64    // MAX_DOCUMENT_BYTES, default 50 MiB
	FilterMaxResults       int      // FILTER_MAX_RESULTS, default 500
	MetricsAddr            string   // METRICS_ADDR, default "" (disabled)
	ShutdownTimeout        time.Duration

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		SchemaDir:              getEnvString("SCHEMA_DIR", ""),
		SchemaCacheMaxVersions: getEnvInt("SCHEMA_CACHE_MAX_VERSIONS", registry.DefaultMaxVersions),
		PreloadVersions:        getEnvList("PRELOAD_VERSIONS"),
		DefaultVersion:         getEnvString("DEFAULT_VERSION", ""),
		MaxDocumentBytes:       int64(getEnvInt("MAX_DOCUMENT_BYTES", DefaultMaxDocumentBytes)),
		FilterMaxResults:       getEnvInt("FILTER_MAX_RESULTS", DefaultFilterMaxResults),
		MetricsAddr:            getEnvString("METRICS_ADDR", ""),
		ShutdownTimeout:        getEnvDurationMs("SHUTDOWN_TIMEOUT_MS", 5000),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// Logging returns the logging section of the configuration.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		FilePath:   c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
		Compress:   c.LogCompress,
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
