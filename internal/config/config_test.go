package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SCHEMA_DIR", "SCHEMA_CACHE_MAX_VERSIONS", "PRELOAD_VERSIONS", "DEFAULT_VERSION",
		"MAX_DOCUMENT_BYTES", "METRICS_ADDR", "LOG_LEVEL", "LOG_FILE", "LOG_COMPRESS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Empty(t, cfg.SchemaDir)
	assert.Equal(t, 16, cfg.SchemaCacheMaxVersions)
	assert.Nil(t, cfg.PreloadVersions)
	assert.Empty(t, cfg.DefaultVersion)
	assert.Equal(t, int64(50<<20), cfg.MaxDocumentBytes)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogCompress)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SCHEMA_DIR", "/srv/gbfs/schemas")
	t.Setenv("SCHEMA_CACHE_MAX_VERSIONS", "4")
	t.Setenv("PRELOAD_VERSIONS", " 2.3, v3.0 ,,")
	t.Setenv("DEFAULT_VERSION", "2.3")
	t.Setenv("MAX_DOCUMENT_BYTES", "1024")
	t.Setenv("METRICS_ADDR", ":9090")
	t.Setenv("LOG_COMPRESS", "off")

	cfg := Load()
	assert.Equal(t, "/srv/gbfs/schemas", cfg.SchemaDir)
	assert.Equal(t, 4, cfg.SchemaCacheMaxVersions)
	assert.Equal(t, []string{"2.3", "v3.0"}, cfg.PreloadVersions)
	assert.Equal(t, "2.3", cfg.DefaultVersion)
	assert.Equal(t, int64(1024), cfg.MaxDocumentBytes)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.False(t, cfg.LogCompress)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("SCHEMA_CACHE_MAX_VERSIONS", "many")

	cfg := Load()
	assert.Equal(t, 16, cfg.SchemaCacheMaxVersions)
}

func TestConfig_Logging(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "json", LogFile: "/tmp/x.log", LogMaxSizeMB: 1, LogMaxBackups: 2, LogMaxAgeDays: 3, LogCompress: true}

	lc := cfg.Logging()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "json", lc.Format)
	assert.Equal(t, "/tmp/x.log", lc.FilePath)
	assert.Equal(t, 1, lc.MaxSizeMB)
	assert.Equal(t, 2, lc.MaxBackups)
	assert.Equal(t, 3, lc.MaxAgeDays)
	assert.True(t, lc.Compress)
}
