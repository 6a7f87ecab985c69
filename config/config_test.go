package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable LoadConfig reads so the host environment
// cannot leak into a test.
func isolate(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"CI", "ENV", "SERVER_HOST", "SERVER_PORT", "PORT",
		"GEMINI_API_KEY", "GEMINI_API_KEY_FILE", "GEMINI_API_URL", "GEMINI_MODEL", "GEMINI_TIMEOUT",
		"LOG_LEVEL", "LOG_FORMAT", "CORS_ALLOWED_ORIGINS",
		"JOURNAL_DRIVER", "JOURNAL_TTL", "SQLITE_PATH",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_USER_FILE", "DB_PASSWORD", "DB_PASSWORD_FILE", "DB_NAME", "DB_SSL_MODE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_PASSWORD_FILE", "REDIS_DB", "REDIS_URL",
		"S3_BUCKET_NAME", "S3_PREFIX", "AWS_REGION",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 60*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, JournalNone, cfg.JournalDriver)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Nil(t, cfg.CORSAllowedOrigins)
}

func TestLoadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "  test-key ")
	t.Setenv("GEMINI_TIMEOUT", "15s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://example.com")
	t.Setenv("JOURNAL_DRIVER", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("S3_BUCKET_NAME", "recipes-archive")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, 15*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "https://example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, JournalRedis, cfg.JournalDriver)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "recipes-archive", cfg.S3BucketName)
	assert.Equal(t, "recipes/", cfg.S3Prefix)
}

func TestLoadConfigSecrets(t *testing.T) {
	isolate(t)

	keyFile := filepath.Join(t.TempDir(), "gemini")
	require.NoError(t, os.WriteFile(keyFile, []byte("from-file\n"), 0o600))
	t.Setenv("GEMINI_API_KEY_FILE", keyFile)

	secretsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("postpass\n"), 0o600))
	t.Setenv("SECRETS_DIR", secretsDir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.GeminiAPIKey)
	assert.Equal(t, "postpass", cfg.DBPassword)
}

func TestLoadConfigMissingKeyFile(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY_FILE", filepath.Join(t.TempDir(), "missing"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerPort:    "8080",
			LogFormat:     "json",
			GeminiTimeout: time.Second,
			JournalDriver: JournalNone,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.ServerPort = "http" }, wantErr: "SERVER_PORT"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "LOG_FORMAT"},
		{name: "unknown journal", mutate: func(c *Config) { c.JournalDriver = "mongo" }, wantErr: "JOURNAL_DRIVER"},
		{name: "postgres without user", mutate: func(c *Config) {
			c.JournalDriver = JournalPostgres
			c.DBName = "mealmate"
		}, wantErr: "DB_USER"},
		{name: "sqlite without path", mutate: func(c *Config) { c.JournalDriver = JournalSQLite }, wantErr: "SQLITE_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
