package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Journal drivers
const (
	JournalNone     = "none"
	JournalSQLite   = "sqlite"
	JournalPostgres = "postgres"
	JournalRedis    = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Gemini configuration
	GeminiAPIKey  string
	GeminiAPIURL  string
	GeminiModel   string
	GeminiTimeout time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string

	// CORS configuration, empty means every origin is allowed
	CORSAllowedOrigins []string

	// Journal configuration
	JournalDriver string
	JournalTTL    time.Duration
	SQLitePath    string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Archive configuration, empty bucket disables archiving
	S3BucketName string
	S3Prefix     string
	AWSRegion    string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// A missing .env file is fine; real deployments set the environment directly.
	if env == Development || env == Test {
		_ = godotenv.Load()
	}

	cfg := &Config{Environment: env}

	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.ServerPort = getEnv("SERVER_PORT", getEnv("PORT", "8080"))

	apiKey, err := readSecret("GEMINI_API_KEY", "gemini_api_key")
	if err != nil {
		return nil, fmt.Errorf("failed to load Gemini API key: %w", err)
	}
	cfg.GeminiAPIKey = apiKey
	cfg.GeminiAPIURL = getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com")
	cfg.GeminiModel = getEnv("GEMINI_MODEL", "gemini-2.5-flash")
	if cfg.GeminiTimeout, err = getDuration("GEMINI_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	defaultFormat := "text"
	if env == Production {
		defaultFormat = "json"
	}
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", defaultFormat)
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	cfg.JournalDriver = strings.ToLower(getEnv("JOURNAL_DRIVER", JournalNone))
	if cfg.JournalTTL, err = getDuration("JOURNAL_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	cfg.SQLitePath = getEnv("SQLITE_PATH", "mealmate.db")

	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBName = getEnv("DB_NAME", "mealmate")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	if cfg.DBUser, err = readSecret("DB_USER", "db_user"); err != nil {
		return nil, err
	}
	if cfg.DBPassword, err = readSecret("DB_PASSWORD", "db_password"); err != nil {
		return nil, err
	}

	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	if cfg.RedisPassword, err = readSecret("REDIS_PASSWORD", "redis_password"); err != nil {
		return nil, err
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.S3Prefix = getEnv("S3_PREFIX", "recipes/")
	cfg.AWSRegion = os.Getenv("AWS_REGION")

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// readSecret resolves a secret from NAME, then NAME_FILE, then the Docker
// secrets directory. A missing secret yields an empty string.
func readSecret(envName, secretName string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(envName)); v != "" {
		return v, nil
	}

	if path := os.Getenv(envName + "_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s_FILE: %w", envName, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, secretName)); err == nil {
		return strings.TrimSpace(string(data)), nil
	}
	return "", nil
}

func getEnv(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}

func getDuration(name string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
