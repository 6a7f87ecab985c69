package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration for values the server cannot start with.
// A missing Gemini API key is allowed: the service then runs without a generator.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort)}.Error())
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{"LOG_FORMAT", "must be text or json"}.Error())
	}

	if cfg.GeminiTimeout <= 0 {
		errs = append(errs, ValidationError{"GEMINI_TIMEOUT", "must be positive"}.Error())
	}

	switch cfg.JournalDriver {
	case JournalNone:
	case JournalSQLite:
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "required for the sqlite journal"}.Error())
		}
	case JournalPostgres:
		if cfg.DBUser == "" {
			errs = append(errs, ValidationError{"DB_USER", "required for the postgres journal"}.Error())
		}
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_NAME", "required for the postgres journal"}.Error())
		}
	case JournalRedis:
		if cfg.RedisURL == "" && cfg.RedisHost == "" {
			errs = append(errs, ValidationError{"REDIS_HOST", "required for the redis journal"}.Error())
		}
		if cfg.JournalTTL <= 0 {
			errs = append(errs, ValidationError{"JOURNAL_TTL", "must be positive for the redis journal"}.Error())
		}
	default:
		errs = append(errs, ValidationError{"JOURNAL_DRIVER", fmt.Sprintf("unknown driver %q", cfg.JournalDriver)}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
