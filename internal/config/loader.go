package config

import (
	"fmt"
	"os"
	"strings"
)

// Config captures environment driven configuration values for the booking store.
type Config struct {
	DataDir  string
	LogLevel string
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for optional fields and reports every invalid
// entry in a single error rather than stopping at the first problem.
func Load() (Config, error) {
	cfg := Config{
		DataDir:  "./data",
		LogLevel: "info",
	}

	invalid := make([]string, 0, 1)

	if dir := strings.TrimSpace(os.Getenv("ROOMBOOK_DATA_DIR")); dir != "" {
		cfg.DataDir = dir
	}

	if level := strings.TrimSpace(os.Getenv("ROOMBOOK_LOG_LEVEL")); level != "" {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "warning", "error":
			cfg.LogLevel = strings.ToLower(level)
		default:
			invalid = append(invalid, "ROOMBOOK_LOG_LEVEL")
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
