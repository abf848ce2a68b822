package config

import (
	"fmt"
	"os"
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

// requirements lists environment variables that must be set per environment.
// Development and test fall back to the embedded sqlite store and run
// without redis, so nothing is mandatory there.
var requirements = map[Environment][]string{
	Development: {},
	Test:        {},
	CI:          {"DATABASE_URL"},
	Production:  {"DATABASE_URL", "REDIS_ADDR"},
}

// ValidateConfig checks the configuration against the requirements of the
// current environment.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []string
	for _, key := range requirements[env] {
		if os.Getenv(key) == "" {
			errors = append(errors, fmt.Sprintf("required environment variable %s is not set", key))
		}
	}

	if cfg.RateLimitPerMinute < 1 {
		errors = append(errors, "RATE_LIMIT_PER_MINUTE must be 1 or greater")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}
	return nil
}
