package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is bumped whenever .env.example gains or renames
// a required variable
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be present before the server starts
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

const examplePassword = "change_this_secure_password"

// ValidateEnv reports a stale .env file or missing required variables
func ValidateEnv() error {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); v {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, name := range RequiredEnvVars {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and lists settings that work but
// are probably not intended
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if os.Getenv("DB_PASSWORD") == examplePassword {
		warn("DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if os.Getenv("DISCORD_TOKEN") == "" {
		warn("DISCORD_TOKEN is not set - level-up and boss notifications are disabled")
	}
	if path := os.Getenv("BALANCE_FILE"); path != "" {
		if _, err := os.Stat(path); err != nil {
			warn("BALANCE_FILE %s is not readable - startup will fail", path)
		}
	}
	if env := strings.ToLower(os.Getenv("ENVIRONMENT")); (env == "prod" || env == "production") &&
		!strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		warn("LOG_FORMAT is not json in %s", env)
	}

	return warnings, nil
}
