package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build reads
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be non-empty before Load runs
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
}

// Placeholders from .env.example
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// ValidateEnv checks the schema version and that every required variable is set
func ValidateEnv() error {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); v {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set (expected: %s)", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s", ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// envWarning flags a setting that loads fine but is probably a mistake
type envWarning struct {
	check   func() bool
	message string
}

var envWarnings = []envWarning{
	{
		check:   func() bool { return os.Getenv("DB_PASSWORD") == exampleDBPassword },
		message: "DB_PASSWORD is still the example value",
	},
	{
		check:   func() bool { return os.Getenv("API_KEY") == exampleAPIKey },
		message: "API_KEY is still the example value; generate one with: openssl rand -hex 32",
	},
	{
		check: func() bool {
			return getEnvAsDuration("FACTORY_REGEN_INTERVAL", DefaultFactoryRegenInterval) < DefaultFactoryRegenInterval/10
		},
		message: "FACTORY_REGEN_INTERVAL is very short and will scan factories constantly",
	},
	{
		check: func() bool {
			return getEnvAsDuration("FLAG_ABANDON_THRESHOLD", DefaultFlagAbandonThreshold) <
				getEnvAsDuration("FLAG_MOVE_INTERVAL", DefaultFlagMoveInterval)
		},
		message: "FLAG_ABANDON_THRESHOLD is shorter than FLAG_MOVE_INTERVAL; unclaimed flags respawn before they get to move",
	},
}

// ValidateEnvWithWarnings runs ValidateEnv, then lists settings that look unsafe
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, w := range envWarnings {
		if w.check() {
			warnings = append(warnings, w.message)
		}
	}
	return warnings, nil
}
