package config

import "time"

// Environment defaults
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "INFO"
	DefaultLogFormat   = "json"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"
	DefaultVersion     = "dev"

	DefaultDBUser = "postgres"
	DefaultDBHost = "localhost"
	DefaultDBPort = "5432"
	DefaultDBName = "darkframe"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultShutdownTimeout = 15 * time.Second
)

// Job defaults
const (
	DefaultFactoryRegenInterval = 60 * time.Second
	DefaultFlagMoveInterval     = 30 * time.Minute
	DefaultFlagAbandonThreshold = time.Hour
	DefaultFlagMaxStep          = 3
)

// Job names accepted in the JOBS_CONFIG file
const (
	jobKeyFactoryRegen = "factory_slot_regeneration"
	jobKeyFlagBot      = "flag_bot_manager"
)

// jobsSchemaName validates the JOBS_CONFIG file
const jobsSchemaName = "jobs.schema.json"
