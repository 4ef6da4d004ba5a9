package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/flagbot"
	"github.com/osse101/DarkFrame_Go/internal/harvest"
	"github.com/osse101/DarkFrame_Go/internal/validation"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=DEBUG INFO WARN ERROR"`
	LogFormat   string `validate:"oneof=json text"`
	LogDir      string
	Environment string `validate:"required"`
	Version     string
	APIKey      string `validate:"required"` // API key for admin endpoints

	// Proxies whose X-Forwarded-For header is trusted for client IPs
	TrustedProxies []string `validate:"dive,ip"`

	DBUser            string `validate:"required"`
	DBPassword        string
	DBHost            string `validate:"required"`
	DBPort            string `validate:"required,numeric"`
	DBName            string `validate:"required"`
	DBMaxConns        int    `validate:"min=1"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Harvest
	MapWidth      int     `validate:"min=1"`
	MapHeight     int     `validate:"min=1"`
	HarvestSplitX int     `validate:"min=0"`
	PerActorBonus float64 `validate:"gte=0"`
	CrowdCap      int     `validate:"min=1"`

	// Jobs
	JobsConfigPath       string
	FactoryRegenEnabled  bool
	FactoryRegenInterval time.Duration `validate:"gt=0"`
	FlagBotEnabled       bool
	FlagMoveInterval     time.Duration `validate:"gt=0"`
	FlagAbandonThreshold time.Duration `validate:"gt=0"`
	FlagMaxStep          int           `validate:"min=1"`

	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// JobsFile is the optional YAML file named by JOBS_CONFIG
type JobsFile struct {
	Jobs map[string]JobOverride `yaml:"jobs"`
}

// JobOverride replaces the env settings of one job. Durations use time.ParseDuration syntax.
type JobOverride struct {
	Enabled          *bool  `yaml:"enabled"`
	Interval         string `yaml:"interval"`
	AbandonThreshold string `yaml:"abandon_threshold"`
	MaxStep          int    `yaml:"max_step"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

//go:embed schemas/*.json
var schemaFiles embed.FS

var jobsSchema = newJobsSchema()

func newJobsSchema() validation.SchemaValidator {
	sub, err := fs.Sub(schemaFiles, "schemas")
	if err != nil {
		panic(err)
	}
	return validation.NewSchemaValidator(sub)
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvAsInt("PORT", DefaultPort),
		LogLevel:    strings.ToUpper(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:     getEnv("VERSION", DefaultVersion),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies: getEnvAsSlice("TRUSTED_PROXIES"),

		DBUser:            getEnv("DB_USER", DefaultDBUser),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBHost:            getEnv("DB_HOST", DefaultDBHost),
		DBPort:            getEnv("DB_PORT", DefaultDBPort),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		MapWidth:      getEnvAsInt("MAP_WIDTH", domain.DefaultMapWidth),
		MapHeight:     getEnvAsInt("MAP_HEIGHT", domain.DefaultMapHeight),
		HarvestSplitX: getEnvAsInt("HARVEST_SPLIT_X", domain.DefaultBucketSplitX),
		PerActorBonus: getEnvAsFloat("HARVEST_PER_ACTOR_BONUS", harvest.DefaultPerActorBonus),
		CrowdCap:      getEnvAsInt("HARVEST_CROWD_CAP", harvest.DefaultCrowdCap),

		JobsConfigPath:       getEnv("JOBS_CONFIG", ""),
		FactoryRegenEnabled:  getEnvAsBool("FACTORY_REGEN_ENABLED", true),
		FactoryRegenInterval: getEnvAsDuration("FACTORY_REGEN_INTERVAL", DefaultFactoryRegenInterval),
		FlagBotEnabled:       getEnvAsBool("FLAG_BOT_ENABLED", true),
		FlagMoveInterval:     getEnvAsDuration("FLAG_MOVE_INTERVAL", DefaultFlagMoveInterval),
		FlagAbandonThreshold: getEnvAsDuration("FLAG_ABANDON_THRESHOLD", DefaultFlagAbandonThreshold),
		FlagMaxStep:          getEnvAsInt("FLAG_MAX_STEP", DefaultFlagMaxStep),

		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	if cfg.JobsConfigPath != "" {
		if err := cfg.applyJobsFile(cfg.JobsConfigPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.HarvestSplitX > c.MapWidth {
		return fmt.Errorf("invalid configuration: HARVEST_SPLIT_X %d exceeds MAP_WIDTH %d", c.HarvestSplitX, c.MapWidth)
	}
	return nil
}

// applyJobsFile overlays per-job settings from a YAML file
func (c *Config) applyJobsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read jobs config %s: %w", path, err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse jobs config %s: %w", path, err)
	}
	if doc != nil {
		if err := jobsSchema.ValidateValue(doc, jobsSchemaName); err != nil {
			return fmt.Errorf("jobs config %s: %w", path, err)
		}
	}

	var file JobsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse jobs config %s: %w", path, err)
	}

	for name, o := range file.Jobs {
		switch name {
		case jobKeyFactoryRegen:
			if err := overrideDuration(&c.FactoryRegenInterval, o.Interval, name); err != nil {
				return err
			}
			if o.Enabled != nil {
				c.FactoryRegenEnabled = *o.Enabled
			}
		case jobKeyFlagBot:
			if err := overrideDuration(&c.FlagMoveInterval, o.Interval, name); err != nil {
				return err
			}
			if err := overrideDuration(&c.FlagAbandonThreshold, o.AbandonThreshold, name); err != nil {
				return err
			}
			if o.MaxStep > 0 {
				c.FlagMaxStep = o.MaxStep
			}
			if o.Enabled != nil {
				c.FlagBotEnabled = *o.Enabled
			}
		default:
			return fmt.Errorf("jobs config %s: unknown job %q", path, name)
		}
	}
	return nil
}

func overrideDuration(dst *time.Duration, raw, job string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("jobs config: %s: invalid duration %q: %w", job, raw, err)
	}
	*dst = d
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back on parse errors
func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsSlice splits a comma-separated variable, dropping empty entries
func getEnvAsSlice(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsDuration retrieves a duration environment variable, falling back on parse errors
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// HarvestConfig returns the harvest service settings
func (c *Config) HarvestConfig() harvest.Config {
	hc := harvest.DefaultConfig()
	hc.MapWidth = c.MapWidth
	hc.MapHeight = c.MapHeight
	hc.SplitX = c.HarvestSplitX
	hc.PerActorBonus = c.PerActorBonus
	hc.CrowdCap = c.CrowdCap
	return hc
}

// FlagConfig returns the flag bot settings
func (c *Config) FlagConfig() flagbot.Config {
	return flagbot.Config{
		MapWidth:         c.MapWidth,
		MapHeight:        c.MapHeight,
		MoveInterval:     c.FlagMoveInterval,
		AbandonThreshold: c.FlagAbandonThreshold,
		MaxStep:          c.FlagMaxStep,
	}
}
