package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/crimson-sun/actionlog/internal/transcript"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Outputs accepted in ACTIONLOG_OUTPUT.
var validOutputs = []string{"stdout", "file", "webhook", "sqlite", "slog"}

// Config holds all actionlog configuration.
type Config struct {
	Connector ConnectorConfig
	Engine    EngineConfig
	Output    OutputConfig

	LogLevel        string        `env:"ACTIONLOG_LOG_LEVEL"        envDefault:"info"`
	MetricsAddr     string        `env:"ACTIONLOG_METRICS_ADDR"`
	ShutdownTimeout time.Duration `env:"ACTIONLOG_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// ConnectorConfig holds event source settings.
type ConnectorConfig struct {
	Provider string            `env:"ACTIONLOG_CONNECTOR" envDefault:"file"`
	Source   string            `env:"ACTIONLOG_SOURCE"`
	Format   string            `env:"ACTIONLOG_FORMAT"`
	APIKey   string            `env:"ACTIONLOG_API_KEY"`
	Headers  map[string]string `env:"ACTIONLOG_HEADERS"`
}

// EngineConfig holds classification and suppression settings.
type EngineConfig struct {
	Enabled          bool `env:"ACTIONLOG_ENABLED"           envDefault:"true"`
	Projectiles      bool `env:"ACTIONLOG_PROJECTILES"       envDefault:"false"`
	DebounceWindow   int  `env:"ACTIONLOG_DEBOUNCE_WINDOW"   envDefault:"10"`
	DebounceCapacity int  `env:"ACTIONLOG_DEBOUNCE_CAPACITY" envDefault:"512"`
	ToggleSuppress   int  `env:"ACTIONLOG_TOGGLE_SUPPRESS"   envDefault:"3"`
	ForgetOnDespawn  bool `env:"ACTIONLOG_FORGET_ON_DESPAWN" envDefault:"false"`
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Outputs     []string `env:"ACTIONLOG_OUTPUT"        envDefault:"stdout" envSeparator:","`
	JSON        bool     `env:"ACTIONLOG_JSON"`
	Pretty      bool     `env:"ACTIONLOG_PRETTY"`
	FilePath    string   `env:"ACTIONLOG_FILE_PATH"`
	FileMaxSize int64    `env:"ACTIONLOG_FILE_MAX_SIZE"`
	DBPath      string   `env:"ACTIONLOG_DB_PATH"`
	WebhookURL  string   `env:"ACTIONLOG_WEBHOOK_URL"`
}

// Load reads configuration from environment variables with defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Output.Outputs = normalizeList(cfg.Output.Outputs)
	return cfg, nil
}

// Has reports whether the named output is enabled.
func (c OutputConfig) Has(name string) bool {
	return slices.Contains(c.Outputs, name)
}

// Validate checks that the configuration is usable, reporting every problem.
func (c Config) Validate() error {
	var errs []error

	if c.Engine.DebounceWindow < 1 {
		errs = append(errs, fmt.Errorf("debounce window must be >= 1, got %d", c.Engine.DebounceWindow))
	}
	if c.Engine.DebounceCapacity < 1 {
		errs = append(errs, fmt.Errorf("debounce capacity must be >= 1, got %d", c.Engine.DebounceCapacity))
	}
	if c.Engine.ToggleSuppress < 1 {
		errs = append(errs, fmt.Errorf("toggle suppress must be >= 1, got %d", c.Engine.ToggleSuppress))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}

	if c.Connector.Format != "" {
		if _, err := transcript.ParseFormat(c.Connector.Format); err != nil {
			errs = append(errs, err)
		}
	}

	if len(c.Output.Outputs) == 0 {
		errs = append(errs, errors.New("at least one output is required"))
	}
	for _, o := range c.Output.Outputs {
		if !slices.Contains(validOutputs, o) {
			errs = append(errs, fmt.Errorf("unknown output %q (valid: %s)", o, strings.Join(validOutputs, ", ")))
		}
	}
	if c.Output.Has("file") && c.Output.FilePath == "" {
		errs = append(errs, errors.New("ACTIONLOG_FILE_PATH is required for the file output"))
	}
	if c.Output.Has("sqlite") && c.Output.DBPath == "" {
		errs = append(errs, errors.New("ACTIONLOG_DB_PATH is required for the sqlite output"))
	}
	if c.Output.Has("webhook") && c.Output.WebhookURL == "" {
		errs = append(errs, errors.New("ACTIONLOG_WEBHOOK_URL is required for the webhook output"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout))
	}
	if c.Output.FileMaxSize < 0 {
		errs = append(errs, fmt.Errorf("file max size must be >= 0, got %d", c.Output.FileMaxSize))
	}

	return errors.Join(errs...)
}

// normalizeList lowercases, trims and drops empty entries.
func normalizeList(in []string) []string {
	out := in[:0]
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
