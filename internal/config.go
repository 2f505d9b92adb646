package internal

import (
	"expvar"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/0xRadioAc7iv/minicask/core"
)

// Config carries the tunables for a store and the tooling around it.
// The yaml tags cover the subset that belongs in a config file;
// runtime wiring such as the logger and counters is set in code.
type Config struct {
	DataFile string `yaml:"data_file"`
	LogLevel string `yaml:"log_level"`
	Metrics  bool   `yaml:"metrics"`

	Logger         *slog.Logger `yaml:"-"`
	BytesWritten   *expvar.Int  `yaml:"-"`
	RecordsWritten *expvar.Int  `yaml:"-"`
}

const DEFAULT_LOG_LEVEL = "info"

func DefaultConfig() *Config {
	return &Config{
		DataFile: core.DefaultFileName,
		LogLevel: DEFAULT_LOG_LEVEL,
	}
}

// LoadConfig reads a yaml file and overlays it on the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the file-loadable fields for values the store cannot
// run with.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// SlogLevel maps the configured level name onto slog's levels. Unknown
// names fall back to info; Validate catches them first on the load
// path.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
