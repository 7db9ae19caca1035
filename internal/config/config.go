// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "ASSISTANT"

// Shell modes.
const (
	ModeAuto  = "auto"
	ModePlain = "plain"
	ModeTUI   = "tui"
)

// Config holds all assistant configuration.
type Config struct {
	Shell Shell `yaml:"shell"`
	Color Color `yaml:"color"`
	Log   Log   `yaml:"log"`
}

// Shell holds presentation settings for the interactive loop.
type Shell struct {
	Mode     string `yaml:"mode" validate:"oneof=auto plain tui"`
	Prompt   string `yaml:"prompt"`
	Greeting string `yaml:"greeting"`
}

// Color holds reply colors as lipgloss color strings (ANSI index or hex).
type Color struct {
	Enabled bool   `yaml:"enabled"`
	Success string `yaml:"success" validate:"required"`
	Error   string `yaml:"error" validate:"required"`
	Info    string `yaml:"info" validate:"required"`
	Prompt  string `yaml:"prompt" validate:"required"`
}

// Log holds diagnostic logging settings. An empty File disables logging.
type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Shell: Shell{
			Mode:     ModeAuto,
			Prompt:   "Enter a command: ",
			Greeting: "Welcome to the assistant bot!",
		},
		Color: Color{
			Enabled: true,
			Success: "10",
			Error:   "9",
			Info:    "12",
			Prompt:  "15",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped. Invalid YAML
// or unknown fields in any file is an error.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// envOverrides lists the supported variables. Pointers distinguish unset
// from empty.
type envOverrides struct {
	Mode     *string `envconfig:"MODE"`
	Prompt   *string `envconfig:"PROMPT"`
	Color    *bool   `envconfig:"COLOR"`
	LogFile  *string `envconfig:"LOG_FILE"`
	LogLevel *string `envconfig:"LOG_LEVEL"`
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ASSISTANT_MODE, ASSISTANT_PROMPT, ASSISTANT_COLOR,
// ASSISTANT_LOG_FILE, ASSISTANT_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	if env.Mode != nil {
		c.Shell.Mode = *env.Mode
	}
	if env.Prompt != nil {
		c.Shell.Prompt = *env.Prompt
	}
	if env.Color != nil {
		c.Color.Enabled = *env.Color
	}
	if env.LogFile != nil {
		c.Log.File = *env.LogFile
	}
	if env.LogLevel != nil {
		c.Log.Level = *env.LogLevel
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Shell *rawShell `yaml:"shell"`
	Color *rawColor `yaml:"color"`
	Log   *rawLog   `yaml:"log"`
}

type rawShell struct {
	Mode     *string `yaml:"mode"`
	Prompt   *string `yaml:"prompt"`
	Greeting *string `yaml:"greeting"`
}

type rawColor struct {
	Enabled *bool   `yaml:"enabled"`
	Success *string `yaml:"success"`
	Error   *string `yaml:"error"`
	Info    *string `yaml:"info"`
	Prompt  *string `yaml:"prompt"`
}

type rawLog struct {
	File  *string `yaml:"file"`
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if s := layer.Shell; s != nil {
		set(&c.Shell.Mode, s.Mode)
		set(&c.Shell.Prompt, s.Prompt)
		set(&c.Shell.Greeting, s.Greeting)
	}
	if col := layer.Color; col != nil {
		set(&c.Color.Enabled, col.Enabled)
		set(&c.Color.Success, col.Success)
		set(&c.Color.Error, col.Error)
		set(&c.Color.Info, col.Info)
		set(&c.Color.Prompt, col.Prompt)
	}
	if l := layer.Log; l != nil {
		set(&c.Log.File, l.File)
		set(&c.Log.Level, l.Level)
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
