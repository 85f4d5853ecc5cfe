// Package config loads the generator configuration from a YAML file and
// OPSCHEMA_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const (
	DefaultConfigPath = "opschema.yaml"
	EnvPrefix         = "OPSCHEMA_"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	// Packages are the Go package patterns scanned for API types.
	Packages []string `yaml:"packages" env:"PACKAGES" envSeparator:"," validate:"required,min=1,dive,required"`
	// Dir is the directory package patterns are resolved in.
	Dir string `yaml:"dir,omitempty" env:"DIR"`
	// Output is the schema file written by the gen command, relative to
	// OutputDir.
	Output    string `yaml:"output" env:"OUTPUT" envDefault:"schema.json" validate:"required"`
	OutputDir string `yaml:"output_dir,omitempty" env:"OUTPUT_DIR" envDefault:"."`

	Concurrency int    `yaml:"concurrency" env:"CONCURRENCY" envDefault:"4" validate:"min=1,max=256"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	JSONLog     bool   `yaml:"json_log" env:"JSON_LOG" envDefault:"false"`

	// ScalarMappings maps a named Go type (pkg.Name) to a custom scalar.
	ScalarMappings map[string]string `yaml:"scalar_mappings,omitempty" env:"SCALAR_MAPPINGS"`
}

// SlogLevel returns LogLevel as a slog level. Unknown levels map to info.
func (c *Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Validate checks the config against its field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

type LoadResult struct {
	Config Config

	// DefaultLoaded is false when no path was given and the default config
	// file does not exist.
	DefaultLoaded bool
}

// Load reads the configuration. Environment variables (including .env and
// .env.local files in the working directory) provide defaults; the YAML
// file at configFilePath is applied on top, with ${VAR} references
// expanded. An empty configFilePath means OPSCHEMA_CONFIG_PATH or
// DefaultConfigPath; only a missing default file is tolerated. The result
// is validated.
func Load(configFilePath string) (*LoadResult, error) {
	res, err := Read(configFilePath)
	if err != nil {
		return nil, err
	}
	if err := res.Config.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// Read is Load without validation, for callers that apply overrides of
// their own before calling Validate.
func Read(configFilePath string) (*LoadResult, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg := &LoadResult{DefaultLoaded: true}

	if err := env.ParseWithOptions(&cfg.Config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("could not parse environment: %w", err)
	}

	if configFilePath == "" {
		configFilePath = os.Getenv(EnvPrefix + "CONFIG_PATH")
		if configFilePath == "" {
			configFilePath = DefaultConfigPath
		}
	}

	isDefaultConfigPath := configFilePath == DefaultConfigPath
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if !isDefaultConfigPath || !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read config file %s: %w", configFilePath, err)
		}
		cfg.DefaultLoaded = false
	}

	if data != nil {
		expanded := os.ExpandEnv(string(data))
		if err := yaml.UnmarshalWithOptions([]byte(expanded), &cfg.Config, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", configFilePath, err)
		}
	}

	return cfg, nil
}
