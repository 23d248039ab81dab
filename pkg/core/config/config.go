// Package config loads calculator settings: built-in defaults, then an
// optional YAML file, then environment variables (a .env file is honoured).
package config

import (
	"os"
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"stock_potential/pkg/core/equity"
)

// DefaultPath is read when CALCULATOR_CONFIG is unset. A missing file is not an error.
const DefaultPath = "config/calculator.yaml"

type Config struct {
	Port               string `yaml:"port"`
	Environment        string `yaml:"environment"`
	Debug              bool   `yaml:"debug"`
	CORSOrigins        string `yaml:"cors_origins"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
	// MaxRounds caps projection tables and charts.
	MaxRounds int `yaml:"max_rounds"`

	// Defaults seeds every new model. Fields left out of the file keep the
	// calculator's built-in starting values.
	Defaults equity.State `yaml:"defaults"`

	// Source is the file the settings came from, empty when none was found.
	Source string `yaml:"-"`
}

var portPattern = regexp.MustCompile(`^[0-9]{1,5}$`)

// Default returns the settings used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		Port:               "8080",
		Environment:        "development",
		CORSOrigins:        "*",
		RateLimitPerMinute: 120,
		MaxRounds:          equity.DefaultMaxRounds,
		Defaults:           equity.Defaults(),
	}
}

// Load builds the configuration. path may be empty, in which case
// CALCULATOR_CONFIG or DefaultPath is used.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	if path == "" {
		path = getEnv("CALCULATOR_CONFIG", DefaultPath)
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
		cfg.Source = path
	case os.IsNotExist(err):
	default:
		return nil, errors.Wrapf(err, "read %s", path)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.CORSOrigins = getEnv("CORS_ORIGINS", c.CORSOrigins)

	if v := os.Getenv("DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "DEBUG")
		}
		c.Debug = debug
	}
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "RATE_LIMIT_PER_MINUTE")
		}
		c.RateLimitPerMinute = n
	}
	return nil
}

// Validate checks server settings only; model defaults are free-form numbers.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Match(portPattern)),
		validation.Field(&c.Environment, validation.Required, validation.In("development", "test", "production")),
		validation.Field(&c.CORSOrigins, validation.Required),
		validation.Field(&c.RateLimitPerMinute, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxRounds, validation.Required, validation.Min(1), validation.Max(1000)),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
