// Package config loads server settings from the environment and an optional
// YAML file. Values present in the file win over the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/ssrkit/pkg/logger"
)

// Environments accepted in APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var (
	ErrInvalidEnv = errors.New("config: invalid environment")
	ErrReadFile   = errors.New("config: read file")
	ErrParse      = errors.New("config: parse")
)

// Config holds everything the server needs at startup.
type Config struct {
	Env             string        `env:"APP_ENV" envDefault:"production" yaml:"env"`
	Address         string        `env:"HTTP_ADDR" envDefault:":8080" yaml:"address"`
	Stylesheet      string        `env:"STYLESHEET_URL" envDefault:"https://cdn.simplecss.org/simple.min.css" yaml:"stylesheet"`
	RenderTimeout   time.Duration `env:"RENDER_TIMEOUT" envDefault:"0s" yaml:"render_timeout"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s" yaml:"shutdown_timeout"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info" yaml:"log_level"`
	SourceDir       string        `env:"SOURCE_DIR" envDefault:"web/src" yaml:"source_dir"`
	MetricsPath     string        `env:"METRICS_PATH" envDefault:"/metrics" yaml:"metrics_path"`

	Sentry logger.SentryConfig `yaml:"sentry"`
}

// Dev reports whether the server runs in development mode.
func (c Config) Dev() bool { return c.Env == EnvDevelopment }

// Validate checks values that have no sensible fallback.
func (c Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidEnv, c.Env, EnvDevelopment, EnvProduction)
	}
	if c.RenderTimeout < 0 || c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrParse)
	}
	return nil
}

// Load applies defaults and environment variables, then overlays the file at
// path when it is not empty, then validates.
func Load(path string) (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("%w: %w", ErrReadFile, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
		}
	}

	return cfg, cfg.Validate()
}
