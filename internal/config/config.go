// Package config loads runtime settings from the environment. Command-line
// flags are applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/chance/internal/quiz"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings.
type Config struct {
	// AdvanceDelay is how long answer feedback is shown before the next experiment.
	AdvanceDelay time.Duration `env:"CHANCE_ADVANCE_DELAY" envDefault:"1800ms"`

	// Sound enables the answer cue.
	Sound bool `env:"CHANCE_SOUND" envDefault:"true"`

	// LogFile is the path of the JSON log. Empty disables logging.
	LogFile string `env:"CHANCE_LOG_FILE"`

	LogLevel string `env:"CHANCE_LOG_LEVEL" envDefault:"info"`
}

// Default returns the built-in settings without consulting the environment.
func Default() Config {
	return Config{
		AdvanceDelay: quiz.DefaultAdvanceDelay,
		Sound:        true,
		LogLevel:     "info",
	}
}

// Load parses settings from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses settings from the given variables instead of the process
// environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings for values the application cannot use.
func (c Config) Validate() error {
	if c.AdvanceDelay < 0 {
		return fmt.Errorf("%w: advance delay %s is negative", ErrInvalidConfig, c.AdvanceDelay)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
