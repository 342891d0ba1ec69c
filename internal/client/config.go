// Package client keeps a device-local copy of a moment in step with the API,
// falling back to local storage when the server cannot be reached.
package client

import (
	"fmt"
	"time"

	"momentzero/internal/i18n"

	"github.com/caarlos0/env/v11"
)

// Config controls where the client talks to and where it keeps local state.
type Config struct {
	APIURL    string        `env:"MOMENTZERO_API_URL"    envDefault:"http://localhost:8375/api"`
	StateFile string        `env:"MOMENTZERO_STATE_FILE" envDefault:".momentzero.yml"`
	Locale    string        `env:"MOMENTZERO_LOCALE"     envDefault:"en"`
	Timeout   time.Duration `env:"MOMENTZERO_TIMEOUT"    envDefault:"5s"`
}

// LoadConfig reads client configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return cfg, nil
}

// ResolvedLocale returns the configured locale, or the default when it is unsupported.
func (c Config) ResolvedLocale() i18n.Locale {
	l, _ := i18n.Parse(c.Locale)
	return l
}
