package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/jrsteele09/sfmc-session-broker/internal/errors"
)

type Config interface {
	EnvConfig
	SFMCConfig
	LaasieConfig
	OAuthConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetLogLevel() string
	GetSecretKey() string
	GetSelfDomain() string
}

type mainConfig struct {
	EnvVars
	SFMC
	Laasie
	OAuth
	Security
}

// New loads the configuration from the environment and validates it.
// Any missing required value is an ErrInternalConfig.
func New() (Config, error) {
	var c mainConfig
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("[config New] %w: %w", errors.ErrInternalConfig, err)
	}
	return validate(c)
}

// NewFromEnvMap builds a configuration from the given variables instead of
// the process environment.
func NewFromEnvMap(vars map[string]string) (Config, error) {
	var c mainConfig
	if err := env.ParseWithOptions(&c, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("[config NewFromEnvMap] %w: %w", errors.ErrInternalConfig, err)
	}
	return validate(c)
}

func validate(c mainConfig) (Config, error) {
	for _, check := range []func() error{c.EnvVars.validate, c.SFMC.validate, c.Laasie.validate} {
		if err := check(); err != nil {
			return nil, fmt.Errorf("[config validate] %w: %w", errors.ErrInternalConfig, err)
		}
	}
	return c, nil
}
