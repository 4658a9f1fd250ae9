package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config interface {
	EnvConfig
	CorsConfig
	OAuthConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
	GetLogLevel() string
	GetHTTPTimeout() time.Duration
	GetStoreTTL() time.Duration
	GetSuccessRedirect() string
	GetFailureRedirect() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	OAuth
}

// New loads the configuration from the process environment.
func New() (Config, error) {
	c := mainConfig{}
	if err := env.Parse(&c.EnvVars); err != nil {
		return nil, fmt.Errorf("[config New] parse env vars: %w", err)
	}
	if err := env.Parse(&c.OAuth); err != nil {
		return nil, fmt.Errorf("[config New] parse oauth settings: %w", err)
	}
	return c, nil
}
