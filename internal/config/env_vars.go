package config

import (
	"strings"
	"time"
)

type EnvVars struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	AppName         string        `env:"APP_NAME" envDefault:"PKCE Exchange"`
	Env             string        `env:"ENV" envDefault:"DEV"`
	BaseURL         string        `env:"BASE_URL" envDefault:"http://localhost:3000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`
	StoreTTL        time.Duration `env:"STORE_TTL" envDefault:"10m"`
	SuccessRedirect string        `env:"SUCCESS_REDIRECT" envDefault:"/?step=success"`
	FailureRedirect string        `env:"FAILURE_REDIRECT" envDefault:"/?step=failed"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	if strings.HasPrefix(e.Port, ":") {
		return e.Port
	}
	return ":" + e.Port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

// GetBaseURL returns the deployment base URL (e.g. "https://app.example.com").
// The default redirect URI is derived from it.
func (e EnvVars) GetBaseURL() string {
	return strings.TrimSuffix(e.BaseURL, "/")
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

func (e EnvVars) GetHTTPTimeout() time.Duration {
	return e.HTTPTimeout
}

// GetStoreTTL bounds how long a PKCE verifier or a sign-in result is kept.
func (e EnvVars) GetStoreTTL() time.Duration {
	return e.StoreTTL
}

func (e EnvVars) GetSuccessRedirect() string {
	return e.SuccessRedirect
}

func (e EnvVars) GetFailureRedirect() string {
	return e.FailureRedirect
}
