package server

import (
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReadTimeoutSeconds bounds how long a request body may take to arrive.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"15"`
	// Environment is the deployment environment (development, production).
	Environment string `mapstructure:"environment" default:"production"`
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// ReadTimeout returns the read timeout, falling back to 15 seconds.
func (c Config) ReadTimeout() time.Duration {
	if c.ReadTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// IsValidEnvironment checks if the configured environment is known.
func (c Config) IsValidEnvironment() bool {
	switch c.Environment {
	case EnvDevelopment, EnvProduction:
		return true
	default:
		return false
	}
}

// RequiresApiKey reports whether requests must carry the API key.
// Production always does; development only when a key is configured.
func (c Config) RequiresApiKey() bool {
	return c.Environment != EnvDevelopment || c.ApiKey != ""
}
