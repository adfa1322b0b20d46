package config

import (
	"errors"
	"fmt"
	"time"
)

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	MetricsPort     int           `mapstructure:"metrics_port"`
	CorsOrigins     []string      `mapstructure:"cors_origins"`
	RateLimitMax    int           `mapstructure:"rate_limit_max"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Port <= 0 {
		errs = append(errs, fmt.Errorf("port must be positive"))
	}
	if config.MetricsPort == config.Port {
		errs = append(errs, fmt.Errorf("metrics_port must differ from port"))
	}
	if config.RateLimitMax <= 0 || config.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Errorf("rate limit must be positive"))
	}

	return errors.Join(errs...)
}

func (config ServerConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"server.port":         "PORT",
		"server.metrics_port": "METRICS_PORT",
		"server.cors_origins": "CORS_ORIGINS",
	})
}

type AuthConfig struct {
	SecretKey string        `mapstructure:"secret_key"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

func (config AuthConfig) validate() error {
	if config.SecretKey == "" {
		return fmt.Errorf("missing variable: secret_key")
	}
	return nil
}

func (config AuthConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"auth.secret_key": "SECRET_KEY",
		"auth.token_ttl":  "TOKEN_TTL",
	})
}
