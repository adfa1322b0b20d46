package config

import (
	"fmt"
	"strings"
	"time"
)

type NotificationsMode string

const (
	NotificationsAsync    NotificationsMode = "async"
	NotificationsSync     NotificationsMode = "sync"
	NotificationsDisabled NotificationsMode = "disabled"
)

type SMTPConfig struct {
	Host         string  `mapstructure:"host"`
	Port         int     `mapstructure:"port"`
	User         string  `mapstructure:"user"`
	Password     string  `mapstructure:"password"`
	From         string  `mapstructure:"from"`
	AppName      string  `mapstructure:"app_name"`
	MaxPerSecond float64 `mapstructure:"max_per_second"`
}

// Secure reports whether the connection uses implicit TLS.
func (config SMTPConfig) Secure() bool {
	return config.Port == 465
}

// Sender falls back to the SMTP user when no explicit from address is set.
func (config SMTPConfig) Sender() string {
	if config.From != "" {
		return config.From
	}
	return config.User
}

func (config SMTPConfig) validate() error {

	var missingFields []string

	if config.Host == "" {
		missingFields = append(missingFields, "host")
	}

	if config.User == "" {
		missingFields = append(missingFields, "user")
	}

	if config.Password == "" {
		missingFields = append(missingFields, "password")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.MaxPerSecond <= 0 {
		return fmt.Errorf("max_per_second must be positive")
	}

	return nil
}

func (config SMTPConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"smtp.host":     "SMTP_HOST",
		"smtp.port":     "SMTP_PORT",
		"smtp.user":     "SMTP_USER",
		"smtp.password": "SMTP_PASS",
		"smtp.from":     "SMTP_FROM",
		"smtp.app_name": "APP_NAME",
	})
}

type NotificationsConfig struct {
	Mode NotificationsMode `mapstructure:"mode"`
	// SendTimeout bounds a single delivery attempt.
	SendTimeout time.Duration `mapstructure:"send_timeout"`
}

func (config NotificationsConfig) validate() error {
	if config.SendTimeout <= 0 {
		return fmt.Errorf("send_timeout must be positive")
	}

	switch config.Mode {
	case NotificationsAsync, NotificationsSync, NotificationsDisabled:
		return nil
	default:
		return fmt.Errorf("unknown notifications mode: %q", config.Mode)
	}
}

func (config NotificationsConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"notifications.mode":         "NOTIFICATIONS_MODE",
		"notifications.send_timeout": "NOTIFICATIONS_SEND_TIMEOUT",
	})
}
