package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Abhi1565/JobHunt-backend/internal/apperr"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Logger        LoggerConfig        `mapstructure:"logger"`
	DB            DBConfig            `mapstructure:"db"`
	Server        ServerConfig        `mapstructure:"server"`
	Auth          AuthConfig          `mapstructure:"auth"`
	SMTP          SMTPConfig          `mapstructure:"smtp"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Jobs          JobsConfig          `mapstructure:"jobs"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type section interface {
	bindEnvironmentVariables() error
}

var configFile = "./configs/config.yaml"

// Get loads the configuration and terminates the process when it is unusable.
func Get() *Config {
	config, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return config
}

// Load resolves the config file from CONFIG_PATH, or the test-relative path when MODE=test.
func Load() (*Config, error) {
	file := configFile
	if value, _ := os.LookupEnv("MODE"); value == "test" {
		file = "../../configs/config.yaml"
	}
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		file = value
	}

	config, err := loadConfig(file)
	if err != nil {
		return nil, apperr.FatalConfig(err)
	}
	return config, nil
}

func loadConfig(file string) (*Config, error) {

	viper.SetConfigFile(file)
	viper.AutomaticEnv()
	setDefaults()

	err := bindEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("logger.log_level", string(LevelInfo))
	viper.SetDefault("logger.output_file", "./logs/errors.log")
	viper.SetDefault("logger.app_name", "jobhunt-backend")

	viper.SetDefault("db.driver", DriverSqlite)
	viper.SetDefault("db.query_timeout", defaultQueryTimeout)

	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.metrics_port", 9090)
	viper.SetDefault("server.rate_limit_max", 100)
	viper.SetDefault("server.rate_limit_window", "1m")
	viper.SetDefault("server.shutdown_timeout", "10s")

	viper.SetDefault("auth.token_ttl", "24h")

	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.app_name", "JobHunt")
	viper.SetDefault("smtp.max_per_second", 5)

	viper.SetDefault("notifications.mode", string(NotificationsAsync))
	viper.SetDefault("notifications.send_timeout", "30s")

	viper.SetDefault("jobs.archive_schedule", "@every 15m")
	viper.SetDefault("jobs.orphan_cleanup", true)

	viper.SetDefault("redis.channel", "application-status")
}

func bindEnvironmentVariables() error {
	var errs []error

	sections := map[string]section{
		"LoggerConfig":        LoggerConfig{},
		"DBConfig":            DBConfig{},
		"ServerConfig":        ServerConfig{},
		"AuthConfig":          AuthConfig{},
		"SMTPConfig":          SMTPConfig{},
		"NotificationsConfig": NotificationsConfig{},
		"JobsConfig":          JobsConfig{},
		"RedisConfig":         RedisConfig{},
	}

	for name, s := range sections {
		if err := s.bindEnvironmentVariables(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Server.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := config.Auth.validate(); err != nil {
		errs = append(errs, fmt.Errorf("AuthConfig: %w", err))
	}

	if err := config.Notifications.validate(); err != nil {
		errs = append(errs, fmt.Errorf("NotificationsConfig: %w", err))
	}

	if config.Notifications.Mode != NotificationsDisabled {
		if err := config.SMTP.validate(); err != nil {
			errs = append(errs, fmt.Errorf("SMTPConfig: %w", err))
		}
	}

	if err := config.Jobs.validate(); err != nil {
		errs = append(errs, fmt.Errorf("JobsConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindAll(bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
