package config

import (
	"fmt"
	"time"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"

	defaultQueryTimeout = 5 * time.Second
)

type DBConfig struct {
	Driver           string        `mapstructure:"driver"`
	ConnectionString string        `mapstructure:"connection_string"`
	QueryTimeout     time.Duration `mapstructure:"query_timeout"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if config.Driver != DriverSqlite && config.Driver != DriverPostgres {
		return fmt.Errorf("unsupported db driver: %q", config.Driver)
	}
	if config.QueryTimeout <= 0 {
		return fmt.Errorf("query_timeout must be positive")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"db.driver":            "DB_DRIVER",
		"db.connection_string": "DB_CONNECTION_STRING",
		"db.query_timeout":     "DB_QUERY_TIMEOUT",
	})
}
