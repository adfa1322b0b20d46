package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

type JobsConfig struct {
	ArchiveSchedule string `mapstructure:"archive_schedule"`
	OrphanCleanup   bool   `mapstructure:"orphan_cleanup"`
}

func (config JobsConfig) validate() error {
	if _, err := cron.ParseStandard(config.ArchiveSchedule); err != nil {
		return fmt.Errorf("invalid archive_schedule %q: %w", config.ArchiveSchedule, err)
	}
	return nil
}

func (config JobsConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"jobs.archive_schedule": "ARCHIVE_SCHEDULE",
		"jobs.orphan_cleanup":   "ORPHAN_CLEANUP",
	})
}

// RedisConfig is optional; an empty URL disables status-change fan-out.
type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Channel string `mapstructure:"channel"`
}

func (config RedisConfig) Enabled() bool {
	return config.URL != ""
}

func (config RedisConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"redis.url":     "REDIS_URL",
		"redis.channel": "REDIS_CHANNEL",
	})
}
