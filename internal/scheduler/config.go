package scheduler

import "time"

// Config controls scheduler intervals and batch sizes.
type Config struct {
	RunInterval    time.Duration
	EmailBatchSize int
	JobTimeout     time.Duration
}

func DefaultConfig() Config {
	return Config{
		RunInterval:    time.Minute,
		EmailBatchSize: 50,
		JobTimeout:     30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.EmailBatchSize <= 0 {
		c.EmailBatchSize = defaults.EmailBatchSize
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	return c
}
