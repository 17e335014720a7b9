package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvJobsWorkers     = "CLAUSEGUARD_JOBS_WORKERS"
	EnvJobsQueueSize   = "CLAUSEGUARD_JOBS_QUEUE_SIZE"
	EnvJobsMaxJobs     = "CLAUSEGUARD_JOBS_MAX_JOBS"
	EnvJobsHardTimeout = "CLAUSEGUARD_JOBS_HARD_TIMEOUT"
	EnvJobsSoftTimeout = "CLAUSEGUARD_JOBS_SOFT_TIMEOUT"
)

// JobsConfig holds analysis job pipeline settings.
type JobsConfig struct {
	Workers     int    `toml:"workers"`
	QueueSize   int    `toml:"queue_size"`
	MaxJobs     int    `toml:"max_jobs"`
	HardTimeout string `toml:"hard_timeout"`
	SoftTimeout string `toml:"soft_timeout"`
}

// HardTimeoutDuration returns HardTimeout as a time.Duration.
func (c *JobsConfig) HardTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.HardTimeout)
	return d
}

// SoftTimeoutDuration returns SoftTimeout as a time.Duration.
func (c *JobsConfig) SoftTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.SoftTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *JobsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *JobsConfig) Merge(overlay *JobsConfig) {
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.QueueSize != 0 {
		c.QueueSize = overlay.QueueSize
	}
	if overlay.MaxJobs != 0 {
		c.MaxJobs = overlay.MaxJobs
	}
	if overlay.HardTimeout != "" {
		c.HardTimeout = overlay.HardTimeout
	}
	if overlay.SoftTimeout != "" {
		c.SoftTimeout = overlay.SoftTimeout
	}
}

func (c *JobsConfig) loadDefaults() {
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.QueueSize == 0 {
		c.QueueSize = 64
	}
	if c.MaxJobs == 0 {
		c.MaxJobs = 1000
	}
	if c.HardTimeout == "" {
		c.HardTimeout = "30m"
	}
	if c.SoftTimeout == "" {
		c.SoftTimeout = "5m"
	}
}

func (c *JobsConfig) loadEnv() {
	if v := os.Getenv(EnvJobsWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv(EnvJobsQueueSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.QueueSize = n
		}
	}
	if v := os.Getenv(EnvJobsMaxJobs); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxJobs = n
		}
	}
	if v := os.Getenv(EnvJobsHardTimeout); v != "" {
		c.HardTimeout = v
	}
	if v := os.Getenv(EnvJobsSoftTimeout); v != "" {
		c.SoftTimeout = v
	}
}

func (c *JobsConfig) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue_size must be positive")
	}
	if c.MaxJobs < 1 {
		return fmt.Errorf("max_jobs must be positive")
	}

	hard, err := time.ParseDuration(c.HardTimeout)
	if err != nil {
		return fmt.Errorf("invalid hard_timeout: %w", err)
	}
	soft, err := time.ParseDuration(c.SoftTimeout)
	if err != nil {
		return fmt.Errorf("invalid soft_timeout: %w", err)
	}
	if soft >= hard {
		return fmt.Errorf("soft_timeout must be less than hard_timeout")
	}
	return nil
}
