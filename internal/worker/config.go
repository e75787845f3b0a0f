package worker

import (
	"fmt"
	"time"
)

// Config holds the configuration for the background task pool.
type Config struct {
	// Concurrency is the number of goroutines draining the queue.
	// Default: 2
	Concurrency int

	// QueueSize bounds how many tasks may wait for a free goroutine.
	// Submissions beyond it are dropped.
	// Default: 64
	QueueSize int

	// TaskTimeout is the maximum time a single task is allowed to run.
	// Its context is canceled when the timeout elapses.
	// Default: 30 seconds
	TaskTimeout time.Duration

	// ShutdownTimeout is how long Stop waits for queued and running tasks.
	// Default: 10 seconds
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Concurrency:     2,
		QueueSize:       64,
		TaskTimeout:     30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Concurrency > 100 {
		return fmt.Errorf("concurrency too high (max 100), got %d", c.Concurrency)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue size must be at least 1, got %d", c.QueueSize)
	}
	if c.TaskTimeout <= 0 {
		return fmt.Errorf("task timeout must be positive, got %v", c.TaskTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %v", c.ShutdownTimeout)
	}
	return nil
}
