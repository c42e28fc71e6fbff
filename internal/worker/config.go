// Package worker consumes daily log change events and keeps stored totals
// consistent with their entries.
package worker

import (
	"time"
)

// Config holds configuration for the reconciliation worker.
type Config struct {
	// MaxOutstanding is the number of messages processed concurrently.
	// Default: 10
	MaxOutstanding int

	// MaxExtension is how long a message's ack deadline may be extended.
	// Default: 10 minutes
	MaxExtension time.Duration

	// Timeout bounds the handling of a single message.
	// Default: 30 seconds
	Timeout time.Duration
}

// DefaultConfig returns the default worker configuration.
func DefaultConfig() Config {
	return Config{
		MaxOutstanding: 10,
		MaxExtension:   10 * time.Minute,
		Timeout:        30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxOutstanding <= 0 {
		c.MaxOutstanding = d.MaxOutstanding
	}
	if c.MaxExtension <= 0 {
		c.MaxExtension = d.MaxExtension
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	return c
}
