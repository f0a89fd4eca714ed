// Package config defines the run configuration for a capture.
package config

import (
	"time"

	"github.com/netgrab/framecap/internal/filter"
	"github.com/netgrab/framecap/internal/log"
)

// Config is the full configuration of one capture run. It is built once
// per run and read-only afterwards.
type Config struct {
	Interface   string           `mapstructure:"interface"`
	Limit       int              `mapstructure:"limit"`
	Snaplen     int              `mapstructure:"snaplen"`
	Promiscuous bool             `mapstructure:"promiscuous"`
	PollTimeout time.Duration    `mapstructure:"poll_timeout"`
	QueueDepth  int              `mapstructure:"queue_depth"`
	Protocols   filter.Selection `mapstructure:"protocols"`
	Logger      *log.Config      `mapstructure:"logger"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Limit:       1,
		Snaplen:     65535,
		Promiscuous: true,
		PollTimeout: 200 * time.Millisecond,
		QueueDepth:  4096,
		Logger:      log.DefaultConfig(),
	}
}
