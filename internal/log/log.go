// Package log implements structured logging on top of logrus with a
// pattern-based formatter and pluggable appenders. All diagnostics go
// to stderr (or a file appender) so stdout stays reserved for frame
// records.
package log

import (
	"sync"
)

type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})

	WithField(field string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger

	IsDebugEnabled() bool
}

// Config controls the global logger.
type Config struct {
	Level     string           `mapstructure:"level"`
	Pattern   string           `mapstructure:"pattern"`
	Time      string           `mapstructure:"time"`
	Appenders []AppenderConfig `mapstructure:"appenders"`
}

type AppenderConfig struct {
	Type    string                 `mapstructure:"type"`
	Options map[string]interface{} `mapstructure:"options"`
}

func DefaultConfig() *Config {
	return &Config{
		Level:   "info",
		Pattern: "%time [%level] %field %msg\n",
		Time:    "2006-01-02 15:04:05.000",
		Appenders: []AppenderConfig{
			{Type: "console"},
		},
	}
}

var (
	mu     sync.Mutex
	logger Logger
)

// Init builds the global logger from cfg. Later calls replace the
// previous logger, which is what a config reload wants.
func Init(cfg *Config) error {
	mu.Lock()
	defer mu.Unlock()
	return initByConfig(cfg)
}

// GetLogger returns the global logger, initializing it with defaults on
// first use so callers never see a nil logger.
func GetLogger() Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		if err := initByConfig(DefaultConfig()); err != nil {
			panic(err)
		}
	}
	return logger
}
