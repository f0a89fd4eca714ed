package log

import "gopkg.in/natefinch/lumberjack.v2"

// fileAppenderOptions configures a size-rotated log file. Sizes are in
// megabytes, ages in days.
type fileAppenderOptions struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// AddFile appends a rotating file appender backed by lumberjack.
func (m *multiWriter) AddFile(opt fileAppenderOptions) *multiWriter {
	return m.Add(&lumberjack.Logger{
		Filename:   opt.Filename,
		MaxSize:    opt.MaxSizeMB,
		MaxBackups: opt.MaxBackups,
		MaxAge:     opt.MaxAgeDays,
		Compress:   opt.Compress,
	})
}
