package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads path and merges FRAMECAP_* environment overrides on top of
// the file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	dir := filepath.Dir(path)
	filename := filepath.Base(path)
	fileExt := filepath.Ext(filename)
	nameWithoutExt := strings.TrimSuffix(filename, fileExt)

	v.SetConfigName(nameWithoutExt)
	v.SetConfigType(strings.TrimPrefix(fileExt, "."))
	v.AddConfigPath(dir)

	v.SetEnvPrefix("FRAMECAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Promiscuous defaults true; without an explicit default an absent
	// key is indistinguishable from false after Unmarshal.
	v.SetDefault("promiscuous", true)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if cfg.Snaplen <= 0 {
		cfg.Snaplen = def.Snaplen
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = def.PollTimeout
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = def.QueueDepth
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
}
