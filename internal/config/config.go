// Package config loads charfang settings from file, environment and
// defaults, and validates the result both structurally and against a
// JSON schema.
package config

import "errors"

// Config is the top-level configuration struct for charfang.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Stats   StatsConfig   `mapstructure:"stats"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
}

// StatsConfig holds defaults for the stats command.
type StatsConfig struct {
	GroupBy       string   `mapstructure:"group_by"`
	IncludeMerges bool     `mapstructure:"include_merges"`
	Limit         int      `mapstructure:"limit"`
	Branch        string   `mapstructure:"branch"`
	Languages     []string `mapstructure:"languages"`
	Format        string   `mapstructure:"format"`
	Progress      int      `mapstructure:"progress"`
}

// CacheConfig holds the on-disk patch cache settings.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Defaults applied when neither file nor environment set a value.
const (
	DefaultGroupBy       = "name"
	DefaultIncludeMerges = false
	DefaultLimit         = 0
	DefaultFormat        = "csv"
	DefaultProgress      = 0
	DefaultCacheEnabled  = true
	DefaultCacheDir      = ".charfang-cache"
	DefaultLogLevel      = "info"
)

// Sentinel errors for configuration validation.
var (
	// ErrInvalidGroupBy indicates an unsupported grouping mode.
	ErrInvalidGroupBy = errors.New(`stats.group_by must be "name" or "email"`)
	// ErrInvalidLimit indicates a negative commit limit.
	ErrInvalidLimit = errors.New("stats.limit must be non-negative")
	// ErrInvalidProgress indicates a negative progress interval.
	ErrInvalidProgress = errors.New("stats.progress must be non-negative")
	// ErrInvalidFormat indicates an unsupported output format.
	ErrInvalidFormat = errors.New(`stats.format must be one of "csv", "table", "yaml", "plot"`)
	// ErrInvalidLogLevel indicates an unsupported log level.
	ErrInvalidLogLevel = errors.New(`log.level must be one of "debug", "info", "warn", "error"`)
)

var (
	validGroupBy = map[string]struct{}{"name": {}, "email": {}}

	validFormat = map[string]struct{}{"csv": {}, "table": {}, "yaml": {}, "plot": {}}

	validLogLevel = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}
)

// Validate checks field values beyond what the schema expresses.
func (c *Config) Validate() error {
	if _, ok := validGroupBy[c.Stats.GroupBy]; !ok {
		return ErrInvalidGroupBy
	}

	if c.Stats.Limit < 0 {
		return ErrInvalidLimit
	}

	if c.Stats.Progress < 0 {
		return ErrInvalidProgress
	}

	if _, ok := validFormat[c.Stats.Format]; !ok {
		return ErrInvalidFormat
	}

	if _, ok := validLogLevel[c.Log.Level]; !ok {
		return ErrInvalidLogLevel
	}

	return nil
}
