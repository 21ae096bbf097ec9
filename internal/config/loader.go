package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".charfang"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for charfang settings.
const envPrefix = "CHARFANG"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	// Schema-validate the raw file document. Environment overrides are
	// excluded on purpose: env values are strings and carry no YAML types.
	if used := viperCfg.ConfigFileUsed(); used != "" {
		schemaErr := validateConfigFile(used)
		if schemaErr != nil {
			return nil, fmt.Errorf("validate config schema: %w", schemaErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("stats.group_by", DefaultGroupBy)
	viperCfg.SetDefault("stats.include_merges", DefaultIncludeMerges)
	viperCfg.SetDefault("stats.limit", DefaultLimit)
	viperCfg.SetDefault("stats.branch", "")
	viperCfg.SetDefault("stats.languages", []string{})
	viperCfg.SetDefault("stats.format", DefaultFormat)
	viperCfg.SetDefault("stats.progress", DefaultProgress)
	viperCfg.SetDefault("log.json", false)

	viperCfg.SetDefault("cache.enabled", DefaultCacheEnabled)
	viperCfg.SetDefault("cache.dir", DefaultCacheDir)

	viperCfg.SetDefault("metrics.listen", "")

	viperCfg.SetDefault("log.level", DefaultLogLevel)
}
