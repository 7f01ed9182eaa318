package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".modgraph"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for modgraph settings.
const envPrefix = "MODGRAPH"

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

// Default returns the configuration used when no file or environment is set.
func Default() *Config {
	return &Config{
		Root:            DefaultRoot,
		Workers:         DefaultWorkers,
		CacheSize:       DefaultCacheSize,
		SharedThreshold: DefaultSharedThreshold,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Watch: WatchConfig{
			Port: DefaultWatchPort,
		},
	}
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("root", DefaultRoot)
	viperCfg.SetDefault("import_map", "")
	viperCfg.SetDefault("extensions", []string{})
	viperCfg.SetDefault("tsconfig", "")
	viperCfg.SetDefault("scope", []string{})
	viperCfg.SetDefault("exclude", []string{})
	viperCfg.SetDefault("entry_points", []string{})
	viperCfg.SetDefault("workers", DefaultWorkers)
	viperCfg.SetDefault("cache_size", DefaultCacheSize)
	viperCfg.SetDefault("shared_threshold", DefaultSharedThreshold)

	viperCfg.SetDefault("log.level", DefaultLogLevel)
	viperCfg.SetDefault("log.format", DefaultLogFormat)

	viperCfg.SetDefault("watch.port", DefaultWatchPort)
}
