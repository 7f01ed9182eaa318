package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/community"
	"github.com/LegacyCodeHQ/modgraph/depgraph/langsupport"
	"github.com/bmatcuk/doublestar/v4"
)

// Config is the top-level configuration struct for modgraph.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Root            string        `mapstructure:"root"`
	ImportMap       string        `mapstructure:"import_map"`
	Extensions      []string      `mapstructure:"extensions"`
	Aliases         []AliasConfig `mapstructure:"aliases"`
	TSConfig        string        `mapstructure:"tsconfig"`
	Scope           []string      `mapstructure:"scope"`
	Exclude         []string      `mapstructure:"exclude"`
	EntryPoints     []string      `mapstructure:"entry_points"`
	Workers         int           `mapstructure:"workers"`
	CacheSize       int           `mapstructure:"cache_size"`
	SharedThreshold int           `mapstructure:"shared_threshold"`
	Log             LogConfig     `mapstructure:"log"`
	Watch           WatchConfig   `mapstructure:"watch"`
}

// AliasConfig maps a specifier prefix to a project-relative directory.
// Aliases are a list rather than a map because viper lower-cases map keys.
type AliasConfig struct {
	Prefix string `mapstructure:"prefix"`
	Target string `mapstructure:"target"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WatchConfig holds watch server settings.
type WatchConfig struct {
	Port int `mapstructure:"port"`
}

// Default values.
const (
	DefaultRoot            = "."
	DefaultWorkers         = 0
	DefaultCacheSize       = langsupport.DefaultCacheSize
	DefaultSharedThreshold = community.DefaultSharedThreshold
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "text"
	DefaultWatchPort       = 4900
)

const maxPort = 65535

// Sentinel errors for configuration validation.
var (
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("workers must be non-negative")
	// ErrInvalidCacheSize indicates the cache size is not positive.
	ErrInvalidCacheSize = errors.New("cache_size must be positive")
	// ErrInvalidSharedThreshold indicates the shared threshold is not positive.
	ErrInvalidSharedThreshold = errors.New("shared_threshold must be positive")
	// ErrInvalidExtension indicates an extension without a leading dot.
	ErrInvalidExtension = errors.New("extensions must start with '.'")
	// ErrInvalidAlias indicates an alias with an empty prefix or target.
	ErrInvalidAlias = errors.New("aliases need a prefix and a target")
	// ErrInvalidScope indicates a malformed scope glob.
	ErrInvalidScope = errors.New("scope patterns must be valid globs")
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("log.level must be one of debug, info, warn, error")
	// ErrInvalidLogFormat indicates an unknown log format.
	ErrInvalidLogFormat = errors.New("log.format must be text or json")
	// ErrInvalidWatchPort indicates a port outside 0-65535.
	ErrInvalidWatchPort = errors.New("watch.port must be between 0 and 65535")
)

// AliasMap returns the aliases keyed by prefix.
func (c *Config) AliasMap() map[string]string {
	if len(c.Aliases) == 0 {
		return nil
	}
	aliases := make(map[string]string, len(c.Aliases))
	for _, alias := range c.Aliases {
		aliases[alias.Prefix] = alias.Target
	}
	return aliases
}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}

	if c.CacheSize <= 0 {
		return ErrInvalidCacheSize
	}

	if c.SharedThreshold <= 0 {
		return ErrInvalidSharedThreshold
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
		}
	}

	for _, alias := range c.Aliases {
		if alias.Prefix == "" || alias.Target == "" {
			return ErrInvalidAlias
		}
	}

	for _, pattern := range c.Scope {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: %q", ErrInvalidScope, pattern)
		}
	}

	return c.validateLog()
}

func (c *Config) validateLog() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return ErrInvalidLogLevel
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}

	if c.Watch.Port < 0 || c.Watch.Port > maxPort {
		return ErrInvalidWatchPort
	}

	return nil
}
