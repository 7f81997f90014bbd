// Package config loads server settings from defaults, an optional config
// file, and CPUSCHED_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "CPUSCHED"

// ServerConfig holds configuration for the cpusched server.
type ServerConfig struct {
	Addr           string // Listen address (default ":8080")
	LogLevel       string // Log level: debug, info, warn, error
	LogFormat      string // Log format: text, json
	DBPath         string // SQLite database path (default ~/.cpusched/cpusched.db, ":memory:" for testing)
	DefaultQuantum int    // Round-Robin quantum used when a request omits one

	RetentionMaxAge   time.Duration // Prune simulations older than this; 0 keeps them forever
	RetentionInterval time.Duration // How often the pruning sweep runs
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           ":8080",
		LogLevel:       "info",
		LogFormat:      "text",
		DefaultQuantum: 2,

		RetentionInterval: time.Minute,
	}
}

// Config keys, dotted as they appear in a YAML config file.
const (
	keyAddr      = "addr"
	keyLogLevel  = "log.level"
	keyLogFormat = "log.format"
	keyDBPath    = "db_path"
	keyQuantum   = "scheduler.round_robin.time_quantum"

	keyRetentionMaxAge   = "retention.max_age"
	keyRetentionInterval = "retention.interval"
)

// Load reads configuration layered over DefaultServerConfig. path may be
// empty, in which case only the environment is consulted. Environment
// variables use EnvPrefix and underscores, e.g.
// CPUSCHED_SCHEDULER_ROUND_ROBIN_TIME_QUANTUM.
func Load(path string) (ServerConfig, error) {
	v := viper.New()
	def := DefaultServerConfig()
	v.SetDefault(keyAddr, def.Addr)
	v.SetDefault(keyLogLevel, def.LogLevel)
	v.SetDefault(keyLogFormat, def.LogFormat)
	v.SetDefault(keyDBPath, def.DBPath)
	v.SetDefault(keyQuantum, def.DefaultQuantum)
	v.SetDefault(keyRetentionMaxAge, def.RetentionMaxAge)
	v.SetDefault(keyRetentionInterval, def.RetentionInterval)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return ServerConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := ServerConfig{
		Addr:           v.GetString(keyAddr),
		LogLevel:       v.GetString(keyLogLevel),
		LogFormat:      v.GetString(keyLogFormat),
		DBPath:         v.GetString(keyDBPath),
		DefaultQuantum: v.GetInt(keyQuantum),

		RetentionMaxAge:   v.GetDuration(keyRetentionMaxAge),
		RetentionInterval: v.GetDuration(keyRetentionInterval),
	}
	if cfg.DefaultQuantum <= 0 {
		return ServerConfig{}, fmt.Errorf("%s must be > 0, got %d", keyQuantum, cfg.DefaultQuantum)
	}
	if cfg.RetentionMaxAge < 0 || cfg.RetentionInterval <= 0 {
		return ServerConfig{}, fmt.Errorf("%s must be >= 0 and %s > 0", keyRetentionMaxAge, keyRetentionInterval)
	}
	return cfg, nil
}
