// Package config loads replacer/demo settings from a YAML file, in the
// shape tuannm99-novasql/internal/config.go's NovaSqlConfig/LoadConfig
// used for the SQL engine, generalized to this module's settings.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// ReplacerConfig selects the policy and fixed capacity a demonstration
// buffer pool is constructed with. Policy/capacity are read once at
// startup; they are not live-reloadable (spec.md §4.3: "Constructed with
// N").
type ReplacerConfig struct {
	Policy   string `mapstructure:"policy"`
	Capacity int    `mapstructure:"capacity"`
	K        int    `mapstructure:"k"` // reserved for future LRU-K-style policies
}

// LogConfig controls the process-wide slog level, and is the one setting
// this package hot-reloads.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the top-level settings document.
type Config struct {
	Replacer ReplacerConfig `mapstructure:"replacer"`
	Log      LogConfig      `mapstructure:"log"`

	v *viper.Viper
}

// LoadConfig reads and unmarshals a YAML config file from the real
// filesystem.
func LoadConfig(path string) (*Config, error) {
	return loadConfig(path, afero.NewOsFs())
}

func loadConfig(path string, fs afero.Fs) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("replacer.policy", "clock")
	v.SetDefault("replacer.capacity", 128)
	v.SetDefault("replacer.k", 2)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	cfg.v = v
	return &cfg, nil
}

// Watch registers a callback that updates level whenever the config file
// changes on disk, so operators can adjust verbosity without restarting.
// The replacer's own policy and capacity are immutable once constructed.
func (c *Config) Watch(level *slog.LevelVar) {
	c.v.OnConfigChange(func(_ fsnotify.Event) {
		newLevel, err := ParseLevel(c.v.GetString("log.level"))
		if err != nil {
			slog.Error("config: invalid log level on reload", "error", err)
			return
		}
		level.Set(newLevel)
	})
	c.v.WatchConfig()
}

// ParseLevel maps the config's log.level string onto a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", s)
	}
}
