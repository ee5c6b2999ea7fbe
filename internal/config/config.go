// Package config provides persistent configuration for the hijri-cal CLI.
//
// Configuration is stored as YAML at ~/.config/hijri-cal/config.yaml
// (XDG-compliant) and every key can be overridden from the environment as
// HIJRI_CAL_<KEY>. The merge priority is: CLI flags > environment > config
// file > defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/smokyabdulrahman/hijri-cal/internal/api"
	"github.com/smokyabdulrahman/hijri-cal/internal/converter"
)

const (
	configDirName  = "hijri-cal"
	configFileName = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. HIJRI_CAL_SOURCE.
	EnvPrefix = "HIJRI_CAL"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"source",
	"calendar_method",
	"week_start",
	"time_format",
	"cache_dir",
	"data_dir",
	"watch_schedule",
	"tasbih_limit",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults).
type Config struct {
	Source         string `yaml:"source,omitempty" mapstructure:"source"`                   // "aladhan" or "tabular"
	CalendarMethod string `yaml:"calendar_method,omitempty" mapstructure:"calendar_method"` // Al Adhan calendarMethod
	WeekStart      string `yaml:"week_start,omitempty" mapstructure:"week_start"`           // "sunday" or "monday"
	TimeFormat     string `yaml:"time_format,omitempty" mapstructure:"time_format"`         // "12h" or "24h"
	CacheDir       string `yaml:"cache_dir,omitempty" mapstructure:"cache_dir"`
	DataDir        string `yaml:"data_dir,omitempty" mapstructure:"data_dir"`
	WatchSchedule  string `yaml:"watch_schedule,omitempty" mapstructure:"watch_schedule"` // standard 5-field cron spec
	TasbihLimit    int    `yaml:"tasbih_limit,omitempty" mapstructure:"tasbih_limit"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		Source:         converter.SourceAlAdhan,
		CalendarMethod: api.DefaultMethod,
		WeekStart:      "sunday",
		TimeFormat:     "24h",
		WatchSchedule:  "0 * * * *",
		TasbihLimit:    33,
	}
}

// WithDefaults returns a copy of c with unset keys filled from Defaults.
// Directory keys stay empty when unset; callers pick their own defaults.
func (c Config) WithDefaults() Config {
	d := Defaults()
	if c.Source == "" {
		c.Source = d.Source
	}
	if c.CalendarMethod == "" {
		c.CalendarMethod = d.CalendarMethod
	}
	if c.WeekStart == "" {
		c.WeekStart = d.WeekStart
	}
	if c.TimeFormat == "" {
		c.TimeFormat = d.TimeFormat
	}
	if c.WatchSchedule == "" {
		c.WatchSchedule = d.WatchSchedule
	}
	if c.TasbihLimit == 0 {
		c.TasbihLimit = d.TasbihLimit
	}
	return c
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk and applies environment overrides.
// A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path and applies
// environment overrides. Values are validated as if passed to Set.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for _, k := range ValidKeys {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("invalid config file %s: %w", path, err)
			}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadFile reads only the YAML file at path, without environment
// overrides. A missing file yields an empty Config.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks every non-empty key.
func (c *Config) Validate() error {
	for _, k := range ValidKeys {
		val, _ := c.Get(k)
		if val == "" {
			continue
		}
		scratch := Config{}
		if err := scratch.Set(k, val); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path. The file is replaced
// atomically and left readable only by the owner.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".hijri-cal-config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "source":
		v := strings.ToLower(value)
		if v != converter.SourceAlAdhan && v != converter.SourceTabular {
			return fmt.Errorf("invalid source %q: must be one of %s", value, strings.Join(converter.Sources, ", "))
		}
		c.Source = v
	case "calendar_method":
		if !api.ValidMethod(value) {
			return fmt.Errorf("invalid calendar_method %q: must be one of %s", value, api.MethodsHelp())
		}
		c.CalendarMethod = value
	case "week_start":
		v := strings.ToLower(value)
		if v != "sunday" && v != "monday" {
			return fmt.Errorf("invalid week_start %q: must be \"sunday\" or \"monday\"", value)
		}
		c.WeekStart = v
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "cache_dir":
		c.CacheDir = value
	case "data_dir":
		c.DataDir = value
	case "watch_schedule":
		if _, err := cron.ParseStandard(value); err != nil {
			return fmt.Errorf("invalid watch_schedule %q: %v", value, err)
		}
		c.WatchSchedule = value
	case "tasbih_limit":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid tasbih_limit %q: must be an integer", value)
		}
		if v < 1 {
			return fmt.Errorf("invalid tasbih_limit %q: must be at least 1", value)
		}
		c.TasbihLimit = v
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "source":
		return c.Source, nil
	case "calendar_method":
		return c.CalendarMethod, nil
	case "week_start":
		return c.WeekStart, nil
	case "time_format":
		return c.TimeFormat, nil
	case "cache_dir":
		return c.CacheDir, nil
	case "data_dir":
		return c.DataDir, nil
	case "watch_schedule":
		return c.WatchSchedule, nil
	case "tasbih_limit":
		if c.TasbihLimit == 0 {
			return "", nil
		}
		return strconv.Itoa(c.TasbihLimit), nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// ClockLayout returns the Go time layout for TimeFormat.
func (c *Config) ClockLayout() string {
	if c.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	out, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("cannot expand %q: %w", p, err)
	}
	return out, nil
}

// DataDirOrDefault returns the expanded data_dir, or
// $XDG_DATA_HOME/hijri-cal (~/.local/share/hijri-cal) when unset.
func (c *Config) DataDirOrDefault() (string, error) {
	if c.DataDir != "" {
		return ExpandPath(c.DataDir)
	}
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, configDirName), nil
}
