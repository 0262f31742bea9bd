// Package config loads TaskCraft settings from .taskcraft/config.yaml and
// TASKCRAFT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/steveyegge/taskcraft/internal/deduplication"
	"github.com/steveyegge/taskcraft/internal/logging"
	"github.com/steveyegge/taskcraft/internal/types"
)

// EnvPrefix is prepended to every environment override, e.g. TASKCRAFT_LOGGER_LEVEL
const EnvPrefix = "TASKCRAFT"

// FileName is the config file looked up inside the project directory
const FileName = "config.yaml"

// Config is the full application configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Dedup    DedupConfig    `mapstructure:"dedup"`
	Synonyms SynonymsConfig `mapstructure:"synonyms"`
	Theme    string         `mapstructure:"theme"`
}

// DatabaseConfig locates the SQLite file
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggerConfig mirrors logging.Config
type LoggerConfig struct {
	Level        string `mapstructure:"level"`
	Mode         string `mapstructure:"mode"`
	Encoding     string `mapstructure:"encoding"`
	ColorEnabled bool   `mapstructure:"color_enabled"`
}

// DedupConfig mirrors deduplication.Config
type DedupConfig struct {
	TaskThreshold     float64 `mapstructure:"task_threshold"`
	DeferredThreshold float64 `mapstructure:"deferred_threshold"`
	UseSynonyms       bool    `mapstructure:"use_synonyms"`
	CacheSize         int     `mapstructure:"cache_size"`
}

// SynonymsConfig points at an optional replacement synonym table
type SynonymsConfig struct {
	File string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	dedup := deduplication.DefaultConfig()
	logCfg := logging.DefaultConfig()

	v.SetDefault("database.path", "")
	v.SetDefault("logger.level", logCfg.Level)
	v.SetDefault("logger.mode", logCfg.Mode)
	v.SetDefault("logger.encoding", logCfg.Encoding)
	v.SetDefault("logger.color_enabled", logCfg.ColorEnabled)
	v.SetDefault("dedup.task_threshold", dedup.TaskThreshold)
	v.SetDefault("dedup.deferred_threshold", dedup.DeferredThreshold)
	v.SetDefault("dedup.use_synonyms", dedup.UseSynonyms)
	v.SetDefault("dedup.cache_size", dedup.CacheSize)
	v.SetDefault("synonyms.file", "")
	v.SetDefault("theme", string(types.ThemeLight))
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads configuration. With an explicit path the file must exist;
// otherwise .taskcraft/config.yaml and ./config.yaml are tried and a missing
// file just means defaults. Environment variables override both.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.AddConfigPath(".taskcraft")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or environment is present
func Default() *Config {
	cfg := &Config{}
	// decoding viper's own defaults cannot fail
	_ = newViperDefaultsOnly().Unmarshal(cfg)
	return cfg
}

func newViperDefaultsOnly() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// Validate checks every section
func (c *Config) Validate() error {
	if err := c.LoggingConfig().Validate(); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	if err := c.DedupConfig().Validate(); err != nil {
		return fmt.Errorf("dedup: %w", err)
	}
	if c.Theme != "" && !types.Theme(c.Theme).IsValid() {
		return fmt.Errorf("theme: invalid value %q (expected light or dark)", c.Theme)
	}
	return nil
}

// LoggingConfig converts the logger section for logging.New
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:        c.Logger.Level,
		Mode:         c.Logger.Mode,
		Encoding:     c.Logger.Encoding,
		ColorEnabled: c.Logger.ColorEnabled,
	}
}

// DedupConfig converts the dedup section for deduplication.NewDetector
func (c *Config) DedupConfig() deduplication.Config {
	return deduplication.Config{
		TaskThreshold:     c.Dedup.TaskThreshold,
		DeferredThreshold: c.Dedup.DeferredThreshold,
		UseSynonyms:       c.Dedup.UseSynonyms,
		CacheSize:         c.Dedup.CacheSize,
	}
}

// WriteDefault writes a config file holding the default values to path.
// It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViperDefaultsOnly()
	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
