package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Locale   LocaleConfig   `mapstructure:"locale"`
	Output   OutputConfig   `mapstructure:"output"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DataConfig locates the export files
type DataConfig struct {
	Dir      string `mapstructure:"dir"`
	Timezone string `mapstructure:"timezone"` // location used for timestamps without an offset

	// Watch mode
	RefreshInterval time.Duration `mapstructure:"refresh_interval"` // 0 runs once
	MaxHistory      int           `mapstructure:"max_history"`
}

// AnalysisConfig selects which analyses run and how
type AnalysisConfig struct {
	Kinds []string `mapstructure:"kinds"` // "all" or analysis kind names
	TopN  int      `mapstructure:"top_n"`
	Seed  uint64   `mapstructure:"seed"` // 0 picks narrative variants at random
}

// LocaleConfig holds calendar formatting preferences
type LocaleConfig struct {
	Language string `mapstructure:"language"`
}

// OutputConfig holds terminal rendering preferences
type OutputConfig struct {
	Color string `mapstructure:"color"`
	Quiet bool   `mapstructure:"quiet"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
// An empty path skips the file and uses defaults plus environment.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith is Load on a caller-provided viper instance, so CLI flags bound
// to v take precedence over file and environment values.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("LINKEDLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.timezone", "UTC")
	v.SetDefault("data.refresh_interval", "0s")
	v.SetDefault("data.max_history", 10)

	v.SetDefault("analysis.kinds", []string{"all"})
	v.SetDefault("analysis.top_n", 5)
	v.SetDefault("analysis.seed", 0)

	v.SetDefault("locale.language", "fr")

	v.SetDefault("output.color", "auto")
	v.SetDefault("output.quiet", false)

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if _, err := time.LoadLocation(c.Data.Timezone); err != nil {
		return fmt.Errorf("data.timezone %q is not a known location: %w", c.Data.Timezone, err)
	}
	if c.Data.RefreshInterval < 0 {
		return fmt.Errorf("data.refresh_interval must not be negative")
	}
	if c.Data.RefreshInterval > 0 && c.Data.RefreshInterval < time.Second {
		return fmt.Errorf("data.refresh_interval must be at least 1s")
	}
	if c.Data.MaxHistory < 1 {
		return fmt.Errorf("data.max_history must be at least 1")
	}

	if len(c.Analysis.Kinds) == 0 {
		return fmt.Errorf("analysis.kinds must contain at least one kind")
	}
	if c.Analysis.TopN < 1 {
		return fmt.Errorf("analysis.top_n must be at least 1")
	}

	if _, err := language.Parse(c.Locale.Language); err != nil {
		return fmt.Errorf("locale.language %q is not a valid language tag: %w", c.Locale.Language, err)
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[c.Output.Color] {
		return fmt.Errorf("output.color must be one of: auto, always, never")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	if c.Telegram.MaxRetries < 0 {
		return fmt.Errorf("telegram.max_retries must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// Location returns the parsed data timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Data.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LanguageTag returns the parsed locale language, falling back to English.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Locale.Language)
	if err != nil {
		return language.English
	}
	return tag
}
