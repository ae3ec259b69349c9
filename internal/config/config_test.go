package config

import (
	"os"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func validConfig() *Config {
	return &Config{
		Data:     DataConfig{Dir: "./data", Timezone: "UTC", MaxHistory: 10},
		Analysis: AnalysisConfig{Kinds: []string{"all"}, TopN: 5},
		Locale:   LocaleConfig{Language: "fr"},
		Output:   OutputConfig{Color: "auto"},
		Telegram: TelegramConfig{MaxRetries: 3, RetryDelayBase: time.Second},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoadAndValidate(t *testing.T) {
	content := `
data:
  dir: "./exports"
  timezone: "Europe/Paris"
  refresh_interval: 5m

analysis:
  kinds:
    - monthly
    - heatmap
  top_n: 3
  seed: 42

locale:
  language: "en"

output:
  color: "never"

telegram:
  bot_token: "test_token"
  chat_id: "12345"
  enabled: true
  retry_delay_base: 2s

logging:
  level: "debug"
  format: "json"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Data.Dir != "./exports" {
		t.Errorf("Unexpected data dir: %s", cfg.Data.Dir)
	}
	if cfg.Data.RefreshInterval != 5*time.Minute || cfg.Data.MaxHistory != 10 {
		t.Errorf("Unexpected watch settings: %v, %d", cfg.Data.RefreshInterval, cfg.Data.MaxHistory)
	}
	if len(cfg.Analysis.Kinds) != 2 {
		t.Errorf("Expected 2 kinds, got %d", len(cfg.Analysis.Kinds))
	}
	if cfg.Analysis.Seed != 42 {
		t.Errorf("Unexpected seed: %d", cfg.Analysis.Seed)
	}
	if cfg.Telegram.RetryDelayBase != 2*time.Second {
		t.Errorf("Unexpected retry delay: %v", cfg.Telegram.RetryDelayBase)
	}
	// not in file, falls back to default
	if cfg.Telegram.MaxRetries != 3 {
		t.Errorf("Expected default max_retries 3, got %d", cfg.Telegram.MaxRetries)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.Location().String() != "Europe/Paris" {
		t.Errorf("Unexpected location: %s", cfg.Location())
	}
	if cfg.LanguageTag() != language.English {
		t.Errorf("Unexpected language: %s", cfg.LanguageTag())
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("LINKEDLENS_DATA_DIR", "/tmp/export")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Data.Dir != "/tmp/export" {
		t.Errorf("Expected env override for data.dir, got %s", cfg.Data.Dir)
	}
	if cfg.Locale.Language != "fr" {
		t.Errorf("Expected default language fr, got %s", cfg.Locale.Language)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Defaults should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/linkedlens.yaml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing data dir", func(c *Config) { c.Data.Dir = "" }},
		{"unknown timezone", func(c *Config) { c.Data.Timezone = "Mars/Olympus" }},
		{"negative refresh", func(c *Config) { c.Data.RefreshInterval = -time.Second }},
		{"refresh too fast", func(c *Config) { c.Data.RefreshInterval = 10 * time.Millisecond }},
		{"zero history", func(c *Config) { c.Data.MaxHistory = 0 }},
		{"no kinds", func(c *Config) { c.Analysis.Kinds = nil }},
		{"zero top n", func(c *Config) { c.Analysis.TopN = 0 }},
		{"bad language", func(c *Config) { c.Locale.Language = "not a tag!" }},
		{"bad color", func(c *Config) { c.Output.Color = "rainbow" }},
		{"telegram without token", func(c *Config) {
			c.Telegram.Enabled = true
			c.Telegram.ChatID = "1"
		}},
		{"telegram without chat", func(c *Config) {
			c.Telegram.Enabled = true
			c.Telegram.BotToken = "x"
		}},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("baseline config should be valid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() expected error for %s", tt.name)
			}
		})
	}
}
