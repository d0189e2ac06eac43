// Package config loads the application configuration from an optional
// YAML file plus environment overrides (.env supported).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the project configuration.
type Config struct {
	Season            SeasonConfig  `yaml:"season"`
	Report            ReportConfig  `yaml:"report"`
	ExcludedLocations []string      `yaml:"excluded_locations"`
	Storage           StorageConfig `yaml:"storage"`
	Log               LogConfig     `yaml:"log"`
}

// SeasonConfig bounds the seasonal demand window, inclusive.
type SeasonConfig struct {
	StartMonth time.Month `yaml:"start_month"`
	EndMonth   time.Month `yaml:"end_month"`
}

// ReportConfig holds report policies.
type ReportConfig struct {
	// Include is "purchase-or-stock" (default) or "all".
	Include string `yaml:"include"`
}

// StorageConfig locates the durable store.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Season: SeasonConfig{
			StartMonth: time.April,
			EndMonth:   time.October,
		},
		Report: ReportConfig{
			Include: "purchase-or-stock",
		},
		ExcludedLocations: []string{"ALG"},
		Storage: StorageConfig{
			Path: "campstock.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadEnv loads a .env file when present. Missing files are fine.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads the configuration at path, layered over Default and under
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CAMPSTOCK_DB"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("CAMPSTOCK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CAMPSTOCK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
