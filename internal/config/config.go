// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the gearbase configuration from YAML files,
// environment variables and command-line flags, in that order of
// precedence (lowest to highest).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the application configuration as loaded from gearbase.yaml.
type Config struct {
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		DSN  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Language string `mapstructure:"language" yaml:"language"`
	Backup   struct {
		Dir           string `mapstructure:"dir" yaml:"dir"`
		RetentionDays int    `mapstructure:"retention_days" yaml:"retention_days"`
		DailyAt       string `mapstructure:"daily_at" yaml:"daily_at"`
	} `mapstructure:"backup" yaml:"backup"`
	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"database.type":         "sqlite",
		"database.dsn":          "gearbase.db",
		"language":              "en",
		"backup.dir":            "backups",
		"backup.retention_days": 30,
		"backup.daily_at":       "17:00",
		"debug":                 false,
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Gearbase")
		default: // Linux, macOS, etc.
			configDir = "/etc/gearbase"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "gearbase")
	}

	return filepath.Join(configDir, "gearbase.yaml"), nil
}

// LoadConfig resolves the configuration for cmd. An explicit config file
// path (from the --config flag) wins over the standard search locations;
// GEARBASE_* environment variables and bound flags override file values.
func LoadConfig(cmd *cobra.Command, configFile string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("gearbase")
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, defaults apply; anything else is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("gearbase")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The CLI flag names differ from the config keys, so they are bound
	// by hand where present.
	flagKeys := map[string]string{
		"db-type": "database.type",
		"db-dsn":  "database.dsn",
		"lang":    "language",
		"debug":   "debug",
	}
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return c, err
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// WriteConfigFile persists c to the user (or system) config location.
func WriteConfigFile(c *Config, system bool) error {
	path, err := getConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600 since the DSN may contain database credentials.
	return os.WriteFile(path, data, 0600)
}
