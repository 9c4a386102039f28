// Package config holds the viper-backed configuration singleton.
//
// Precedence, highest first: command-line flags (handled by the commands),
// PODIFF_* environment variables, the config file, built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jan-hudec/podiffutils/internal/debug"
)

var v *viper.Viper

// Initialize sets up the configuration singleton. Called once at startup.
func Initialize() error {
	v = viper.New()
	v.SetConfigType("yaml")

	// Locate the config file explicitly. Precedence: project .podiff.yaml
	// (walking up from the working directory, so subdirectories work) over
	// the user config directory.
	configFileSet := false
	if cwd, err := os.Getwd(); err == nil {
		for dir := cwd; dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
			path := filepath.Join(dir, ".podiff.yaml")
			if _, err := os.Stat(path); err == nil {
				v.SetConfigFile(path)
				configFileSet = true
				break
			}
		}
	}
	if !configFileSet {
		if configDir, err := os.UserConfigDir(); err == nil {
			path := filepath.Join(configDir, "podiff", "config.yaml")
			if _, err := os.Stat(path); err == nil {
				v.SetConfigFile(path)
				configFileSet = true
			}
		}
	}

	// Environment variables take precedence over the config file, e.g.
	// PODIFF_NO_ERROR maps to the "no-error" key.
	v.SetEnvPrefix("PODIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("no-error", false)
	v.SetDefault("color", "auto")
	v.SetDefault("report", "")

	if configFileSet {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		debug.Logf("loaded config from %s", v.ConfigFileUsed())
	} else {
		debug.Logf("no config file found; using defaults and environment variables")
	}
	return nil
}

// GetString retrieves a string configuration value.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean configuration value.
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// Set overrides a configuration value.
func Set(key string, value any) {
	if v != nil {
		v.Set(key, value)
	}
}
