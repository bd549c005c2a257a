package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user defaults loaded from the config file. Every field is
// optional; flags always win over config, config wins over built-ins.
type Config struct {
	// Facility is the default facility name printed on labels.
	Facility string `toml:"facility"`

	// Days is the default day count for print jobs.
	Days int `toml:"days"`

	// RecordsPath overrides the patient-records file location.
	RecordsPath string `toml:"records_path"`

	// FontPath overrides CJK font resolution.
	FontPath string `toml:"font_path"`

	// OutputDir is where generated documents land when --output is a
	// bare filename or omitted.
	OutputDir string `toml:"output_dir"`
}

// configPath returns the config file location using the XDG standard
// (~/.config/medlabel/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file. A missing file yields the zero
// config; a malformed file is an error so typos don't silently revert
// the user's defaults.
func loadConfig() (Config, error) {
	var cfg Config
	path, err := configPath()
	if err != nil {
		return cfg, nil // no home dir; run with built-in defaults
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
