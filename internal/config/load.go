package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load resolves configuration in priority order: built-in defaults, then the
// config file (the -config flag, the CAMVIZ_CONFIG environment variable, or
// the first file found in a standard location), then CLI flags.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = os.Getenv("CAMVIZ_CONFIG")
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, errors.Wrapf(err, "loading config %s", path)
		}
	}

	applyFlags(cfg)
	return cfg, nil
}

// findConfigFile probes the working directory, then the user config dir.
func findConfigFile() string {
	for _, path := range []string{
		"camviz.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user camviz config directory. XDG_CONFIG_HOME
// wins on every OS so tests and portable setups can redirect writes.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "camviz")
	}
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "camviz")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "camviz")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "camviz")
	}
}

// loadFromFile merges a YAML file over the current config values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
