// Package config loads the optional TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/robby/cockpit/internal/persist"
)

// Config carries the user-tunable settings. A missing file means defaults;
// CLI flags override whatever the file says.
type Config struct {
	// DataFile is the path of the AppData JSON document.
	DataFile string `toml:"data_file"`
	// HideArchived starts the board with the archived column hidden.
	HideArchived bool `toml:"hide_archived"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataFile: persist.DefaultPath(),
	}
}

// DefaultPath returns ~/.config/cockpit/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "cockpit", "config.toml")
}

// Load reads the config at path, falling back to defaults when the file is
// absent. A present-but-invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.DataFile == "" {
		cfg.DataFile = persist.DefaultPath()
	}
	return cfg, nil
}
