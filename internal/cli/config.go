package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// config holds defaults loaded from ~/.config/debtop/config.toml.
// Every field is optional; flags override config, config overrides
// built-in defaults.
type config struct {
	Mirror    string `toml:"mirror"`
	Dist      string `toml:"dist"`
	Component string `toml:"component"`
	Top       int    `toml:"top"`
}

// configPath returns the standard config file location.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file if it exists. A missing file yields a
// zero config; a malformed file is an error so typos don't silently fall
// back to defaults.
func loadConfig() (config, error) {
	path, err := configPath()
	if err != nil {
		return config{}, nil
	}
	return loadConfigFrom(path)
}

func loadConfigFrom(path string) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
