// Package config resolves clir's runtime configuration: where the rules
// file lives, how many workers to use and whether output is colored.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/heat1q/clir/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Environment variable names
const (
	// EnvRulesFile overrides the rules file location
	EnvRulesFile = "CLIR_RULES_FILE"
)

// Default file names
const (
	// DefaultRulesFileName is the rules file created in the home directory
	DefaultRulesFileName = ".clir"

	appDirName     = "clir"
	configFileName = "config.toml"
)

// Color modes accepted in the config file
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the resolved runtime configuration
type Config struct {
	// RulesFile is the path of the flat rules file
	RulesFile string `toml:"rules_file"`
	// Workers bounds the parallel fan-out; 0 means NumCPU
	Workers int `toml:"workers"`
	// Color controls colored output: auto, always or never
	Color string `toml:"color"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{Color: ColorAuto}
}

// Load resolves the effective configuration. The rules file location is
// layered: explicit flag > CLIR_RULES_FILE > config file > ~/.clir. The
// config file itself is optional and lives at
// $XDG_CONFIG_HOME/clir/config.toml.
func Load(flagRulesFile string) (Config, error) {
	cfg := Default()

	configPath := filepath.Join(xdg.ConfigHome, appDirName, configFileName)
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", configPath)
		}
	}

	if env := os.Getenv(EnvRulesFile); env != "" {
		cfg.RulesFile = env
	}
	if flagRulesFile != "" {
		cfg.RulesFile = flagRulesFile
	}
	if cfg.RulesFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, errors.Wrap(err, errors.ErrConfigLoad, "cannot determine home directory")
		}
		cfg.RulesFile = filepath.Join(home, DefaultRulesFileName)
	}

	return cfg, nil
}
