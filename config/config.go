// Package config loads user-tunable settings for the compiler and its
// CLI from an optional TOML file. Every setting has a built-in default,
// so the tool runs with no config file present at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable knob the compiler and its CLI expose.
type Config struct {
	// Lexer settings.
	Lexer struct {
		// WarnBound is the magnitude beyond which a numeric literal
		// triggers an out-of-range warning.
		WarnBound int `toml:"warn_bound"`
	} `toml:"lexer"`

	// Labels holds prefixes for generated label and symbol names. The
	// compiler does not read them: it always uses while_, if_, var_ and
	// const_.
	Labels struct {
		While string `toml:"while_prefix"`
		If    string `toml:"if_prefix"`
		Var   string `toml:"var_prefix"`
		Const string `toml:"const_prefix"`
	} `toml:"labels"`

	// CLI settings.
	CLI struct {
		Color   bool `toml:"color"`
		Debug   bool `toml:"debug"`
		Machine struct {
			// Echo is loaded but not read anywhere: the CLI and its
			// REPL compile programs and do not run them.
			Echo bool `toml:"echo"`
		} `toml:"machine"`
	} `toml:"cli"`
}

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	cfg := &Config{}

	cfg.Lexer.WarnBound = 999

	cfg.Labels.While = "while_"
	cfg.Labels.If = "if_"
	cfg.Labels.Var = "var_"
	cfg.Labels.Const = "const_"

	cfg.CLI.Color = true
	cfg.CLI.Debug = false
	cfg.CLI.Machine.Echo = true

	return cfg
}

// Path returns the platform-specific config file path.
func Path() string {
	var dir string

	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "lmcc")

	case "darwin", "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "lmcc.toml"
		}
		dir = filepath.Join(home, ".config", "lmcc")

	default:
		return "lmcc.toml"
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "lmcc.toml"
	}
	return filepath.Join(dir, "config.toml")
}

// Load reads configuration from the default config path, falling back
// to built-in defaults when no file is present.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads configuration from the given path, falling back to
// built-in defaults when the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
