// Package config loads and persists jurnal settings and resolves where they live.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// Env captures the environment variables jurnal reads.
type Env struct {
	Home          string `env:"JURNAL_HOME"`
	ConfigHome    string `env:"JURNAL_CONFIG_HOME"`
	XDGConfigHome string `env:"XDG_CONFIG_HOME"`
	AppData       string `env:"APPDATA"`
	Verbose       bool   `env:"JURNAL_VERBOSE" envDefault:"false"`
}

// ParseEnv loads Env from the process environment.
func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Dir returns the jurnal configuration directory.
//
// Resolution:
//   - $JURNAL_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/jurnal if set (respects XDG on any platform)
//   - %AppData%/jurnal on Windows
//   - ~/.config/jurnal on macOS and Linux
func (e Env) Dir() string {
	if e.ConfigHome != "" {
		return e.ConfigHome
	}

	if e.XDGConfigHome != "" {
		return filepath.Join(e.XDGConfigHome, "jurnal")
	}

	if runtime.GOOS == "windows" && e.AppData != "" {
		return filepath.Join(e.AppData, "jurnal")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jurnal")
}
