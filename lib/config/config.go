// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend names a compositor IPC mechanism for applying arrangements.
type Backend string

const (
	// BackendAuto probes the session environment: SWAYSOCK selects
	// sway, HYPRLAND_INSTANCE_SIGNATURE selects hyprland.
	BackendAuto Backend = "auto"
	// BackendSway talks i3-ipc over $SWAYSOCK.
	BackendSway Backend = "sway"
	// BackendHyprland talks to Hyprland's control socket.
	BackendHyprland Backend = "hyprland"
)

// Config is the whole configuration of sway-screens.
type Config struct {
	// Backend selects the IPC backend used to apply arrangements.
	Backend Backend `yaml:"backend"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// WaylandDisplay overrides the Wayland socket used for output
	// discovery. Empty means follow WAYLAND_DISPLAY as usual.
	WaylandDisplay string `yaml:"wayland_display"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:  BackendAuto,
		LogLevel: "info",
	}
}

// Load resolves the configuration file path and loads it. An explicit
// path (flag, then SWAY_SCREENS_CONFIG) must exist; the XDG default
// path may be absent, in which case defaults are returned.
func Load(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	if envPath := os.Getenv("SWAY_SCREENS_CONFIG"); envPath != "" {
		return LoadFile(envPath)
	}

	path := filepath.Join(configDir(), "sway-screens", "config.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads the configuration at path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

// Validate checks field values without touching the environment.
func (cfg *Config) Validate() error {
	switch cfg.Backend {
	case BackendAuto, BackendSway, BackendHyprland:
	default:
		return fmt.Errorf("unknown backend %q (want auto, sway, or hyprland)", cfg.Backend)
	}
	if _, err := cfg.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel into a slog level.
func (cfg *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return 0, fmt.Errorf("unknown log level %q (want debug, info, warn, or error)", cfg.LogLevel)
	}
	return level, nil
}
