// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for sway-screens.
//
// Configuration is loaded from a single YAML file specified by:
//   - the --config flag passed to the command, or
//   - the SWAY_SCREENS_CONFIG environment variable, or
//   - $XDG_CONFIG_HOME/sway-screens/config.yaml
//
// Only the default path is optional: when it does not exist the
// built-in defaults apply. An explicitly requested file that cannot be
// read or parsed is an error, never silently ignored.
package config
