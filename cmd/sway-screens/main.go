// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

// sway-screens lists display outputs and arranges them.
//
// Without arguments it queries the compositor over the
// zwlr_output_manager_v1 Wayland protocol and prints a numbered
// snapshot of every output. With a digit-string argument it
// additionally applies that arrangement through the compositor's IPC:
// "02" enables outputs 0 and 2 side by side, left to right, and
// disables everything else.
//
// Exit codes: 0 on success, 1 when discovery or reconfiguration fails,
// 2 on usage or configuration errors.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/adimit/sway-screens/lib/config"
	"github.com/adimit/sway-screens/lib/hyprland"
	"github.com/adimit/sway-screens/lib/screens"
	"github.com/adimit/sway-screens/lib/swayipc"
	"github.com/adimit/sway-screens/lib/version"
	"github.com/adimit/sway-screens/lib/wlr"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout *os.File) int {
	var (
		configPath  string
		backendName string
		logLevel    string
		verbose     bool
		showVersion bool
		showModes   bool
	)

	flagSet := pflag.NewFlagSet("sway-screens", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: $XDG_CONFIG_HOME/sway-screens/config.yaml)")
	flagSet.StringVar(&backendName, "backend", "", "IPC backend for applying arrangements: auto, sway, or hyprland")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, or error")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "shorthand for --log-level debug")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")
	flagSet.BoolVar(&showModes, "modes", false, "list every supported mode of every output")
	flagSet.Usage = func() { printUsage(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	if showVersion {
		if verbose {
			fmt.Fprintf(stdout, "sway-screens %s\n", version.Full())
		} else {
			fmt.Fprintf(stdout, "sway-screens %s\n", version.Info())
		}
		return 0
	}

	positional := flagSet.Args()
	if len(positional) > 1 {
		fmt.Fprintf(os.Stderr, "error: expected at most one arrangement argument, got %d\n", len(positional))
		printUsage(flagSet)
		return 2
	}

	// Parse the arrangement before touching the compositor so a typo
	// fails before any query runs.
	var arrangement []int
	if len(positional) == 1 {
		indices, err := screens.ParseArrangement(positional[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			printUsage(flagSet)
			return 2
		}
		arrangement = indices
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if backendName != "" {
		cfg.Backend = config.Backend(backendName)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	logger := newCommandLogger(level)

	manager := &wlr.Manager{SocketPath: cfg.WaylandDisplay, Logger: logger}
	outputs, err := manager.GetOutputs()
	if err != nil {
		if errors.Is(err, wlr.ErrUnsupported) {
			fmt.Fprintf(os.Stderr, "error: %v (is the compositor wlroots-based?)\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return 1
	}

	fmt.Fprint(stdout, screens.FormatList(outputs, showModes))

	if len(arrangement) == 0 {
		return 0
	}

	backend, err := selectBackend(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if closer, ok := backend.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	if err := screens.Apply(backend, outputs, arrangement, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		// An arrangement that does not fit the discovered outputs is
		// the caller's mistake, not a reconfiguration failure.
		if errors.Is(err, screens.ErrInvalidArrangement) {
			return 2
		}
		return 1
	}
	return 0
}

// selectBackend picks the IPC backend used for reconfiguration. With
// backend "auto" the session environment decides: a sway socket wins,
// then a Hyprland instance signature.
func selectBackend(cfg *config.Config, logger *slog.Logger) (screens.Backend, error) {
	switch cfg.Backend {
	case config.BackendSway:
		return swayipc.Connect(logger)
	case config.BackendHyprland:
		return hyprland.New(logger)
	case config.BackendAuto:
		if os.Getenv("SWAYSOCK") != "" {
			return swayipc.Connect(logger)
		}
		if os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
			return hyprland.New(logger)
		}
		return nil, errors.New("no compositor IPC found: neither SWAYSOCK nor HYPRLAND_INSTANCE_SIGNATURE is set")
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: sway-screens [flags] [arrangement]

Lists display outputs. With an arrangement — a string of digits naming
output numbers from the listing — enables those outputs left to right
and disables the rest. For example "02" puts output 0 at the left edge
and output 2 next to it.

Flags:
%s`, flagSet.FlagUsages())
}
