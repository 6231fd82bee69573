// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adimit/sway-screens/lib/config"
	"github.com/adimit/sway-screens/lib/hyprland"
	"github.com/adimit/sway-screens/lib/swayipc"
)

// captureStdout returns a file run() can write to and a function that
// reads back everything written.
func captureStdout(t *testing.T) (*os.File, func() string) {
	t.Helper()
	file, err := os.CreateTemp(t.TempDir(), "stdout")
	if err != nil {
		t.Fatalf("creating capture file: %v", err)
	}
	t.Cleanup(func() { file.Close() })
	return file, func() string {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			t.Fatalf("rewinding capture file: %v", err)
		}
		data, err := io.ReadAll(file)
		if err != nil {
			t.Fatalf("reading capture file: %v", err)
		}
		return string(data)
	}
}

// isolateConfig points config discovery at an empty directory so the
// developer's real config cannot leak into tests.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("SWAY_SCREENS_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestVersionFlag(t *testing.T) {
	stdout, read := captureStdout(t)
	if code := run([]string{"--version"}, stdout); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if output := read(); !strings.HasPrefix(output, "sway-screens ") {
		t.Errorf("version output = %q", output)
	}
}

func TestVerboseVersionIncludesPlatform(t *testing.T) {
	stdout, read := captureStdout(t)
	if code := run([]string{"--version", "--verbose"}, stdout); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if output := read(); !strings.Contains(output, "Go: ") {
		t.Errorf("verbose version output = %q, want build details", output)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"non-digit arrangement", []string{"0a2"}},
		{"negative-looking arrangement", []string{"--", "-1"}},
		{"two positional arguments", []string{"01", "2"}},
		{"unknown flag", []string{"--frobnicate"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			isolateConfig(t)
			stdout, _ := captureStdout(t)
			if code := run(test.args, stdout); code != 2 {
				t.Errorf("run(%v) = %d, want exit code 2", test.args, code)
			}
		})
	}
}

func TestBadConfigurationIsUsageError(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown backend", []string{"--backend", "kwin"}},
		{"unknown log level", []string{"--log-level", "loud"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			isolateConfig(t)
			stdout, _ := captureStdout(t)
			if code := run(test.args, stdout); code != 2 {
				t.Errorf("run(%v) = %d, want exit code 2", test.args, code)
			}
		})
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	isolateConfig(t)
	stdout, _ := captureStdout(t)
	args := []string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}
	if code := run(args, stdout); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestDiscoveryFailureIsRuntimeError(t *testing.T) {
	isolateConfig(t)
	// Point discovery at a socket that does not exist.
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	t.Setenv("WAYLAND_DISPLAY", "wayland-99")

	stdout, _ := captureStdout(t)
	if code := run(nil, stdout); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSelectBackendAuto(t *testing.T) {
	t.Setenv("SWAYSOCK", "")
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")

	cfg := config.Default()
	if _, err := selectBackend(cfg, discardLogger()); err == nil {
		t.Fatal("selectBackend found a backend in an empty environment")
	}

	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "abc123")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	backend, err := selectBackend(cfg, discardLogger())
	if err != nil {
		t.Fatalf("selectBackend with hyprland environment: %v", err)
	}
	if _, ok := backend.(*hyprland.Client); !ok {
		t.Errorf("backend = %T, want *hyprland.Client", backend)
	}

	// A sway socket takes precedence over a Hyprland signature.
	socketPath := filepath.Join(t.TempDir(), "sway.sock")
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()
	t.Setenv("SWAYSOCK", socketPath)

	backend, err = selectBackend(cfg, discardLogger())
	if err != nil {
		t.Fatalf("selectBackend with sway environment: %v", err)
	}
	client, ok := backend.(*swayipc.Client)
	if !ok {
		t.Fatalf("backend = %T, want *swayipc.Client", backend)
	}
	client.Close()
}

func TestSelectBackendExplicitSwayNeedsSocket(t *testing.T) {
	t.Setenv("SWAYSOCK", "")
	cfg := config.Default()
	cfg.Backend = config.BackendSway
	if _, err := selectBackend(cfg, discardLogger()); err == nil {
		t.Fatal("selectBackend(sway) succeeded without SWAYSOCK")
	}
}
