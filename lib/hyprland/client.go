// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

package hyprland

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/adimit/sway-screens/lib/screens"
)

// Client lists outputs from a running Hyprland instance. A Client
// holds no connection: each request dials the control socket, which
// is how Hyprland expects to be spoken to.
type Client struct {
	socketPath string
	logger     *slog.Logger
}

// New locates the control socket of the current Hyprland session.
// It fails when HYPRLAND_INSTANCE_SIGNATURE is unset, which is the
// usual sign that no Hyprland session is running.
func New(logger *slog.Logger) (*Client, error) {
	signature := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if signature == "" {
		return nil, errors.New("HYPRLAND_INSTANCE_SIGNATURE is not set")
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return nil, errors.New("XDG_RUNTIME_DIR is not set")
	}
	path := filepath.Join(runtimeDir, "hypr", signature, ".socket.sock")
	return NewPath(path, logger), nil
}

// NewPath returns a Client speaking to the control socket at path.
// A nil logger means slog.Default().
func NewPath(socketPath string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{socketPath: socketPath, logger: logger}
}

// hyprMonitor is the subset of Hyprland's monitor JSON this package
// reads.
type hyprMonitor struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Width          int32    `json:"width"`
	Height         int32    `json:"height"`
	RefreshRate    float64  `json:"refreshRate"`
	X              int32    `json:"x"`
	Y              int32    `json:"y"`
	Scale          float64  `json:"scale"`
	Disabled       bool     `json:"disabled"`
	AvailableModes []string `json:"availableModes"`
}

// GetOutputs issues j/monitors and converts the reply. Outputs are
// sorted by Hyprland's monitor id so repeated calls agree on order.
func (client *Client) GetOutputs() ([]screens.Output, error) {
	reply, err := client.request("j/monitors")
	if err != nil {
		return nil, err
	}

	var monitors []hyprMonitor
	if err := json.Unmarshal(reply, &monitors); err != nil {
		return nil, fmt.Errorf("decoding monitor list: %w", err)
	}
	sort.Slice(monitors, func(i, j int) bool {
		return monitors[i].ID < monitors[j].ID
	})

	outputs := make([]screens.Output, 0, len(monitors))
	for _, monitor := range monitors {
		outputs = append(outputs, convertMonitor(monitor, client.logger))
	}
	return outputs, nil
}

func convertMonitor(monitor hyprMonitor, logger *slog.Logger) screens.Output {
	output := screens.Output{
		Name:        monitor.Name,
		Description: monitor.Description,
		Enabled:     !monitor.Disabled,
		Scale:       monitor.Scale,
	}
	if output.Name == "" {
		output.Name = "unknown"
	}
	if output.Scale == 0 {
		output.Scale = 1.0
	}
	if output.Enabled {
		output.Position = &screens.Position{X: monitor.X, Y: monitor.Y}
		current := screens.Mode{
			Resolution: screens.Resolution{Width: monitor.Width, Height: monitor.Height},
			Refresh:    int32(math.Round(monitor.RefreshRate * 1000)),
		}
		output.CurrentMode = &current
	}

	for _, raw := range monitor.AvailableModes {
		mode, err := parseMode(raw)
		if err != nil {
			logger.Warn("skipping unparseable mode",
				"output", monitor.Name,
				"mode", raw,
				"error", err)
			continue
		}
		output.Modes = append(output.Modes, mode)
	}
	return output
}

// parseMode decodes Hyprland's mode notation, e.g. "1920x1080@60.00Hz".
func parseMode(raw string) (screens.Mode, error) {
	resolution, rate, ok := strings.Cut(raw, "@")
	if !ok {
		return screens.Mode{}, fmt.Errorf("missing @ in %q", raw)
	}
	width, height, ok := strings.Cut(resolution, "x")
	if !ok {
		return screens.Mode{}, fmt.Errorf("missing x in %q", raw)
	}

	parsedWidth, err := strconv.ParseInt(width, 10, 32)
	if err != nil {
		return screens.Mode{}, fmt.Errorf("width in %q: %w", raw, err)
	}
	parsedHeight, err := strconv.ParseInt(height, 10, 32)
	if err != nil {
		return screens.Mode{}, fmt.Errorf("height in %q: %w", raw, err)
	}
	hertz, err := strconv.ParseFloat(strings.TrimSuffix(rate, "Hz"), 64)
	if err != nil {
		return screens.Mode{}, fmt.Errorf("refresh rate in %q: %w", raw, err)
	}

	return screens.Mode{
		Resolution: screens.Resolution{
			Width:  int32(parsedWidth),
			Height: int32(parsedHeight),
		},
		Refresh: int32(math.Round(hertz * 1000)),
	}, nil
}

// request dials the control socket, writes one command, and reads the
// reply until the server closes the connection.
func (client *Client) request(command string) ([]byte, error) {
	conn, err := net.Dial("unix", client.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting to hyprland at %s: %w", client.socketPath, err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(command)); err != nil {
		return nil, fmt.Errorf("sending %q: %w", command, err)
	}
	reply, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("reading reply to %q: %w", command, err)
	}
	return reply, nil
}

// EnableOutput is not supported on Hyprland.
func (client *Client) EnableOutput(output screens.Output, position *screens.Position) error {
	return fmt.Errorf("enabling %s on hyprland: %w", output.Name, screens.ErrNotImplemented)
}

// DisableOutput is not supported on Hyprland.
func (client *Client) DisableOutput(output screens.Output) error {
	return fmt.Errorf("disabling %s on hyprland: %w", output.Name, screens.ErrNotImplemented)
}

var _ screens.Backend = (*Client)(nil)
