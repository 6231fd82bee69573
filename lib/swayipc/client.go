// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

package swayipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sort"
	"strings"

	"github.com/adimit/sway-screens/lib/screens"
)

// ErrCommandFailed is returned when sway accepts a RUN_COMMAND message
// but reports the command itself as unsuccessful.
var ErrCommandFailed = errors.New("sway command failed")

// Client is a sway IPC connection implementing screens.Backend.
type Client struct {
	conn   net.Conn
	logger *slog.Logger
}

// Connect dials the socket named by SWAYSOCK. A nil logger means
// slog.Default().
func Connect(logger *slog.Logger) (*Client, error) {
	socketPath := os.Getenv("SWAYSOCK")
	if socketPath == "" {
		return nil, errors.New("SWAYSOCK is not set; is sway running?")
	}
	return ConnectPath(socketPath, logger)
}

// ConnectPath dials an explicit sway IPC socket path.
func ConnectPath(socketPath string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting to sway socket %s: %w", socketPath, err)
	}
	return &Client{conn: conn, logger: logger}, nil
}

// Close closes the IPC connection.
func (client *Client) Close() error {
	return client.conn.Close()
}

// roundTrip sends one request and reads its reply, checking that the
// reply type matches. Sway answers requests in order on a connection;
// this client only ever has one request in flight.
func (client *Client) roundTrip(kind messageType, payload []byte) ([]byte, error) {
	if err := writeMessage(client.conn, kind, payload); err != nil {
		return nil, err
	}
	replyKind, reply, err := readMessage(client.conn)
	if err != nil {
		return nil, err
	}
	if replyKind != kind {
		return nil, fmt.Errorf("reply type %d does not match request type %d", replyKind, kind)
	}
	return reply, nil
}

// swayOutput mirrors the fields of sway's GET_OUTPUTS reply we use.
type swayOutput struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Make        string     `json:"make"`
	Model       string     `json:"model"`
	Active      bool       `json:"active"`
	Scale       float64    `json:"scale"`
	Rect        swayRect   `json:"rect"`
	CurrentMode *swayMode  `json:"current_mode"`
	Modes       []swayMode `json:"modes"`
}

type swayRect struct {
	X      int32 `json:"x"`
	Y      int32 `json:"y"`
	Width  int32 `json:"width"`
	Height int32 `json:"height"`
}

type swayMode struct {
	Width   int32 `json:"width"`
	Height  int32 `json:"height"`
	Refresh int32 `json:"refresh"` // millihertz
}

// GetOutputs lists outputs via GET_OUTPUTS, sorted by sway's internal
// output id so the snapshot order is stable across calls.
func (client *Client) GetOutputs() ([]screens.Output, error) {
	reply, err := client.roundTrip(messageGetOutputs, nil)
	if err != nil {
		return nil, fmt.Errorf("listing sway outputs: %w", err)
	}
	var raw []swayOutput
	if err := json.Unmarshal(reply, &raw); err != nil {
		return nil, fmt.Errorf("decoding sway outputs: %w", err)
	}
	sort.Slice(raw, func(i, j int) bool { return raw[i].ID < raw[j].ID })

	outputs := make([]screens.Output, 0, len(raw))
	for _, entry := range raw {
		outputs = append(outputs, convertOutput(entry))
	}
	return outputs, nil
}

// convertOutput maps a sway output description onto the shared model.
// Sway lists modes with the display's preferred mode first and does
// not carry an explicit preferred flag, so the first listed mode is
// marked preferred (falling back to the rect size when the mode list
// is empty).
func convertOutput(entry swayOutput) screens.Output {
	modes := make([]screens.Mode, 0, len(entry.Modes))
	for index, mode := range entry.Modes {
		modes = append(modes, screens.Mode{
			Resolution: screens.Resolution{Width: mode.Width, Height: mode.Height},
			Refresh:    mode.Refresh,
			Preferred:  index == 0,
		})
	}

	output := screens.Output{
		Name:        entry.Name,
		Description: strings.TrimSpace(entry.Make + " " + entry.Model),
		Enabled:     entry.Active,
		Scale:       entry.Scale,
		Position:    &screens.Position{X: entry.Rect.X, Y: entry.Rect.Y},
		Modes:       modes,
	}
	if len(modes) > 0 {
		output.PreferredMode = &modes[0]
	}
	if entry.CurrentMode != nil {
		current := screens.Mode{
			Resolution: screens.Resolution{Width: entry.CurrentMode.Width, Height: entry.CurrentMode.Height},
			Refresh:    entry.CurrentMode.Refresh,
		}
		output.CurrentMode = &current
	}
	return output
}

// commandResult is one entry of a RUN_COMMAND reply.
type commandResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (client *Client) runCommand(command string) error {
	client.logger.Debug("running sway command", "command", command)
	reply, err := client.roundTrip(messageRunCommand, []byte(command))
	if err != nil {
		return fmt.Errorf("sending command %q: %w", command, err)
	}
	var results []commandResult
	if err := json.Unmarshal(reply, &results); err != nil {
		return fmt.Errorf("decoding reply to %q: %w", command, err)
	}
	for _, result := range results {
		if !result.Success {
			return fmt.Errorf("%w: %q: %s", ErrCommandFailed, command, result.Error)
		}
	}
	return nil
}

// EnableOutput enables the output at position (or its recorded
// position when position is nil).
func (client *Client) EnableOutput(output screens.Output, position *screens.Position) error {
	target := position
	if target == nil {
		target = output.Position
	}
	if target == nil {
		target = &screens.Position{}
	}
	return client.runCommand(fmt.Sprintf("output %s enable pos %d %d", output.Name, target.X, target.Y))
}

// DisableOutput disables the output.
func (client *Client) DisableOutput(output screens.Output) error {
	return client.runCommand(fmt.Sprintf("output %s disable", output.Name))
}

var _ screens.Backend = (*Client)(nil)
