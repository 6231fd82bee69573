// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

package screens

import "errors"

// ErrNotImplemented is returned by backends that cannot perform a
// requested operation (e.g. the Hyprland backend, which can list
// outputs but not reconfigure them yet).
var ErrNotImplemented = errors.New("not implemented")

// Backend is a compositor-specific client that can list outputs and
// apply configuration changes through the compositor's own IPC.
//
// GetOutputs returns a snapshot in a deterministic order; the indices
// users pass on the command line refer to positions in that snapshot,
// so the order must be reproducible across invocations.
type Backend interface {
	// GetOutputs returns the current output snapshot.
	GetOutputs() ([]Output, error)

	// EnableOutput enables the output, placing it at position when
	// non-nil and at the output's recorded position otherwise.
	EnableOutput(output Output, position *Position) error

	// DisableOutput disables the output.
	DisableOutput(output Output) error
}
