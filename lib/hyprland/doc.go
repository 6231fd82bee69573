// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

// Package hyprland lists outputs through Hyprland's control socket.
//
// Hyprland exposes a request/reply socket at
// $XDG_RUNTIME_DIR/hypr/$HYPRLAND_INSTANCE_SIGNATURE/.socket.sock.
// Each request is a single text command on a fresh connection; the
// "j/" prefix asks for a JSON reply, which the server writes in full
// before closing its end. This package issues "j/monitors" and maps
// the monitor array onto the shared output model.
//
// Only listing is implemented. Enabling and disabling outputs through
// Hyprland is not supported yet; both mutations report
// screens.ErrNotImplemented so callers can fall back or fail cleanly.
package hyprland
