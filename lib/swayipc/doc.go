// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

// Package swayipc reconfigures outputs through sway's IPC socket.
//
// Sway (like i3) frames messages as a 14-byte header — the 6-byte
// magic "i3-ipc", a little-endian uint32 payload length, and a uint32
// message type — followed by a JSON payload. The socket path comes
// from the SWAYSOCK environment variable.
//
// The package uses two message types: GET_OUTPUTS for a snapshot of
// all outputs, and RUN_COMMAND with sway's "output NAME enable pos X Y"
// and "output NAME disable" command strings. Command replies carry a
// per-command success flag that is inspected and surfaced as
// [ErrCommandFailed] when false.
package swayipc
