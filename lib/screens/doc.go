// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

// Package screens defines the output data model shared by every
// backend, and the arrangement logic that turns a digit string into
// enable/disable/position commands.
//
// The package is organized around the lifecycle of an output snapshot:
//
//   - types.go: immutable value types (Resolution, Mode, Position, Output)
//   - backend.go: the Backend interface implemented by compositor IPC clients
//   - arrangement.go: digit-string parsing and left-to-right placement
//   - format.go: terminal rendering of a snapshot
//
// Output values are produced by lib/wlr (protocol discovery) or by an
// IPC backend directly, and consumed read-only from then on: nothing
// in this package mutates an Output after construction.
package screens
