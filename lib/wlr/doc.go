// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

// Package wlr discovers display outputs by speaking the
// zwlr_output_management_v1 Wayland protocol.
//
// The protocol is object-oriented and asynchronous: binding the output
// manager global makes the compositor announce a head object per
// physical output, each head announces mode objects, and every
// attribute of a head or mode arrives as its own event, interleaved
// arbitrarily across objects. The compositor marks the end of a
// coherent batch with the manager's done event; only then is the
// accumulated state safe to materialize.
//
// The package is organized around that flow:
//
//   - protocol.go: proxies for the manager, head, and mode interfaces,
//     translating wire events into typed calls on the query state
//   - state.go: the event-assembly state machine — per-object
//     registries keyed by protocol object ID, populated incrementally
//     and resolved into immutable screens.Output values on the done
//     event
//   - query.go: the connection and dispatch loop, including fail-fast
//     detection of compositors that do not offer the protocol
//
// A query is single-threaded and synchronous: one Manager.GetOutputs
// call owns the connection, the state, and the dispatch loop for its
// whole duration, so the state machine needs no locking.
package wlr
