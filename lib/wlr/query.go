// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

package wlr

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/bnema/wlturbo/wl"

	"github.com/adimit/sway-screens/lib/screens"
)

// ErrUnsupported is returned when the compositor never advertises
// zwlr_output_manager_v1. Detected after the initial registry
// roundtrip rather than hanging forever waiting for a done event that
// can never come.
var ErrUnsupported = errors.New("compositor does not advertise " + outputManagerInterface)

// Manager discovers outputs over the Wayland connection. It satisfies
// screens.Backend for discovery; reconfiguration goes through the
// compositor's own IPC instead, so the mutation methods report
// screens.ErrNotImplemented.
type Manager struct {
	// SocketPath overrides the Wayland socket. Empty means the usual
	// environment resolution (WAYLAND_DISPLAY under XDG_RUNTIME_DIR).
	SocketPath string

	// Logger receives protocol diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// GetOutputs runs one query: connect, bind the output manager global,
// dispatch events into the query state until the compositor's done
// event, and return the finalized snapshot in head discovery order.
//
// Any transport error is fatal to the query and returned wrapped;
// there is no retry here. Protocol anomalies (events for unknown
// objects, unresolvable mode references) are logged and counted but
// never fail the query.
func (manager *Manager) GetOutputs() ([]screens.Output, error) {
	logger := manager.Logger
	if logger == nil {
		logger = slog.Default()
	}

	display, err := wl.Connect(manager.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting to wayland display: %w", err)
	}
	defer display.Close()

	state := newQueryState(logger)
	registry := display.Registry()

	var bindErr error
	registry.AddHandler(outputManagerInterface, func(registry *wl.Registry, name uint32, version uint32) {
		logger.Debug("binding output manager", "name", name, "version", version)
		proxy := &outputManager{state: state}
		proxy.SetContext(display.Context())
		if err := registry.Bind(name, outputManagerInterface, outputManagerVersion, proxy); err != nil {
			bindErr = err
			return
		}
		state.bound = true
	})

	// The sync roundtrip is the registry enumeration barrier: once the
	// callback fires, every global has been announced and the bind
	// handler has either run or never will.
	if err := display.Roundtrip(); err != nil {
		return nil, fmt.Errorf("listing globals: %w", err)
	}
	if bindErr != nil {
		return nil, fmt.Errorf("binding %s: %w", outputManagerInterface, bindErr)
	}

	for _, global := range registry.GetGlobals() {
		state.capabilityAdvertised(global.Interface)
	}
	sort.Strings(state.capabilities)
	logger.Debug("server capabilities", "interfaces", state.capabilities)

	if !state.bound {
		return nil, ErrUnsupported
	}

	// The compositor may have delivered the whole first batch during
	// the roundtrip already; otherwise block for one message at a time
	// until the done event finalizes the state.
	for !state.finished() {
		if err := display.Dispatch(); err != nil {
			return nil, fmt.Errorf("dispatching protocol events: %w", err)
		}
	}

	diagnostics := state.diagnostics()
	if diagnostics.DroppedEvents > 0 || diagnostics.UnresolvedReferences > 0 {
		logger.Warn("query finished with protocol anomalies",
			"dropped_events", diagnostics.DroppedEvents,
			"unresolved_references", diagnostics.UnresolvedReferences)
	}
	logger.Info("outputs discovered", "count", len(state.snapshot()))
	return state.snapshot(), nil
}

// EnableOutput is not supported over the output-management protocol in
// this tool; arrangement changes go through the compositor IPC backend.
func (manager *Manager) EnableOutput(output screens.Output, position *screens.Position) error {
	return fmt.Errorf("enable output %s over wayland: %w", output.Name, screens.ErrNotImplemented)
}

// DisableOutput is not supported; see EnableOutput.
func (manager *Manager) DisableOutput(output screens.Output) error {
	return fmt.Errorf("disable output %s over wayland: %w", output.Name, screens.ErrNotImplemented)
}
