// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

package wlr

import (
	"log/slog"

	"github.com/adimit/sway-screens/lib/screens"
)

// partialHead accumulates head attributes as events arrive. Fields
// hold protocol defaults until the corresponding event supplies a
// value; later events overwrite earlier ones (last write wins).
type partialHead struct {
	name          string
	description   string
	enabled       bool
	scale         float64
	position      *screens.Position
	modeIDs       []uint32
	currentModeID uint32 // 0 = never set; Wayland object IDs start at 1
}

// partialMode accumulates mode attributes as events arrive.
type partialMode struct {
	resolution screens.Resolution
	refresh    int32
	preferred  bool
}

func (mode *partialMode) resolved() screens.Mode {
	return screens.Mode{
		Resolution: mode.resolution,
		Refresh:    mode.refresh,
		Preferred:  mode.preferred,
	}
}

// Diagnostics summarizes protocol anomalies observed during a query.
// Anomalies never fail a query; they are counted here so callers and
// tests can detect them without scraping logs.
type Diagnostics struct {
	// Capabilities lists every global interface the compositor
	// advertised, whether or not we bound it.
	Capabilities []string

	// DroppedEvents counts events that referenced an object ID not
	// present in the relevant registry and were discarded.
	DroppedEvents int

	// UnresolvedReferences counts mode IDs recorded on a head that
	// had no registry entry at finalization time and were omitted
	// from the resolved snapshot.
	UnresolvedReferences int

	// IgnoredEvents counts events we recognized but deliberately did
	// not apply: unhandled opcodes and anything arriving after
	// finalization.
	IgnoredEvents int
}

// queryState is the single mutable aggregate for one output query.
// Every protocol event handler targets it, and it is owned by exactly
// one GetOutputs call, so access is never concurrent.
type queryState struct {
	logger *slog.Logger

	running bool
	bound   bool

	heads     map[uint32]*partialHead
	headOrder []uint32 // discovery order; snapshot order is derived from it
	modes     map[uint32]*partialMode

	capabilities []string
	dropped      int
	unresolved   int
	ignored      int

	outputs []screens.Output
}

func newQueryState(logger *slog.Logger) *queryState {
	return &queryState{
		logger:  logger,
		running: true,
		heads:   make(map[uint32]*partialHead),
		modes:   make(map[uint32]*partialMode),
	}
}

func (state *queryState) finished() bool {
	return !state.running
}

func (state *queryState) snapshot() []screens.Output {
	return state.outputs
}

func (state *queryState) diagnostics() Diagnostics {
	return Diagnostics{
		Capabilities:         state.capabilities,
		DroppedEvents:        state.dropped,
		UnresolvedReferences: state.unresolved,
		IgnoredEvents:        state.ignored,
	}
}

func (state *queryState) capabilityAdvertised(interfaceName string) {
	state.capabilities = append(state.capabilities, interfaceName)
}

// collecting reports whether attribute events may still be applied.
// After finalization everything is a protocol violation: logged,
// counted, and not applied.
func (state *queryState) collecting(event string) bool {
	if state.running {
		return true
	}
	state.ignored++
	state.logger.Warn("event after finalization", "event", event)
	return false
}

// headCreated inserts a fresh head entry with protocol defaults. A
// duplicate announcement (a compositor bug) overwrites the entry but
// keeps its original position in the discovery order.
func (state *queryState) headCreated(headID uint32) {
	if !state.collecting("head") {
		return
	}
	if _, exists := state.heads[headID]; exists {
		state.logger.Warn("duplicate head announcement", "head", headID)
	} else {
		state.headOrder = append(state.headOrder, headID)
	}
	state.heads[headID] = &partialHead{name: "unknown", scale: 1.0}
}

// head looks up the target of a head attribute event. Unknown IDs are
// the unknown-object condition: log, count, discard.
func (state *queryState) head(headID uint32, event string) *partialHead {
	if !state.collecting(event) {
		return nil
	}
	head, ok := state.heads[headID]
	if !ok {
		state.dropped++
		state.logger.Warn("event for unknown head", "event", event, "head", headID)
		return nil
	}
	return head
}

func (state *queryState) headName(headID uint32, name string) {
	if head := state.head(headID, "name"); head != nil {
		head.name = name
	}
}

func (state *queryState) headDescription(headID uint32, description string) {
	if head := state.head(headID, "description"); head != nil {
		head.description = description
	}
}

func (state *queryState) headEnabled(headID uint32, enabled bool) {
	if head := state.head(headID, "enabled"); head != nil {
		head.enabled = enabled
	}
}

func (state *queryState) headScale(headID uint32, scale float64) {
	if head := state.head(headID, "scale"); head != nil {
		head.scale = scale
	}
}

func (state *queryState) headPosition(headID uint32, x, y int32) {
	if head := state.head(headID, "position"); head != nil {
		head.position = &screens.Position{X: x, Y: y}
	}
}

// modeCreated inserts a fresh mode entry and records its ownership on
// the announcing head. The mode entry is created even when the head is
// unknown, because subsequent mode attribute events will reference it
// by its own ID.
func (state *queryState) modeCreated(headID, modeID uint32) {
	if !state.collecting("mode") {
		return
	}
	state.modes[modeID] = &partialMode{}
	head, ok := state.heads[headID]
	if !ok {
		state.dropped++
		state.logger.Warn("mode announced by unknown head", "head", headID, "mode", modeID)
		return
	}
	head.modeIDs = append(head.modeIDs, modeID)
}

func (state *queryState) mode(modeID uint32, event string) *partialMode {
	if !state.collecting(event) {
		return nil
	}
	mode, ok := state.modes[modeID]
	if !ok {
		state.dropped++
		state.logger.Warn("event for unknown mode", "event", event, "mode", modeID)
		return nil
	}
	return mode
}

func (state *queryState) modeSize(modeID uint32, width, height int32) {
	if mode := state.mode(modeID, "size"); mode != nil {
		mode.resolution = screens.Resolution{Width: width, Height: height}
	}
}

func (state *queryState) modeRefresh(modeID uint32, refresh int32) {
	if mode := state.mode(modeID, "refresh"); mode != nil {
		mode.refresh = refresh
	}
}

func (state *queryState) modePreferred(modeID uint32) {
	if mode := state.mode(modeID, "preferred"); mode != nil {
		mode.preferred = true
	}
}

// currentModeSet records the head's current mode by ID. The protocol
// allows at most one current mode per head, so the last write wins.
func (state *queryState) currentModeSet(headID, modeID uint32) {
	if head := state.head(headID, "current_mode"); head != nil {
		head.currentModeID = modeID
	}
}

// ignoredEvent records an event opcode we do not handle.
func (state *queryState) ignoredEvent(interfaceName string, opcode uint16) {
	state.ignored++
	state.logger.Debug("ignoring event", "interface", interfaceName, "opcode", opcode)
}

// batchComplete handles the manager's done event: the one-time
// transition from collecting to finalized. A second done event (a
// protocol violation) is logged and leaves the snapshot untouched.
func (state *queryState) batchComplete(serial uint32) {
	if !state.running {
		state.ignored++
		state.logger.Warn("done event after finalization", "serial", serial)
		return
	}
	state.logger.Debug("output manager done", "serial", serial)
	state.finalize()
}

// finalize resolves the registries into immutable outputs, in head
// discovery order. The protocol leaves snapshot order unspecified;
// discovery order is this implementation's documented, deterministic
// choice.
func (state *queryState) finalize() {
	state.running = false
	outputs := make([]screens.Output, 0, len(state.headOrder))
	for _, headID := range state.headOrder {
		outputs = append(outputs, state.resolveHead(headID, state.heads[headID]))
	}
	state.outputs = outputs
}

func (state *queryState) resolveHead(headID uint32, head *partialHead) screens.Output {
	modes := make([]screens.Mode, 0, len(head.modeIDs))
	for _, modeID := range head.modeIDs {
		partial, ok := state.modes[modeID]
		if !ok {
			state.unresolved++
			state.logger.Warn("mode missing at finalization", "head", headID, "mode", modeID)
			continue
		}
		modes = append(modes, partial.resolved())
	}

	output := screens.Output{
		Name:        head.name,
		Description: head.description,
		Enabled:     head.enabled,
		Scale:       head.scale,
		Position:    head.position,
		Modes:       modes,
	}

	if head.currentModeID != 0 {
		if partial, ok := state.modes[head.currentModeID]; ok {
			current := partial.resolved()
			output.CurrentMode = &current
		} else {
			state.unresolved++
			state.logger.Warn("current mode missing at finalization", "head", headID, "mode", head.currentModeID)
		}
	}

	for index := range modes {
		if modes[index].Preferred {
			output.PreferredMode = &modes[index]
			break
		}
	}
	return output
}
