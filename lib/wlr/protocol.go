// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

package wlr

import (
	"github.com/bnema/wlturbo/wl"
)

// Interface name and the protocol version we bind. Version 1 carries
// everything a read-only query needs.
const (
	outputManagerInterface = "zwlr_output_manager_v1"
	outputManagerVersion   = 1
)

// Event opcodes, in declaration order from the protocol XML.
const (
	managerEventHead     = 0
	managerEventDone     = 1
	managerEventFinished = 2
)

const (
	headEventName         = 0
	headEventDescription  = 1
	headEventPhysicalSize = 2
	headEventMode         = 3
	headEventEnabled      = 4
	headEventCurrentMode  = 5
	headEventPosition     = 6
	headEventTransform    = 7
	headEventScale        = 8
	headEventFinished     = 9
)

const (
	modeEventSize      = 0
	modeEventRefresh   = 1
	modeEventPreferred = 2
	modeEventFinished  = 3
)

// outputManager is the client proxy for zwlr_output_manager_v1. Its
// head event carries a server-allocated object ID: the head proxy must
// be registered with the connection before this handler returns, so
// that events already queued behind the announcement find their
// target.
type outputManager struct {
	wl.BaseProxy
	state *queryState
}

func (manager *outputManager) Dispatch(event *wl.Event) {
	switch event.Opcode {
	case managerEventHead:
		headID := event.Uint32()
		head := &outputHead{state: manager.state}
		head.SetID(headID)
		head.SetContext(manager.Context())
		manager.Context().Register(head)
		manager.state.headCreated(headID)
	case managerEventDone:
		manager.state.batchComplete(event.Uint32())
	case managerEventFinished:
		// The compositor will send no further manager events. For a
		// one-shot query this only happens when the manager global
		// disappears mid-query.
		manager.state.logger.Warn("output manager finished")
		manager.state.ignored++
	default:
		manager.state.ignoredEvent(outputManagerInterface, event.Opcode)
	}
}

// outputHead is the client proxy for zwlr_output_head_v1. Attribute
// events are forwarded to the query state keyed by this proxy's object
// ID; the mode event creates and registers a child mode proxy.
type outputHead struct {
	wl.BaseProxy
	state *queryState
}

func (head *outputHead) Dispatch(event *wl.Event) {
	switch event.Opcode {
	case headEventName:
		head.state.headName(head.ID(), event.String())
	case headEventDescription:
		head.state.headDescription(head.ID(), event.String())
	case headEventPhysicalSize:
		head.state.ignoredEvent("zwlr_output_head_v1", event.Opcode)
	case headEventMode:
		modeID := event.Uint32()
		mode := &outputMode{state: head.state}
		mode.SetID(modeID)
		mode.SetContext(head.Context())
		head.Context().Register(mode)
		head.state.modeCreated(head.ID(), modeID)
	case headEventEnabled:
		head.state.headEnabled(head.ID(), event.Int32() != 0)
	case headEventCurrentMode:
		head.state.currentModeSet(head.ID(), event.Uint32())
	case headEventPosition:
		x := event.Int32()
		y := event.Int32()
		head.state.headPosition(head.ID(), x, y)
	case headEventTransform:
		head.state.ignoredEvent("zwlr_output_head_v1", event.Opcode)
	case headEventScale:
		head.state.headScale(head.ID(), wl.Fixed(event.Int32()).Float64())
	case headEventFinished:
		head.state.logger.Debug("head finished", "head", head.ID())
		head.Context().Unregister(head)
	default:
		head.state.ignoredEvent("zwlr_output_head_v1", event.Opcode)
	}
}

// outputMode is the client proxy for zwlr_output_mode_v1.
type outputMode struct {
	wl.BaseProxy
	state *queryState
}

func (mode *outputMode) Dispatch(event *wl.Event) {
	switch event.Opcode {
	case modeEventSize:
		width := event.Int32()
		height := event.Int32()
		mode.state.modeSize(mode.ID(), width, height)
	case modeEventRefresh:
		mode.state.modeRefresh(mode.ID(), event.Int32())
	case modeEventPreferred:
		mode.state.modePreferred(mode.ID())
	case modeEventFinished:
		mode.state.logger.Debug("mode finished", "mode", mode.ID())
		mode.Context().Unregister(mode)
	default:
		mode.state.ignoredEvent("zwlr_output_mode_v1", event.Opcode)
	}
}
