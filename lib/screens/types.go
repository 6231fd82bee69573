// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

package screens

import "fmt"

// Position is a pixel offset in the compositor's global coordinate
// space. The origin is the top-left corner of the leftmost output.
type Position struct {
	X int32
	Y int32
}

// Resolution is a display size in pixels. Both dimensions are zero
// until the compositor reports a size.
type Resolution struct {
	Width  int32
	Height int32
}

func (resolution Resolution) String() string {
	return fmt.Sprintf("%d×%d", resolution.Width, resolution.Height)
}

// Mode is one resolution/refresh combination supported by an output.
type Mode struct {
	Resolution Resolution

	// Refresh is the vertical refresh rate in millihertz. Zero when
	// the compositor did not report one.
	Refresh int32

	// Preferred marks the mode the display itself advertises as
	// preferred (typically its native mode).
	Preferred bool
}

// Output is a fully-resolved snapshot of one physical display output.
// It is a plain value: once produced it has no connection to the
// protocol objects or registries it was assembled from.
type Output struct {
	// Name is the compositor's connector name (e.g. "eDP-1"), or
	// "unknown" when the compositor never supplied one.
	Name string

	// Description is a human-readable description, usually make and
	// model. Empty when not reported.
	Description string

	// Enabled reports whether the output is currently active.
	Enabled bool

	// Scale is the output's scale factor. Defaults to 1.0.
	Scale float64

	// Position is the output's place in the global coordinate space.
	// Nil for disabled outputs, which have no position.
	Position *Position

	// Modes lists every mode the output supports, in the order the
	// compositor announced them.
	Modes []Mode

	// CurrentMode is the active mode, or nil when the output is
	// disabled or the mode could not be resolved.
	CurrentMode *Mode

	// PreferredMode is the first mode in Modes with Preferred set,
	// or nil when no mode carries the flag.
	PreferredMode *Mode
}

// PlacementWidth returns the width used to advance the x cursor when
// arranging outputs left to right: the preferred mode if known, else
// the current mode, else the first listed mode, else zero.
func (output Output) PlacementWidth() int32 {
	switch {
	case output.PreferredMode != nil:
		return output.PreferredMode.Resolution.Width
	case output.CurrentMode != nil:
		return output.CurrentMode.Resolution.Width
	case len(output.Modes) > 0:
		return output.Modes[0].Resolution.Width
	default:
		return 0
	}
}
