// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

package screens

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidArrangement marks arrangement errors caused by the
// argument itself (bad syntax, or indices that do not fit the
// discovered outputs), as opposed to failures applying a valid
// arrangement. Callers treat it as a usage error.
var ErrInvalidArrangement = errors.New("invalid arrangement")

// ParseArrangement converts a digit-string argument into zero-based
// output indices. Each digit selects one output from the discovered
// snapshot, in left-to-right placement order. An empty string means
// "no changes" and parses to nil.
func ParseArrangement(argument string) ([]int, error) {
	if argument == "" {
		return nil, nil
	}
	indices := make([]int, 0, len(argument))
	for _, character := range argument {
		if character < '0' || character > '9' {
			return nil, fmt.Errorf("%w: character %q is not a digit", ErrInvalidArrangement, character)
		}
		indices = append(indices, int(character-'0'))
	}
	return indices, nil
}

// Apply reconfigures outputs through backend so that exactly the
// outputs selected by indices are enabled, placed left to right in
// the order given, each advancing the x cursor by its placement
// width. Outputs whose index does not appear are disabled first.
// An empty arrangement applies no changes.
func Apply(backend Backend, outputs []Output, indices []int, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if len(indices) == 0 {
		return nil
	}
	if len(indices) > len(outputs) {
		return fmt.Errorf("%w: selects %d outputs but only %d were discovered", ErrInvalidArrangement, len(indices), len(outputs))
	}

	selected := make(map[int]bool, len(indices))
	for _, index := range indices {
		if index >= len(outputs) {
			return fmt.Errorf("%w: output index %d out of range (have %d outputs)", ErrInvalidArrangement, index, len(outputs))
		}
		selected[index] = true
	}

	for index, output := range outputs {
		if selected[index] {
			continue
		}
		logger.Info("disabling output", "name", output.Name)
		if err := backend.DisableOutput(output); err != nil {
			return fmt.Errorf("disabling output %s: %w", output.Name, err)
		}
	}

	var x int32
	for _, index := range indices {
		output := outputs[index]
		position := Position{X: x, Y: 0}
		logger.Info("enabling output", "name", output.Name, "x", x)
		if err := backend.EnableOutput(output, &position); err != nil {
			return fmt.Errorf("enabling output %s: %w", output.Name, err)
		}
		x += output.PlacementWidth()
	}
	return nil
}
