// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

package screens

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	enabledStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	disabledStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	preferredStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	descriptionStyle = lipgloss.NewStyle().Faint(true)
)

// FormatMode renders a mode as "1920×1080@60.00kHz♥", where the
// refresh suffix is omitted when unknown and the heart marks the
// preferred mode.
func FormatMode(mode Mode) string {
	var builder strings.Builder
	builder.WriteString(mode.Resolution.String())
	if mode.Refresh != 0 {
		fmt.Fprintf(&builder, "@%.2fkHz", float64(mode.Refresh)/1000.0)
	}
	if mode.Preferred {
		builder.WriteString(preferredStyle.Render("♥"))
	}
	return builder.String()
}

// FormatOutput renders a single output line: enabled indicator, name,
// scale (when not 1.0), current mode, position (when not the origin),
// mode count, and description.
func FormatOutput(output Output) string {
	var builder strings.Builder
	if output.Enabled {
		builder.WriteString(enabledStyle.Render("⯀ "))
	} else {
		builder.WriteString(disabledStyle.Render("⮽ "))
	}
	builder.WriteString(output.Name)
	if math.Abs(output.Scale-1.0) > 1e-9 {
		fmt.Fprintf(&builder, " (×%.2f)", output.Scale)
	}
	if output.CurrentMode != nil {
		builder.WriteString(" ")
		builder.WriteString(FormatMode(*output.CurrentMode))
	}
	if output.Position != nil && (output.Position.X != 0 || output.Position.Y != 0) {
		fmt.Fprintf(&builder, " +%d,%d", output.Position.X, output.Position.Y)
	}
	fmt.Fprintf(&builder, ", %d modes", len(output.Modes))
	if output.Description != "" {
		builder.WriteString(" ")
		builder.WriteString(descriptionStyle.Render("[" + output.Description + "]"))
	}
	return builder.String()
}

// FormatList renders the numbered snapshot listing printed by the CLI.
// The number before each line is the index users pass in an
// arrangement argument. When showModes is set, every supported mode
// is listed indented under its output.
func FormatList(outputs []Output, showModes bool) string {
	var builder strings.Builder
	for index, output := range outputs {
		fmt.Fprintf(&builder, "%d: %s\n", index, FormatOutput(output))
		if !showModes {
			continue
		}
		for modeIndex, mode := range output.Modes {
			fmt.Fprintf(&builder, "  %d: %s\n", modeIndex, FormatMode(mode))
		}
	}
	return builder.String()
}
