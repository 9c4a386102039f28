package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	ColorPass   = lipgloss.Color("2") // green
	ColorWarn   = lipgloss.Color("3") // yellow
	ColorAccent = lipgloss.Color("6") // cyan
	ColorMuted  = lipgloss.Color("8") // gray
)

var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorWarn)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// MergeSummary renders the one-line status printed after a merge.
func MergeSummary(conflicts int, useColor bool) string {
	if conflicts == 0 {
		msg := "merged cleanly"
		if useColor {
			return PassStyle.Render(msg)
		}
		return msg
	}
	plural := "s"
	if conflicts == 1 {
		plural = ""
	}
	msg := fmt.Sprintf("merged with %d conflict%s", conflicts, plural)
	if useColor {
		return WarnStyle.Render(msg)
	}
	return msg
}

// DiffLine renders one diff entry: a marker, the message context (if any)
// and the source text.
func DiffLine(marker, context, source string, useColor bool) string {
	id := source
	if context != "" {
		id = context + "|" + source
	}
	if source == "" && context == "" {
		id = MutedStyle.Render("<header>")
		if !useColor {
			id = "<header>"
		}
	}
	line := marker + " " + id
	if !useColor {
		return line
	}
	switch marker {
	case "+":
		return PassStyle.Render(line)
	case "-":
		return MutedStyle.Render(line)
	default:
		return AccentStyle.Render(line)
	}
}
