package main

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/blockkit/pkg/types"
)

var (
	// Color palette
	errorColor = lipgloss.Color("#FF4B4B")
	mutedColor = lipgloss.Color("#666666")
	kindColor  = lipgloss.Color("#FFA500")

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	kindStyle = lipgloss.NewStyle().
			Foreground(kindColor)

	frameStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

func styled(s lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

// renderError formats err for the terminal: the message, its kind and one
// line per trace frame, outermost first.
func renderError(err error) string {
	var b strings.Builder
	b.WriteString(styled(errorStyle, "Error: "+err.Error()))

	var e *types.Error
	if !errors.As(err, &e) {
		return b.String()
	}
	b.WriteString(" ")
	b.WriteString(styled(kindStyle, "["+e.Kind.String()+"]"))
	for _, frame := range e.Trace() {
		b.WriteString("\n  ")
		b.WriteString(styled(frameStyle, frame))
	}
	return b.String()
}
