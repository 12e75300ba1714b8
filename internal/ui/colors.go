package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	accent = "#1DB954"
	muted  = "#626262"
	amber  = "#FFA500"
	red    = "#FF4D4D"
)

var styles = newPalette()

// palette holds the [lipgloss.Style] values shared by the browse views.
type palette struct {
	title  lipgloss.Style
	tab    lipgloss.Style
	active lipgloss.Style
	status lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
	help   lipgloss.Style
}

func newPalette() palette {
	return palette{
		title:  fg(accent).Bold(true),
		tab:    fg(muted).Padding(0, 1),
		active: fg(accent).Bold(true).Underline(true).Padding(0, 1),
		status: fg(accent),
		warn:   fg(amber),
		err:    fg(red).Bold(true),
		help:   fg(muted).Italic(true),
	}
}

func fg(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// tabs renders the collection switcher with the current kind highlighted.
func (p palette) tabs(current Kind) string {
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if k == current {
			parts = append(parts, p.active.Render(k.Label()))
		} else {
			parts = append(parts, p.tab.Render(k.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
