package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var (
	// HelpOverlayStyle defines the style for the help overlay container.
	HelpOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		MarginTop(2)
)

// HelpModel wraps the bubbles help component around any keymap, so the
// board and the detail panel can share one overlay.
type HelpModel struct {
	help   help.Model
	keymap help.KeyMap
}

// NewHelpModel creates a new help overlay model for the given keymap.
func NewHelpModel(keymap help.KeyMap) HelpModel {
	h := help.New()
	h.ShowAll = true

	return HelpModel{
		help:   h,
		keymap: keymap,
	}
}

// View renders the help overlay.
func (m HelpModel) View(width int) string {
	m.help.Width = width - 8 // Account for padding and border
	helpView := m.help.View(m.keymap)
	return HelpOverlayStyle.Render(helpView)
}
