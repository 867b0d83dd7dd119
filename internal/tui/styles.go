package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robby/cockpit/internal/domain"
)

var (
	// SelectedItemStyle is used for highlighted/selected items.
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")). // Light purple
				Bold(true)

	// NormalItemStyle is used for non-selected items.
	NormalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// DimStyle is used for secondary text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")) // Dark gray

	// DoneStyle renders completed todos.
	DoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)
)

// statusColors maps each kanban column to its accent color.
var statusColors = map[domain.Status]lipgloss.Color{
	domain.StatusBacklog:  lipgloss.Color("244"),
	domain.StatusNext:     lipgloss.Color("75"),
	domain.StatusDoing:    lipgloss.Color("205"),
	domain.StatusWaiting:  lipgloss.Color("220"),
	domain.StatusDone:     lipgloss.Color("34"),
	domain.StatusArchived: lipgloss.Color("240"),
}

// StatusStyle returns the accent style for a column header.
func StatusStyle(s domain.Status) lipgloss.Style {
	color, ok := statusColors[s]
	if !ok {
		color = lipgloss.Color("252")
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
