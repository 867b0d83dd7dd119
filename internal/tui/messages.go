// Package tui provides Bubble Tea models for the interactive board.
package tui

// OpenProjectMsg is emitted when the user opens a project's detail panel.
type OpenProjectMsg struct {
	ID string
}

// CloseDetailMsg is emitted when the detail panel is dismissed.
type CloseDetailMsg struct{}
