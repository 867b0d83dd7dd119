package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/robby/cockpit/internal/store"
)

// Screen represents the current view.
type Screen int

const (
	ScreenBoard Screen = iota
	ScreenDetail
)

// AppModel is the root model coordinating screen transitions. The board is
// cached across detail trips so filters and selection survive.
type AppModel struct {
	store  *store.Store
	screen Screen
	board  *BoardModel
	detail tea.Model
}

// NewAppModel creates the root application model.
func NewAppModel(s *store.Store, hideArchived bool) AppModel {
	board := NewBoardModel(s, hideArchived)
	return AppModel{
		store:  s,
		screen: ScreenBoard,
		board:  &board,
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.board.Init()
}

// Update routes messages to the active screen and handles transitions.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenProjectMsg:
		detail := NewDetailModel(m.store, msg.ID)
		m.detail = detail
		m.screen = ScreenDetail
		return m, m.detail.Init()

	case CloseDetailMsg:
		m.screen = ScreenBoard
		m.board.applyFilter()
		// The board needs its dimensions back after the detail view owned
		// the terminal.
		return m, tea.WindowSize()

	case tea.WindowSizeMsg:
		// Keep the cached board sized even while the detail screen is up.
		updated, _ := m.board.Update(msg)
		if b, ok := updated.(BoardModel); ok {
			*m.board = b
		}
		if m.screen == ScreenDetail && m.detail != nil {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.screen {
	case ScreenDetail:
		if m.detail != nil {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	default:
		updated, cmd := m.board.Update(msg)
		if b, ok := updated.(BoardModel); ok {
			*m.board = b
		}
		return m, cmd
	}

	return m, nil
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.screen == ScreenDetail && m.detail != nil {
		return m.detail.View()
	}
	return m.board.View()
}

// Run starts the TUI program.
func Run(s *store.Store, hideArchived bool) error {
	p := tea.NewProgram(NewAppModel(s, hideArchived), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
