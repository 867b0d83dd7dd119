package tui

import (
	"fmt"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robby/cockpit/internal/domain"
	"github.com/robby/cockpit/internal/store"
)

func createBoardStore(t *testing.T) *store.Store {
	t.Helper()

	mk := func(id, title string, status domain.Status, horizon domain.Horizon, priority float64, areas ...string) domain.Project {
		p := domain.NewProject()
		p.ID = id
		p.Title = title
		p.Status = status
		p.Horizon = horizon
		p.Priority = priority
		p.Area = areas
		return p
	}

	writing := mk("p-writing", "Writing pipeline", domain.StatusDoing, domain.HorizonCore, 8.5, "work")
	garden := mk("p-garden", "Garden overhaul", domain.StatusBacklog, domain.HorizonExplore, 4.0, "home")
	taxes := mk("p-taxes", "File taxes", domain.StatusNext, domain.HorizonCore, 9.0, "admin", "home")
	old := mk("p-old", "Old experiment", domain.StatusArchived, domain.HorizonExplore, 1.0)

	sub := mk("p-writing-sub", "Writing pipeline / drafts", domain.StatusDoing, domain.HorizonCore, 5.0)
	parent := "p-writing"
	sub.ParentID = &parent

	return store.New(domain.AppData{
		Version:   domain.SchemaVersion,
		Projects:  []domain.Project{writing, garden, taxes, old, sub},
		UpdatedAt: domain.Today(),
	})
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func pressKeys(t *testing.T, m BoardModel, keys ...string) BoardModel {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyPress(k))
		next, ok := updated.(BoardModel)
		require.True(t, ok, "update should return a BoardModel")
		m = next
	}
	return m
}

func TestNewBoardModel(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)

	assert.Equal(t, domain.StatusOrder, m.columns, "all six columns visible")
	assert.Equal(t, []string{"p-writing"}, m.cards[domain.StatusDoing],
		"subprojects do not get their own cards")
	assert.Equal(t, []string{"p-old"}, m.cards[domain.StatusArchived])
}

func TestHideArchivedColumn(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, true)

	assert.Len(t, m.columns, 5)
	assert.NotContains(t, m.columns, domain.StatusArchived)

	// Toggling archived back on restores the column.
	m = pressKeys(t, m, "A")
	assert.Len(t, m.columns, 6)
}

func TestBoardNavigation(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)
	m.width = 200
	m.height = 40

	assert.Equal(t, 0, m.selectedColumn)

	m = pressKeys(t, m, "l", "l")
	assert.Equal(t, 2, m.selectedColumn)

	m = pressKeys(t, m, "h")
	assert.Equal(t, 1, m.selectedColumn)

	// Left edge clamps.
	m = pressKeys(t, m, "h", "h", "h")
	assert.Equal(t, 0, m.selectedColumn)

	// Right edge clamps.
	for i := 0; i < 10; i++ {
		m = pressKeys(t, m, "l")
	}
	assert.Equal(t, len(m.columns)-1, m.selectedColumn)
}

func TestCardSelectionClamps(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)
	m.height = 40

	// Backlog has one card; selection cannot move past it.
	require.Equal(t, domain.StatusBacklog, m.currentColumn())
	m = pressKeys(t, m, "j", "j")
	assert.Equal(t, 0, m.selectedCard[domain.StatusBacklog])
	assert.Equal(t, "p-garden", m.selectedProjectID())
}

func TestJumpNavigation(t *testing.T) {
	s := createBoardStore(t)
	for i := 0; i < 20; i++ {
		p := domain.NewProject()
		p.Title = fmt.Sprintf("Backlog item %02d", i)
		p.Priority = float64(i)
		s.AddProject(p)
	}

	m := NewBoardModel(s, false)
	m.height = 40
	require.Equal(t, domain.StatusBacklog, m.currentColumn())
	total := len(m.cards[domain.StatusBacklog])
	require.Greater(t, total, pageJumpSize)

	m = pressKeys(t, m, "G")
	assert.Equal(t, total-1, m.selectedCard[domain.StatusBacklog])

	m = pressKeys(t, m, "g")
	assert.Equal(t, 0, m.selectedCard[domain.StatusBacklog])

	m = pressKeys(t, m, "ctrl+d")
	assert.Equal(t, pageJumpSize, m.selectedCard[domain.StatusBacklog])

	m = pressKeys(t, m, "ctrl+u")
	assert.Equal(t, 0, m.selectedCard[domain.StatusBacklog])
}

func TestKeyMapCoversJumpKeys(t *testing.T) {
	k := DefaultKeyMap()

	var all []key.Binding
	for _, row := range k.FullHelp() {
		all = append(all, row...)
	}

	covered := map[string]bool{}
	for _, b := range all {
		for _, s := range b.Keys() {
			covered[s] = true
		}
	}

	for _, want := range []string{"g", "G", "ctrl+d", "ctrl+u"} {
		assert.True(t, covered[want], "help should list %q", want)
	}
}

func TestSearchFilter(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)

	m.filterText = "taxes"
	m.applyFilter()

	assert.Empty(t, m.cards[domain.StatusBacklog])
	assert.Equal(t, []string{"p-taxes"}, m.cards[domain.StatusNext])

	// Area tags are searched too.
	m.filterText = "home"
	m.applyFilter()
	assert.Equal(t, []string{"p-garden"}, m.cards[domain.StatusBacklog])
	assert.Equal(t, []string{"p-taxes"}, m.cards[domain.StatusNext])

	m.filterText = ""
	m.applyFilter()
	assert.Equal(t, []string{"p-garden"}, m.cards[domain.StatusBacklog])
}

func TestAreaFilterCycle(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)

	// Distinct areas sorted: admin, home, work.
	m.cycleAreaFilter()
	assert.Equal(t, "admin", m.areaFilter)
	m.cycleAreaFilter()
	assert.Equal(t, "home", m.areaFilter)
	m.cycleAreaFilter()
	assert.Equal(t, "work", m.areaFilter)
	m.cycleAreaFilter()
	assert.Equal(t, "", m.areaFilter, "cycle wraps back to all")

	m.areaFilter = "home"
	m.applyFilter()
	assert.Equal(t, []string{"p-garden"}, m.cards[domain.StatusBacklog])
	assert.Equal(t, []string{"p-taxes"}, m.cards[domain.StatusNext])
	assert.Empty(t, m.cards[domain.StatusDoing])
}

func TestHorizonFilterCycle(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)

	m.cycleHorizonFilter()
	assert.Equal(t, domain.HorizonCore, m.horizonFilter)
	m.cycleHorizonFilter()
	assert.Equal(t, domain.HorizonPlatform, m.horizonFilter)
	m.cycleHorizonFilter()
	assert.Equal(t, domain.HorizonExplore, m.horizonFilter)
	m.cycleHorizonFilter()
	assert.Equal(t, domain.Horizon(""), m.horizonFilter)

	m.horizonFilter = domain.HorizonExplore
	m.applyFilter()
	assert.Equal(t, []string{"p-garden"}, m.cards[domain.StatusBacklog])
	assert.Empty(t, m.cards[domain.StatusNext])
}

func TestSortToggle(t *testing.T) {
	s := createBoardStore(t)
	low := domain.NewProject()
	low.ID = "p-low"
	low.Title = "Low priority"
	low.Status = domain.StatusNext
	low.Priority = 2.0
	s.AddProject(low)

	m := NewBoardModel(s, false)
	assert.Equal(t, []string{"p-taxes", "p-low"}, m.cards[domain.StatusNext],
		"priority sort is descending by default")

	m = pressKeys(t, m, "s")
	assert.Equal(t, sortByUpdated, m.sort)
	// Both share today's date; stable sort keeps store order.
	assert.Len(t, m.cards[domain.StatusNext], 2)
}

func TestMoveModeChangesStatus(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)

	// Select the backlog card and move it to column 3 (doing).
	m = pressKeys(t, m, "m")
	require.True(t, m.moveMode)

	m = pressKeys(t, m, "3")
	assert.False(t, m.moveMode)

	p, ok := s.Project("p-garden")
	require.True(t, ok)
	assert.Equal(t, domain.StatusDoing, p.Status)

	// Selection follows the moved card.
	assert.Equal(t, "p-garden", m.selectedProjectID())
}

func TestMoveModeCancels(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)

	m = pressKeys(t, m, "m", "esc")
	assert.False(t, m.moveMode)

	p, _ := s.Project("p-garden")
	assert.Equal(t, domain.StatusBacklog, p.Status)
}

func TestNewProjectInCurrentColumn(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)

	m = pressKeys(t, m, "l", "n")
	require.True(t, m.newMode)

	m = pressKeys(t, m, "R", "e", "a", "d", "enter")
	assert.False(t, m.newMode)

	found := false
	for _, p := range s.TopLevel() {
		if p.Title == "Read" {
			found = true
			assert.Equal(t, domain.StatusNext, p.Status)
		}
	}
	assert.True(t, found, "new project created in the selected column")
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)

	m = pressKeys(t, m, "D")
	assert.Equal(t, "p-garden", m.confirmDelete)

	// Any key other than y cancels.
	m = pressKeys(t, m, "n")
	assert.Empty(t, m.confirmDelete)
	_, ok := s.Project("p-garden")
	assert.True(t, ok)

	m = pressKeys(t, m, "D", "y")
	_, ok = s.Project("p-garden")
	assert.False(t, ok)
}

func TestDuplicateFromBoard(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)

	before := len(s.TopLevel())
	m = pressKeys(t, m, "y")
	assert.Len(t, s.TopLevel(), before+1)
	assert.NotEmpty(t, m.notice)
}

func TestEnterOpensProject(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)

	updated, cmd := m.Update(keyPress("enter"))
	_ = updated
	require.NotNil(t, cmd)

	msg := cmd()
	open, ok := msg.(OpenProjectMsg)
	require.True(t, ok)
	assert.Equal(t, "p-garden", open.ID)
}

func TestFormatCardText(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)

	p, _ := s.Project("p-writing")
	text := m.formatCardText(p, 30)
	assert.Contains(t, text, "Writing pipeline")
	assert.Contains(t, text, "8.5")
	assert.Contains(t, text, "▸1", "subproject count badge")

	p, _ = s.Project("p-taxes")
	text = m.formatCardText(p, 30)
	assert.NotContains(t, text, "▸")
}

func TestViewRenders(t *testing.T) {
	s := createBoardStore(t)
	m := NewBoardModel(s, false)
	m.width = 160
	m.height = 40

	view := m.View()
	assert.Contains(t, view, "Backlog")
	assert.Contains(t, view, "Writing pipeline")
	assert.NotContains(t, view, "drafts", "subprojects stay off the board")
}
