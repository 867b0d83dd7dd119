package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robby/cockpit/internal/domain"
	"github.com/robby/cockpit/internal/store"
)

// Layout constants
const (
	minColumnWidth = 20
	maxColumnWidth = 35
	pageJumpSize   = 10 // Number of cards to jump with Ctrl+D/U
)

// sortKey selects the within-column card ordering.
type sortKey int

const (
	sortByPriority sortKey = iota
	sortByUpdated
)

// Styles for the board view - base styles without width/height (set dynamically)
var (
	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedCardStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	moveModeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("205")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	confirmStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("196")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)
)

// BoardModel represents the main kanban board view. Columns are the six
// fixed statuses; cards are the top-level projects (subprojects surface as
// a count badge on their parent's card).
type BoardModel struct {
	// Dependencies
	store *store.Store

	// UI components
	keymap      KeyMap
	help        HelpModel
	filterInput textinput.Model
	titleInput  textinput.Model

	// Board state
	columns        []domain.Status
	cards          map[domain.Status][]string // Column -> project IDs after filter+sort
	selectedColumn int
	columnOffset   int                   // Horizontal scroll offset (first visible column index)
	selectedCard   map[domain.Status]int // Column -> selected card index
	scrollOffset   map[domain.Status]int // Column -> scroll offset

	// View state
	width         int
	height        int
	showHelp      bool
	filterMode    bool
	filterText    string
	areaFilter    string         // "" means all areas
	horizonFilter domain.Horizon // "" means all horizons
	sort          sortKey
	hideArchived  bool
	moveMode      bool
	newMode       bool
	confirmDelete string // project id awaiting delete confirmation
	notice        string
}

// NewBoardModel creates a new board model.
func NewBoardModel(s *store.Store, hideArchived bool) BoardModel {
	fi := textinput.New()
	fi.Placeholder = "Search..."
	fi.Prompt = "/ "

	ti := textinput.New()
	ti.Placeholder = "New project title..."
	ti.Prompt = "+ "
	ti.CharLimit = 120

	m := BoardModel{
		store:        s,
		keymap:       DefaultKeyMap(),
		help:         NewHelpModel(DefaultKeyMap()),
		filterInput:  fi,
		titleInput:   ti,
		cards:        make(map[domain.Status][]string),
		selectedCard: make(map[domain.Status]int),
		scrollOffset: make(map[domain.Status]int),
		hideArchived: hideArchived,
	}
	m.rebuildColumns()
	m.applyFilter()
	return m
}

// Init initializes the board.
func (m BoardModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input.
func (m BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	m.notice = ""

	// Help overlay
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "q" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	// Filter mode
	if m.filterMode {
		switch msg.String() {
		case "enter":
			m.filterMode = false
			m.filterText = m.filterInput.Value()
			(&m).applyFilter()
			return m, nil
		case "esc":
			m.filterMode = false
			m.filterInput.SetValue(m.filterText)
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return m, cmd
		}
	}

	// New project title entry
	if m.newMode {
		switch msg.String() {
		case "enter":
			title := strings.TrimSpace(m.titleInput.Value())
			m.newMode = false
			m.titleInput.SetValue("")
			if title != "" {
				p := domain.NewProject()
				p.Title = title
				p.Status = m.currentColumn()
				created := m.store.AddProject(p)
				(&m).applyFilter()
				(&m).selectProject(created.ID)
			}
			return m, nil
		case "esc":
			m.newMode = false
			m.titleInput.SetValue("")
			return m, nil
		default:
			var cmd tea.Cmd
			m.titleInput, cmd = m.titleInput.Update(msg)
			return m, cmd
		}
	}

	// Delete confirmation
	if m.confirmDelete != "" {
		switch msg.String() {
		case "y", "Y", "enter":
			m.store.DeleteProject(m.confirmDelete)
			m.confirmDelete = ""
			(&m).applyFilter()
		default:
			m.confirmDelete = ""
		}
		return m, nil
	}

	// Move mode
	if m.moveMode {
		return m.handleMoveMode(msg)
	}

	// Normal navigation
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "/":
		m.filterMode = true
		m.filterInput.Focus()
	case "h", "left":
		if m.selectedColumn > 0 {
			m.selectedColumn--
			(&m).adjustColumnScroll()
		}
	case "l", "right":
		if m.selectedColumn < len(m.columns)-1 {
			m.selectedColumn++
			(&m).adjustColumnScroll()
		}
	case "j", "down":
		(&m).moveCardSelection(1)
	case "k", "up":
		(&m).moveCardSelection(-1)
	case "g":
		(&m).jumpToCard(0)
	case "G":
		(&m).jumpToCard(-1)
	case "ctrl+d":
		(&m).moveCardSelection(pageJumpSize)
	case "ctrl+u":
		(&m).moveCardSelection(-pageJumpSize)
	case "m":
		if m.selectedProjectID() != "" {
			m.moveMode = true
		}
	case "n":
		m.newMode = true
		m.titleInput.Focus()
	case "D":
		if id := m.selectedProjectID(); id != "" {
			m.confirmDelete = id
		}
	case "y":
		if id := m.selectedProjectID(); id != "" {
			if copied := m.store.DuplicateProject(id); copied != nil {
				(&m).applyFilter()
				(&m).selectProject(copied.ID)
				m.notice = fmt.Sprintf("Duplicated as %q", copied.Title)
			}
		}
	case "a":
		(&m).cycleAreaFilter()
		(&m).applyFilter()
	case "H":
		(&m).cycleHorizonFilter()
		(&m).applyFilter()
	case "s":
		if m.sort == sortByPriority {
			m.sort = sortByUpdated
		} else {
			m.sort = sortByPriority
		}
		(&m).applyFilter()
	case "A":
		m.hideArchived = !m.hideArchived
		(&m).rebuildColumns()
		(&m).applyFilter()
	case "enter":
		if id := m.selectedProjectID(); id != "" {
			return m, func() tea.Msg { return OpenProjectMsg{ID: id} }
		}
	}

	return m, nil
}

// handleMoveMode handles key presses in move mode. Any column is a valid
// target; status transitions are unrestricted.
func (m BoardModel) handleMoveMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.moveMode = false
		return m, nil
	case "1", "2", "3", "4", "5", "6":
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(m.columns) {
			if id := m.selectedProjectID(); id != "" {
				target := m.columns[idx]
				m.store.UpdateProject(id, func(p domain.Project) domain.Project {
					p.Status = target
					return p
				})
				(&m).applyFilter()
				(&m).selectProject(id)
			}
		}
		m.moveMode = false
		return m, nil
	}
	return m, nil
}

// View renders the board - fills the terminal exactly.
func (m BoardModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	var sections []string

	sections = append(sections, m.renderHeader(width))
	sections = append(sections, m.renderSecondHeader(width))

	if m.filterMode {
		sections = append(sections, m.filterInput.View())
	}
	if m.newMode {
		sections = append(sections, m.titleInput.View())
	}
	if m.moveMode {
		moveBar := moveModeStyle.Render("MOVE") + " Press 1-6 to select column, ESC to cancel"
		sections = append(sections, moveBar)
	}
	if m.confirmDelete != "" {
		title := m.confirmDelete
		if p, ok := m.store.Project(m.confirmDelete); ok {
			title = p.Title
		}
		bar := confirmStyle.Render("DELETE") +
			fmt.Sprintf(" Delete %q and its subprojects? [y]es [any other key] cancel", title)
		sections = append(sections, bar)
	}

	boardHeight := height - 2 // header + second header
	if m.filterMode {
		boardHeight--
	}
	if m.newMode {
		boardHeight--
	}
	if m.moveMode {
		boardHeight--
	}
	if m.confirmDelete != "" {
		boardHeight--
	}
	if boardHeight < 5 {
		boardHeight = 5
	}

	var mainContent string
	if m.showHelp {
		helpContent := m.help.View(width)
		helpLines := strings.Split(helpContent, "\n")
		if len(helpLines) > boardHeight {
			helpLines = helpLines[:boardHeight]
		}
		mainContent = strings.Join(helpLines, "\n")
	} else {
		mainContent = m.renderBoard(width, boardHeight)
	}
	sections = append(sections, mainContent)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders a single header line with title on left and filter
// state on right.
func (m BoardModel) renderHeader(width int) string {
	title := "cockpit"

	var statusParts []string
	total := 0
	for _, ids := range m.cards {
		total += len(ids)
	}
	statusParts = append(statusParts, fmt.Sprintf("%d projects", total))

	if m.sort == sortByUpdated {
		statusParts = append(statusParts, "sort:updated")
	} else {
		statusParts = append(statusParts, "sort:priority")
	}
	if m.areaFilter != "" {
		statusParts = append(statusParts, "area:"+m.areaFilter)
	}
	if m.horizonFilter != "" {
		statusParts = append(statusParts, "horizon:"+string(m.horizonFilter))
	}
	if m.filterText != "" {
		statusParts = append(statusParts, "/"+m.filterText)
	}
	if m.hideArchived {
		statusParts = append(statusParts, "archived:hidden")
	}
	statusParts = append(statusParts, "[?]help")

	status := strings.Join(statusParts, " | ")

	padding := width - len(title) - lipgloss.Width(status) - 2
	if padding < 1 {
		padding = 1
	}

	return titleStyle.Render(title) + strings.Repeat(" ", padding) + DimStyle.Render(status)
}

// renderSecondHeader renders navigation hints and position info.
func (m BoardModel) renderSecondHeader(width int) string {
	left := "h/l:col j/k:card m:move n:new enter:open"

	right := ""
	if m.notice != "" {
		right = DimStyle.Render(m.notice)
	} else if len(m.columns) > 0 {
		col := m.currentColumn()
		cards := m.cards[col]
		colPos := fmt.Sprintf("col %d/%d", m.selectedColumn+1, len(m.columns))
		if len(cards) > 0 {
			right = fmt.Sprintf("%s | card %d/%d", colPos, m.selectedCard[col]+1, len(cards))
		} else {
			right = colPos
		}
	}

	padding := width - len(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return DimStyle.Render(left) + strings.Repeat(" ", padding) + right
}

// renderBoard renders the kanban columns within the given dimensions.
// Implements horizontal scrolling (carousel) when columns overflow.
func (m BoardModel) renderBoard(totalWidth, totalHeight int) string {
	numCols := len(m.columns)
	if numCols == 0 {
		return ""
	}

	// lipgloss borders add 2 lines to the content height.
	colContentHeight := totalHeight - 2
	if colContentHeight < 3 {
		colContentHeight = 3
	}

	maxVisibleCols := totalWidth / minColumnWidth
	if maxVisibleCols < 1 {
		maxVisibleCols = 1
	}

	visibleCols := maxVisibleCols
	if visibleCols > numCols {
		visibleCols = numCols
	}

	colWidth := totalWidth / visibleCols
	if colWidth > maxColumnWidth {
		colWidth = maxColumnWidth
	}
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	// Content width inside column (minus border and padding: 2 border + 2 padding = 4)
	innerWidth := colWidth - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	maxCardLines := colContentHeight - 1 // reserve the header line
	if maxCardLines < 1 {
		maxCardLines = 1
	}

	startCol := m.columnOffset
	endCol := startCol + visibleCols
	if endCol > numCols {
		endCol = numCols
		startCol = endCol - visibleCols
		if startCol < 0 {
			startCol = 0
		}
	}

	columnViews := make([]string, 0, visibleCols)

	if startCol > 0 {
		indicator := lipgloss.NewStyle().
			Width(2).
			Height(colContentHeight+2).
			Foreground(lipgloss.Color("205")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("◀")
		columnViews = append(columnViews, indicator)
	}

	for i := startCol; i < endCol; i++ {
		isSelected := i == m.selectedColumn
		columnViews = append(columnViews, m.renderColumn(m.columns[i], isSelected, colWidth, colContentHeight, innerWidth, maxCardLines, i+1))
	}

	if endCol < numCols {
		indicator := lipgloss.NewStyle().
			Width(2).
			Height(colContentHeight+2).
			Foreground(lipgloss.Color("205")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("▶")
		columnViews = append(columnViews, indicator)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)
}

// renderColumn renders a single column with proper sizing.
func (m BoardModel) renderColumn(col domain.Status, selected bool, width, innerHeight, innerWidth, maxCardLines, colNum int) string {
	cards := m.cards[col]

	headerText := fmt.Sprintf("[%d] %s (%d)", colNum, domain.StatusLabels[col], len(cards))
	if len(headerText) > innerWidth {
		headerText = headerText[:innerWidth-1] + "…"
	}

	scrollOffset := m.scrollOffset[col]
	selectedIdx := m.selectedCard[col]

	cardSlots := maxCardLines - 1
	if cardSlots < 1 {
		cardSlots = 1
	}

	needUpIndicator := scrollOffset > 0
	availableSlots := cardSlots
	if needUpIndicator {
		availableSlots--
	}

	endIdx := scrollOffset + availableSlots
	if endIdx > len(cards) {
		endIdx = len(cards)
	}

	needDownIndicator := false
	if endIdx < len(cards) {
		needDownIndicator = true
		availableSlots--
		endIdx = scrollOffset + availableSlots
		if endIdx > len(cards) {
			endIdx = len(cards)
		}
	}

	var lines []string
	lines = append(lines, StatusStyle(col).Render(headerText))

	if needUpIndicator {
		lines = append(lines, DimStyle.Render(fmt.Sprintf("↑ %d more", scrollOffset)))
	}

	for i := scrollOffset; i < endIdx; i++ {
		project, ok := m.store.Project(cards[i])
		if !ok {
			continue
		}

		cardText := m.formatCardText(project, innerWidth-2) // 2 for "> " or "  " prefix
		if selected && i == selectedIdx {
			lines = append(lines, selectedCardStyle.Render("> "+cardText))
		} else {
			lines = append(lines, cardStyle.Render("  "+cardText))
		}
	}

	remaining := len(cards) - endIdx
	if needDownIndicator && remaining > 0 {
		lines = append(lines, DimStyle.Render(fmt.Sprintf("↓ %d more", remaining)))
	}

	if len(cards) == 0 {
		lines = append(lines, DimStyle.Render("(empty)"))
	}

	content := strings.Join(lines, "\n")

	borderColor := lipgloss.Color("240")
	if selected {
		borderColor = lipgloss.Color("205")
	}

	colStyle := lipgloss.NewStyle().
		Width(width-2).      // Subtract border width
		Height(innerHeight). // Inner content height (border adds 2 to total)
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor)

	return colStyle.Render(content)
}

// formatCardText formats a project card with max width. The right-aligned
// suffix carries the priority and, when present, the subproject count.
func (m BoardModel) formatCardText(p domain.Project, maxWidth int) string {
	title := p.Title

	suffix := fmt.Sprintf("%.1f", p.Priority)
	if subs := len(m.store.Subprojects(p.ID)); subs > 0 {
		suffix = fmt.Sprintf("▸%d %s", subs, suffix)
	}

	availableForTitle := maxWidth - lipgloss.Width(suffix) - 1
	if availableForTitle < 5 {
		availableForTitle = 5
	}
	if len(title) > availableForTitle {
		title = title[:availableForTitle-1] + "…"
	}

	padding := maxWidth - len(title) - lipgloss.Width(suffix)
	if padding < 1 {
		padding = 1
	}

	return title + strings.Repeat(" ", padding) + DimStyle.Render(suffix)
}

// rebuildColumns rebuilds the visible column list.
func (m *BoardModel) rebuildColumns() {
	m.columns = m.columns[:0]
	for _, status := range domain.StatusOrder {
		if m.hideArchived && status == domain.StatusArchived {
			continue
		}
		m.columns = append(m.columns, status)
	}
	if m.selectedColumn >= len(m.columns) {
		m.selectedColumn = 0
	}
}

// applyFilter filters and sorts the top-level projects into columns.
func (m *BoardModel) applyFilter() {
	byStatus := m.store.Columns()
	m.cards = make(map[domain.Status][]string)

	for _, col := range m.columns {
		projects := byStatus[col]
		filtered := make([]domain.Project, 0, len(projects))
		for _, p := range projects {
			if m.filterText != "" && !matchesSearch(p, m.filterText) {
				continue
			}
			if m.areaFilter != "" && !containsArea(p.Area, m.areaFilter) {
				continue
			}
			if m.horizonFilter != "" && p.Horizon != m.horizonFilter {
				continue
			}
			filtered = append(filtered, p)
		}

		sort.SliceStable(filtered, func(i, j int) bool {
			if m.sort == sortByUpdated {
				return filtered[i].UpdatedAt > filtered[j].UpdatedAt
			}
			return filtered[i].Priority > filtered[j].Priority
		})

		ids := make([]string, len(filtered))
		for i, p := range filtered {
			ids[i] = p.ID
		}
		m.cards[col] = ids
	}

	// Reset scroll and clamp selection when the card set changes.
	for col := range m.cards {
		m.scrollOffset[col] = 0
		if m.selectedCard[col] >= len(m.cards[col]) {
			if len(m.cards[col]) > 0 {
				m.selectedCard[col] = len(m.cards[col]) - 1
			} else {
				m.selectedCard[col] = 0
			}
		}
	}
}

// matchesSearch reports whether the query matches the project's title,
// description, notes, or any area tag, case-insensitively.
func matchesSearch(p domain.Project, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Notes), q) {
		return true
	}
	for _, area := range p.Area {
		if strings.Contains(strings.ToLower(area), q) {
			return true
		}
	}
	return false
}

func containsArea(areas []string, area string) bool {
	for _, a := range areas {
		if a == area {
			return true
		}
	}
	return false
}

// cycleAreaFilter advances the area filter through every distinct tag in
// the collection, then back to "all".
func (m *BoardModel) cycleAreaFilter() {
	seen := map[string]bool{}
	var areas []string
	for _, p := range m.store.TopLevel() {
		for _, a := range p.Area {
			if !seen[a] {
				seen[a] = true
				areas = append(areas, a)
			}
		}
	}
	sort.Strings(areas)

	if len(areas) == 0 {
		m.areaFilter = ""
		return
	}
	if m.areaFilter == "" {
		m.areaFilter = areas[0]
		return
	}
	for i, a := range areas {
		if a == m.areaFilter {
			if i+1 < len(areas) {
				m.areaFilter = areas[i+1]
			} else {
				m.areaFilter = ""
			}
			return
		}
	}
	m.areaFilter = ""
}

// cycleHorizonFilter advances all -> core -> platform -> explore -> all.
func (m *BoardModel) cycleHorizonFilter() {
	switch m.horizonFilter {
	case "":
		m.horizonFilter = domain.HorizonCore
	case domain.HorizonCore:
		m.horizonFilter = domain.HorizonPlatform
	case domain.HorizonPlatform:
		m.horizonFilter = domain.HorizonExplore
	default:
		m.horizonFilter = ""
	}
}

// currentColumn returns the selected column's status.
func (m BoardModel) currentColumn() domain.Status {
	if len(m.columns) == 0 {
		return domain.StatusBacklog
	}
	return m.columns[m.selectedColumn]
}

// selectedProjectID returns the id of the selected card, or "".
func (m BoardModel) selectedProjectID() string {
	col := m.currentColumn()
	cards := m.cards[col]
	if len(cards) == 0 {
		return ""
	}
	idx := m.selectedCard[col]
	if idx >= len(cards) {
		idx = 0
	}
	return cards[idx]
}

// selectProject moves the selection to the given project, wherever its card
// landed after the last filter pass.
func (m *BoardModel) selectProject(id string) {
	for i, col := range m.columns {
		for j, cardID := range m.cards[col] {
			if cardID == id {
				m.selectedColumn = i
				m.selectedCard[col] = j
				m.adjustColumnScroll()
				m.adjustScroll(col)
				return
			}
		}
	}
}

// moveCardSelection moves the card selection up or down by delta.
func (m *BoardModel) moveCardSelection(delta int) {
	col := m.currentColumn()
	cards := m.cards[col]
	if len(cards) == 0 {
		return
	}

	newIdx := m.selectedCard[col] + delta
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(cards) {
		newIdx = len(cards) - 1
	}

	m.selectedCard[col] = newIdx
	m.adjustScroll(col)
}

// jumpToCard jumps to a specific card index. Use -1 to jump to last card.
func (m *BoardModel) jumpToCard(idx int) {
	col := m.currentColumn()
	cards := m.cards[col]
	if len(cards) == 0 {
		return
	}

	if idx < 0 || idx >= len(cards) {
		idx = len(cards) - 1
	}

	m.selectedCard[col] = idx
	m.adjustScroll(col)
}

// adjustScroll ensures the selected card is visible.
func (m *BoardModel) adjustScroll(col domain.Status) {
	selectedIdx := m.selectedCard[col]
	scrollOffset := m.scrollOffset[col]

	contentHeight := m.height - 4 // headers + column borders
	if m.moveMode {
		contentHeight--
	}
	if m.filterMode {
		contentHeight--
	}
	cardsHeight := contentHeight - 3 // header + potential scroll indicators
	if cardsHeight < 3 {
		cardsHeight = 3
	}

	if selectedIdx < scrollOffset {
		m.scrollOffset[col] = selectedIdx
	}
	if selectedIdx >= scrollOffset+cardsHeight {
		m.scrollOffset[col] = selectedIdx - cardsHeight + 1
	}
}

// adjustColumnScroll ensures the selected column is visible (horizontal carousel).
func (m *BoardModel) adjustColumnScroll() {
	if len(m.columns) == 0 || m.width == 0 {
		return
	}

	visibleCols := m.width / minColumnWidth
	if visibleCols < 1 {
		visibleCols = 1
	}
	if visibleCols > len(m.columns) {
		visibleCols = len(m.columns)
	}

	if m.selectedColumn < m.columnOffset {
		m.columnOffset = m.selectedColumn
	}
	if m.selectedColumn >= m.columnOffset+visibleCols {
		m.columnOffset = m.selectedColumn - visibleCols + 1
	}
}
