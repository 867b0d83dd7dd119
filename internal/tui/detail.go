package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pkg/browser"

	"github.com/robby/cockpit/internal/domain"
	"github.com/robby/cockpit/internal/store"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// detailFocus tracks which pane has keyboard focus.
type detailFocus int

const (
	focusTodos detailFocus = iota
	focusSubprojects
)

// detailInput tracks which text entry, if any, is active.
type detailInput int

const (
	inputNone detailInput = iota
	inputAddTodo
	inputEditTodo
	inputSplitTitle
	inputEditNotes
)

var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	splitMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// DetailModel shows a single project: metadata and subprojects on the left,
// the todo list on the right. All edits go straight to the store.
type DetailModel struct {
	store     *store.Store
	projectID string

	input      detailInput
	textInput  textinput.Model
	notesInput textarea.Model

	focus        detailFocus
	selectedTodo int
	selectedSub  int
	splitPicks   map[string]bool // todo ids marked for split

	width   int
	height  int
	message string
}

// NewDetailModel creates a detail model for the given project.
func NewDetailModel(s *store.Store, projectID string) DetailModel {
	ti := textinput.New()
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "Notes..."
	ta.CharLimit = 0

	return DetailModel{
		store:      s,
		projectID:  projectID,
		textInput:  ti,
		notesInput: ta,
		splitPicks: make(map[string]bool),
	}
}

// Init initializes the detail view.
func (m DetailModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages.
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.notesInput.SetWidth(m.width - 6)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m DetailModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	m.message = ""

	if m.input == inputEditNotes {
		switch msg.String() {
		case "esc":
			m.input = inputNone
			return m, nil
		case "ctrl+s":
			notes := m.notesInput.Value()
			m.store.UpdateProject(m.projectID, func(p domain.Project) domain.Project {
				p.Notes = notes
				return p
			})
			m.input = inputNone
			return m, nil
		default:
			var cmd tea.Cmd
			m.notesInput, cmd = m.notesInput.Update(msg)
			return m, cmd
		}
	}

	if m.input != inputNone {
		switch msg.String() {
		case "enter":
			return m.commitInput()
		case "esc":
			m.input = inputNone
			m.textInput.SetValue("")
			return m, nil
		default:
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
	}

	project, ok := m.store.Project(m.projectID)
	if !ok {
		// Project vanished underneath us; bail out to the board.
		return m, func() tea.Msg { return CloseDetailMsg{} }
	}
	todos := project.NextTodos
	subs := m.store.Subprojects(m.projectID)

	switch msg.String() {
	case "q", "esc":
		return m, func() tea.Msg { return CloseDetailMsg{} }

	case "tab":
		if m.focus == focusTodos {
			m.focus = focusSubprojects
		} else {
			m.focus = focusTodos
		}

	case "j", "down":
		if m.focus == focusTodos {
			if m.selectedTodo < len(todos)-1 {
				m.selectedTodo++
			}
		} else if m.selectedSub < len(subs)-1 {
			m.selectedSub++
		}
	case "k", "up":
		if m.focus == focusTodos {
			if m.selectedTodo > 0 {
				m.selectedTodo--
			}
		} else if m.selectedSub > 0 {
			m.selectedSub--
		}

	case " ":
		if todo := m.selectedTodoItem(todos); todo != nil {
			m.store.UpdateTodo(m.projectID, todo.ID, func(t domain.TodoItem) domain.TodoItem {
				t.Done = !t.Done
				return t
			})
		}

	case "a":
		m.input = inputAddTodo
		m.textInput.Placeholder = "New todo..."
		m.textInput.SetValue("")
		m.textInput.Focus()

	case "e":
		if todo := m.selectedTodoItem(todos); todo != nil {
			m.input = inputEditTodo
			m.textInput.Placeholder = "Edit todo..."
			m.textInput.SetValue(todo.Text)
			m.textInput.Focus()
		}

	case "d":
		if todo := m.selectedTodoItem(todos); todo != nil {
			m.store.DeleteTodo(m.projectID, todo.ID)
			delete(m.splitPicks, todo.ID)
			if m.selectedTodo >= len(todos)-1 && m.selectedTodo > 0 {
				m.selectedTodo--
			}
		}

	case "J":
		if todo := m.selectedTodoItem(todos); todo != nil {
			m.store.MoveTodo(m.projectID, todo.ID, store.MoveDown)
			if m.selectedTodo < len(todos)-1 {
				m.selectedTodo++
			}
		}
	case "K":
		if todo := m.selectedTodoItem(todos); todo != nil {
			m.store.MoveTodo(m.projectID, todo.ID, store.MoveUp)
			if m.selectedTodo > 0 {
				m.selectedTodo--
			}
		}

	case "x":
		if todo := m.selectedTodoItem(todos); todo != nil {
			if m.splitPicks[todo.ID] {
				delete(m.splitPicks, todo.ID)
			} else {
				m.splitPicks[todo.ID] = true
			}
		}

	case "s":
		if !project.IsTopLevel() {
			m.message = "Cannot split a subproject"
			break
		}
		if len(m.splitPicks) == 0 {
			m.message = "Mark todos with x first"
			break
		}
		m.input = inputSplitTitle
		m.textInput.Placeholder = "Subproject title..."
		m.textInput.SetValue("")
		m.textInput.Focus()

	case "S":
		if !project.IsTopLevel() {
			m.message = "Subprojects cannot nest further"
			break
		}
		sub := domain.NewSubproject(m.projectID)
		sub.Title = project.Title + " / new"
		created := m.store.AddProject(sub)
		m.focus = focusSubprojects
		m.selectedSub = len(m.store.Subprojects(m.projectID)) - 1
		m.message = fmt.Sprintf("Created %q", created.Title)

	case "y":
		if copied := m.store.DuplicateProject(m.projectID); copied != nil {
			m.message = fmt.Sprintf("Duplicated as %q", copied.Title)
		}

	case "N":
		m.input = inputEditNotes
		m.notesInput.SetValue(project.Notes)
		m.notesInput.Focus()

	case "o":
		if url := firstURL(project); url != "" {
			if err := browser.OpenURL(url); err != nil {
				m.message = "Could not open " + url
			}
		} else {
			m.message = "No URL in description or notes"
		}

	case "enter":
		if m.focus == focusSubprojects && m.selectedSub < len(subs) {
			id := subs[m.selectedSub].ID
			return m, func() tea.Msg { return OpenProjectMsg{ID: id} }
		}
	}

	return m, nil
}

// commitInput applies whichever text entry is active.
func (m DetailModel) commitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.textInput.Value())
	mode := m.input
	m.input = inputNone
	m.textInput.SetValue("")

	switch mode {
	case inputAddTodo:
		if value != "" {
			m.store.AddTodo(m.projectID, value)
		}
	case inputEditTodo:
		project, ok := m.store.Project(m.projectID)
		if !ok {
			break
		}
		if todo := m.selectedTodoItem(project.NextTodos); todo != nil && value != "" {
			m.store.UpdateTodo(m.projectID, todo.ID, func(t domain.TodoItem) domain.TodoItem {
				t.Text = value
				return t
			})
		}
	case inputSplitTitle:
		if value == "" {
			m.message = "Split needs a title"
			break
		}
		ids := make([]string, 0, len(m.splitPicks))
		for id := range m.splitPicks {
			ids = append(ids, id)
		}
		if sub := m.store.SplitTodos(m.projectID, ids, value); sub != nil {
			m.splitPicks = make(map[string]bool)
			m.selectedTodo = 0
			m.message = fmt.Sprintf("Split into %q", sub.Title)
		} else {
			m.message = "Split refused"
		}
	}

	return m, nil
}

// selectedTodoItem returns a pointer into a copy of the selected todo, or nil.
func (m DetailModel) selectedTodoItem(todos []domain.TodoItem) *domain.TodoItem {
	if m.focus != focusTodos || m.selectedTodo < 0 || m.selectedTodo >= len(todos) {
		return nil
	}
	t := todos[m.selectedTodo]
	return &t
}

// View renders the detail screen.
func (m DetailModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	project, ok := m.store.Project(m.projectID)
	if !ok {
		return "Project not found"
	}

	header := detailTitleStyle.Render(project.Title)
	crumbs := DimStyle.Render(fmt.Sprintf("%s | %s | updated %s",
		domain.StatusLabels[project.Status],
		domain.HorizonLabels[project.Horizon],
		project.UpdatedAt))
	if project.ParentID != nil {
		if parent, ok := m.store.Project(*project.ParentID); ok {
			crumbs = DimStyle.Render("↳ "+parent.Title) + "  " + crumbs
		}
	}

	var footer string
	switch {
	case m.input == inputEditNotes:
		footer = DimStyle.Render("ctrl+s save | esc cancel")
	case m.input != inputNone:
		footer = m.textInput.View()
	case m.message != "":
		footer = ErrorStyle.Render(m.message)
	default:
		footer = DimStyle.Render("space:done a:add e:edit d:del J/K:move x:mark s:split S:sub N:notes o:url tab:pane q:back")
	}

	bodyHeight := height - 4 // header + crumbs + footer + spacing
	if bodyHeight < 6 {
		bodyHeight = 6
	}

	leftWidth := width * 2 / 5
	if leftWidth < 28 {
		leftWidth = 28
	}
	rightWidth := width - leftWidth - 2
	if rightWidth < 20 {
		rightWidth = 20
	}

	var body string
	if m.input == inputEditNotes {
		m.notesInput.SetHeight(bodyHeight - 2)
		body = panelStyle.Width(width - 4).Render(m.notesInput.View())
	} else {
		left := m.renderMetadata(project, leftWidth-4, bodyHeight-2)
		right := m.renderTodos(project, rightWidth-4, bodyHeight-2)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Width(leftWidth-2).Height(bodyHeight-2).Render(left),
			panelStyle.Width(rightWidth-2).Height(bodyHeight-2).Render(right),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, crumbs, body, footer)
}

// renderMetadata renders the left pane: scores, areas, description, notes,
// and the subproject list.
func (m DetailModel) renderMetadata(p domain.Project, width, height int) string {
	var lines []string

	field := func(label, value string) {
		lines = append(lines, fieldLabelStyle.Render(label+": ")+value)
	}

	field("Status", StatusStyle(p.Status).Render(domain.StatusLabels[p.Status]))
	field("Horizon", domain.HorizonLabels[p.Horizon])
	if len(p.Area) > 0 {
		field("Area", strings.Join(p.Area, ", "))
	}
	field("Priority", fmt.Sprintf("%.1f", p.Priority))
	field("Scores", fmt.Sprintf("cost %d | value %d | leverage %d | certainty %d",
		p.Cost, p.Value, p.Leverage, p.Certainty))

	if p.Description != "" {
		lines = append(lines, "")
		lines = append(lines, fieldLabelStyle.Render("Description"))
		lines = append(lines, wordwrap.String(p.Description, width))
	}
	if p.Notes != "" {
		lines = append(lines, "")
		lines = append(lines, fieldLabelStyle.Render("Notes"))
		lines = append(lines, wordwrap.String(p.Notes, width))
	}

	subs := m.store.Subprojects(p.ID)
	if len(subs) > 0 {
		lines = append(lines, "")
		title := fmt.Sprintf("Subprojects (%d)", len(subs))
		if m.focus == focusSubprojects {
			lines = append(lines, SelectedItemStyle.Render(title))
		} else {
			lines = append(lines, fieldLabelStyle.Render(title))
		}
		for i, sub := range subs {
			line := fmt.Sprintf("%s [%s]", sub.Title, domain.StatusLabels[sub.Status])
			if m.focus == focusSubprojects && i == m.selectedSub {
				lines = append(lines, SelectedItemStyle.Render("> "+line))
			} else {
				lines = append(lines, NormalItemStyle.Render("  "+line))
			}
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderTodos renders the right pane: the ordered todo list.
func (m DetailModel) renderTodos(p domain.Project, width, height int) string {
	var lines []string

	done := 0
	for _, t := range p.NextTodos {
		if t.Done {
			done++
		}
	}
	title := fmt.Sprintf("Todos (%d/%d)", done, len(p.NextTodos))
	if m.focus == focusTodos {
		lines = append(lines, SelectedItemStyle.Render(title))
	} else {
		lines = append(lines, fieldLabelStyle.Render(title))
	}

	if len(p.NextTodos) == 0 {
		lines = append(lines, DimStyle.Render("(no todos, press a to add)"))
	}

	for i, t := range p.NextTodos {
		check := "[ ]"
		if t.Done {
			check = "[x]"
		}
		mark := " "
		if m.splitPicks[t.ID] {
			mark = splitMarkStyle.Render("*")
		}

		text := t.Text
		maxText := width - 10
		if maxText > 0 && len(text) > maxText {
			text = text[:maxText-1] + "…"
		}
		if t.Done {
			text = DoneStyle.Render(text)
		}

		line := fmt.Sprintf("%s%d %s %s", mark, t.Order, check, text)
		if m.focus == focusTodos && i == m.selectedTodo {
			lines = append(lines, SelectedItemStyle.Render("> "+line))
		} else {
			lines = append(lines, NormalItemStyle.Render("  "+line))
		}
	}

	if len(lines) > height {
		start := 0
		if m.selectedTodo+2 > height {
			start = m.selectedTodo + 2 - height
		}
		end := start + height
		if end > len(lines) {
			end = len(lines)
		}
		lines = lines[start:end]
	}
	return strings.Join(lines, "\n")
}

// firstURL pulls the first http(s) link out of the description or notes.
func firstURL(p domain.Project) string {
	if url := urlPattern.FindString(p.Description); url != "" {
		return strings.TrimRight(url, ".,)")
	}
	if url := urlPattern.FindString(p.Notes); url != "" {
		return strings.TrimRight(url, ".,)")
	}
	return ""
}
