// Package domain defines the normalized entity types for the project board:
// projects, their next-action todos, and the single AppData document that is
// the root of all persisted state.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current AppData schema tag. Imports with a missing or
// non-numeric version are rejected; everything else is coerced leniently.
const SchemaVersion = 1

// DateFormat is the calendar-day granularity used for every date field.
const DateFormat = "2006-01-02"

// Status is the kanban column a project occupies.
type Status string

const (
	StatusBacklog  Status = "backlog"
	StatusNext     Status = "next"
	StatusDoing    Status = "doing"
	StatusWaiting  Status = "waiting"
	StatusDone     Status = "done"
	StatusArchived Status = "archived"
)

// StatusOrder lists the columns in board display order.
var StatusOrder = []Status{
	StatusBacklog,
	StatusNext,
	StatusDoing,
	StatusWaiting,
	StatusDone,
	StatusArchived,
}

// StatusLabels maps each status to its display name.
var StatusLabels = map[Status]string{
	StatusBacklog:  "Backlog",
	StatusNext:     "Next",
	StatusDoing:    "Doing",
	StatusWaiting:  "Waiting",
	StatusDone:     "Done",
	StatusArchived: "Archived",
}

// Horizon is a project's strategic category.
type Horizon string

const (
	HorizonCore     Horizon = "core"
	HorizonPlatform Horizon = "platform"
	HorizonExplore  Horizon = "explore"
)

// HorizonLabels maps each horizon to its display name.
var HorizonLabels = map[Horizon]string{
	HorizonCore:     "Core",
	HorizonPlatform: "Platform",
	HorizonExplore:  "Explore",
}

// ValidStatus reports whether s is one of the six kanban statuses.
func ValidStatus(s Status) bool {
	_, ok := StatusLabels[s]
	return ok
}

// ValidHorizon reports whether h is one of the three horizons.
func ValidHorizon(h Horizon) bool {
	_, ok := HorizonLabels[h]
	return ok
}

// TodoItem is a single next-action entry owned by one project. Order values
// within a project's todo list form a dense 1..N sequence at rest; the store
// re-establishes that invariant after every mutation.
type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	Order     int    `json:"order"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Note      string `json:"note"`
}

// Project is a unit of work, either top-level (nil ParentID) or a subproject.
// Subprojects cannot themselves have children; nesting depth is capped at 1.
// The parent/child relation is a back-reference resolved by ParentID lookup,
// never an owned child list.
type Project struct {
	ID          string     `json:"id"`
	ParentID    *string    `json:"parent_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Horizon     Horizon    `json:"horizon"`
	Area        []string   `json:"area"`
	Priority    float64    `json:"priority"`
	Cost        int        `json:"cost"`
	Value       int        `json:"value"`
	Leverage    int        `json:"leverage"`
	Certainty   int        `json:"certainty"`
	NextTodos   []TodoItem `json:"next_todos"`
	UpdatedAt   string     `json:"updated_at"`
	Notes       string     `json:"notes"`
}

// AppData is the whole persisted universe: a flat collection of projects
// related only via ParentID, plus the schema version and last-mutation stamp.
type AppData struct {
	Version   int       `json:"version"`
	Projects  []Project `json:"projects"`
	UpdatedAt string    `json:"updated_at"`
}

// Today returns the local calendar date in YYYY-MM-DD form.
func Today() string {
	return time.Now().Format(DateFormat)
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// NewTodo returns a fully-defaulted todo with the given text and order.
func NewTodo(text string, order int) TodoItem {
	return TodoItem{
		ID:        NewID(),
		Text:      text,
		Order:     order,
		CreatedAt: Today(),
		UpdatedAt: Today(),
	}
}

// NewProject returns a fully-defaulted top-level project.
func NewProject() Project {
	return Project{
		ID:        NewID(),
		Title:     "Untitled Project",
		Status:    StatusBacklog,
		Horizon:   HorizonCore,
		Area:      []string{},
		Priority:  5,
		Cost:      3,
		Value:     3,
		Leverage:  3,
		Certainty: 3,
		NextTodos: []TodoItem{},
		UpdatedAt: Today(),
	}
}

// NewSubproject returns a fully-defaulted project parented to parentID.
func NewSubproject(parentID string) Project {
	p := NewProject()
	p.ParentID = &parentID
	return p
}

// IsTopLevel reports whether the project can own subprojects.
func (p Project) IsTopLevel() bool {
	return p.ParentID == nil
}

// Clone returns a deep copy of the project, including its area tags and todos.
func (p Project) Clone() Project {
	out := p
	if p.ParentID != nil {
		id := *p.ParentID
		out.ParentID = &id
	}
	out.Area = append([]string{}, p.Area...)
	out.NextTodos = append([]TodoItem{}, p.NextTodos...)
	return out
}

// Clone returns a deep copy of the whole document.
func (d AppData) Clone() AppData {
	out := d
	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		out.Projects[i] = p.Clone()
	}
	return out
}
