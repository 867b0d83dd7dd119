// Package store owns the canonical in-memory AppData snapshot and exposes
// every mutation over the project/todo hierarchy. Each operation normalizes
// boundary-crossing input, preserves the hierarchy and ordering invariants,
// and replaces the snapshot wholesale, so readers always observe a fully
// consistent document. Follows the "deep modules" principle - simple
// interface hiding the renumbering and cascade logic.
package store

import (
	"sort"
	"strings"

	"github.com/robby/cockpit/internal/domain"
)

// Direction selects which neighbor a todo swaps with in MoveTodo.
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
)

// Store holds one authoritative AppData value. Mutations treat the current
// snapshot as immutable input and publish a fresh value; they never edit
// entity fields in place. Single-writer: callers serialize access (the TUI
// event loop and CLI are both single-threaded).
type Store struct {
	data domain.AppData

	// onChange is fired after every successful state transition, with a
	// deep copy of the new snapshot. Persistence hangs off this hook;
	// its failures are the collaborator's concern, not the store's.
	onChange func(domain.AppData)
}

// New creates a store seeded with the given document.
func New(initial domain.AppData) *Store {
	return &Store{data: initial.Clone()}
}

// OnChange registers the hook fired after every mutation.
func (s *Store) OnChange(fn func(domain.AppData)) {
	s.onChange = fn
}

// Data returns a deep copy of the current snapshot.
func (s *Store) Data() domain.AppData {
	return s.data.Clone()
}

// Project returns a copy of the project with the given id.
func (s *Store) Project(id string) (domain.Project, bool) {
	for _, p := range s.data.Projects {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return domain.Project{}, false
}

// TopLevel returns copies of all top-level projects in collection order.
func (s *Store) TopLevel() []domain.Project {
	out := []domain.Project{}
	for _, p := range s.data.Projects {
		if p.IsTopLevel() {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Subprojects returns copies of the direct children of the given project.
// The relation is derived by ParentID scan; parents hold no child list.
func (s *Store) Subprojects(id string) []domain.Project {
	out := []domain.Project{}
	for _, p := range s.data.Projects {
		if p.ParentID != nil && *p.ParentID == id {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Columns groups the top-level projects by status, in collection order.
// Every status key is present even when its column is empty. Subprojects
// surface through their parent's card, not as columns entries.
func (s *Store) Columns() map[domain.Status][]domain.Project {
	out := make(map[domain.Status][]domain.Project, len(domain.StatusOrder))
	for _, status := range domain.StatusOrder {
		out[status] = []domain.Project{}
	}
	for _, p := range s.data.Projects {
		if p.IsTopLevel() {
			out[p.Status] = append(out[p.Status], p.Clone())
		}
	}
	return out
}

// publish replaces the snapshot and fires the change hook.
func (s *Store) publish(next domain.AppData) {
	s.data = next
	if s.onChange != nil {
		s.onChange(s.data.Clone())
	}
}

// UpdateProjects is the bulk-mutation primitive every multi-record operation
// is built from: it replaces the entire project list with fn(current) and
// stamps the collection updated_at, as one state transition.
func (s *Store) UpdateProjects(fn func([]domain.Project) []domain.Project) {
	current := s.data.Clone()
	next := domain.AppData{
		Version:   current.Version,
		Projects:  fn(current.Projects),
		UpdatedAt: domain.Today(),
	}
	if next.Projects == nil {
		next.Projects = []domain.Project{}
	}
	s.publish(next)
}

// AddProject appends a new project built from p, defaulting any zero-valued
// fields, and returns the stored value. Always succeeds.
func (s *Store) AddProject(p domain.Project) domain.Project {
	created := sanitizeProject(p)
	created.UpdatedAt = domain.Today()
	s.UpdateProjects(func(projects []domain.Project) []domain.Project {
		return append(projects, created)
	})
	return created.Clone()
}

// UpdateProject applies fn to a copy of the matching project stamped with a
// refreshed updated_at. Unknown ids are a silent no-op: the UI races with
// deletion and stale targets should degrade gracefully.
func (s *Store) UpdateProject(id string, fn func(domain.Project) domain.Project) {
	if _, ok := s.Project(id); !ok {
		return
	}
	s.UpdateProjects(func(projects []domain.Project) []domain.Project {
		for i, p := range projects {
			if p.ID == id {
				next := p.Clone()
				next.UpdatedAt = domain.Today()
				projects[i] = fn(next)
			}
		}
		return projects
	})
}

// DeleteProject removes the project with the given id. Deleting a top-level
// project also removes every project parented to it (single-level cascade;
// deeper nesting cannot exist). Deleting a subproject removes only that
// record. Unknown ids are a no-op.
func (s *Store) DeleteProject(id string) {
	target, ok := s.Project(id)
	if !ok {
		return
	}
	s.UpdateProjects(func(projects []domain.Project) []domain.Project {
		kept := make([]domain.Project, 0, len(projects))
		for _, p := range projects {
			if p.ID == id {
				continue
			}
			if target.IsTopLevel() && p.ParentID != nil && *p.ParentID == id {
				continue
			}
			kept = append(kept, p)
		}
		return kept
	})
}

// DuplicateProject appends a deep copy of the source project with fresh ids
// for the project and every todo, a title suffixed "(copy)", the same
// parent, and all timestamps refreshed. Returns nil if the source id does
// not exist.
func (s *Store) DuplicateProject(id string) *domain.Project {
	source, ok := s.Project(id)
	if !ok {
		return nil
	}
	copyProject := source.Clone()
	copyProject.ID = domain.NewID()
	copyProject.Title = source.Title + " (copy)"
	copyProject.UpdatedAt = domain.Today()
	for i := range copyProject.NextTodos {
		copyProject.NextTodos[i].ID = domain.NewID()
		copyProject.NextTodos[i].CreatedAt = domain.Today()
		copyProject.NextTodos[i].UpdatedAt = domain.Today()
	}
	s.UpdateProjects(func(projects []domain.Project) []domain.Project {
		return append(projects, copyProject)
	})
	out := copyProject.Clone()
	return &out
}

// AddTodo appends a new todo to the project with order max(existing)+1.
// Orders are strictly increasing on add; gaps left by deletions are closed
// by the deleting operation, never reused here.
func (s *Store) AddTodo(projectID, text string) {
	s.UpdateProject(projectID, func(p domain.Project) domain.Project {
		maxOrder := 0
		for _, t := range p.NextTodos {
			if t.Order > maxOrder {
				maxOrder = t.Order
			}
		}
		p.NextTodos = append(p.NextTodos, domain.NewTodo(text, maxOrder+1))
		return p
	})
}

// UpdateTodo applies fn to the matching todo with a refreshed updated_at.
// Non-matching todo ids are ignored.
func (s *Store) UpdateTodo(projectID, todoID string, fn func(domain.TodoItem) domain.TodoItem) {
	s.UpdateProject(projectID, func(p domain.Project) domain.Project {
		for i, t := range p.NextTodos {
			if t.ID == todoID {
				t.UpdatedAt = domain.Today()
				p.NextTodos[i] = fn(t)
			}
		}
		return p
	})
}

// DeleteTodo removes the matching todo and renumbers the remainder to a
// dense 1..N sequence in their current relative order.
func (s *Store) DeleteTodo(projectID, todoID string) {
	s.UpdateProject(projectID, func(p domain.Project) domain.Project {
		kept := make([]domain.TodoItem, 0, len(p.NextTodos))
		for _, t := range p.NextTodos {
			if t.ID != todoID {
				kept = append(kept, t)
			}
		}
		p.NextTodos = renumber(kept)
		return p
	})
}

// MoveTodo swaps the matching todo with its neighbor in the given direction
// and renumbers the whole sequence. Swapping alone would keep orders merely
// distinct; the full renumber keeps them dense. Already at an edge is a
// no-op.
func (s *Store) MoveTodo(projectID, todoID string, dir Direction) {
	s.UpdateProject(projectID, func(p domain.Project) domain.Project {
		sorted := append([]domain.TodoItem{}, p.NextTodos...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Order < sorted[j].Order
		})
		index := -1
		for i, t := range sorted {
			if t.ID == todoID {
				index = i
				break
			}
		}
		if index < 0 {
			return p
		}
		target := index - 1
		if dir == MoveDown {
			target = index + 1
		}
		if target < 0 || target >= len(sorted) {
			return p
		}
		sorted[index], sorted[target] = sorted[target], sorted[index]
		p.NextTodos = renumber(sorted)
		return p
	})
}

// SplitTodos carves the selected todos of a top-level project into a brand
// new subproject that inherits the source's status, horizon, area, and
// scoring attributes. Both partitions are renumbered to dense 1..N. The
// source rewrite and the subproject append happen as one state transition,
// so no snapshot ever shows the todos in two places or neither. No-op when
// the source is a subproject, the selection is empty, or the title is
// empty; returns the created subproject otherwise.
func (s *Store) SplitTodos(projectID string, selectedIDs []string, title string) *domain.Project {
	source, ok := s.Project(projectID)
	if !ok || !source.IsTopLevel() || len(selectedIDs) == 0 || strings.TrimSpace(title) == "" {
		return nil
	}

	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var moved, remaining []domain.TodoItem
	for _, t := range source.NextTodos {
		if selected[t.ID] {
			t.UpdatedAt = domain.Today()
			moved = append(moved, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	if len(moved) == 0 {
		return nil
	}

	sub := domain.NewSubproject(source.ID)
	sub.Title = title
	sub.Status = source.Status
	sub.Horizon = source.Horizon
	sub.Area = append([]string{}, source.Area...)
	sub.Priority = source.Priority
	sub.Cost = source.Cost
	sub.Value = source.Value
	sub.Leverage = source.Leverage
	sub.Certainty = source.Certainty
	sub.NextTodos = renumber(moved)

	s.UpdateProjects(func(projects []domain.Project) []domain.Project {
		for i, p := range projects {
			if p.ID == projectID {
				next := p.Clone()
				next.NextTodos = renumber(remaining)
				next.UpdatedAt = domain.Today()
				projects[i] = next
			}
		}
		return append(projects, sub)
	})
	out := sub.Clone()
	return &out
}

// Import replaces the whole snapshot with the normalized form of raw JSON.
// The one failure mode is a missing or non-numeric version, which
// propagates untouched so the caller can surface it; the current snapshot
// stays as-is. The collection updated_at is refreshed to now regardless of
// the imported value's own stamp.
func (s *Store) Import(raw []byte) error {
	parsed, err := domain.ParseAppData(raw)
	if err != nil {
		return err
	}
	parsed.UpdatedAt = domain.Today()
	s.publish(parsed)
	return nil
}

// Export serializes the current snapshot to its canonical pretty-printed
// JSON form.
func (s *Store) Export() ([]byte, error) {
	return domain.MarshalAppData(s.data)
}

// ResetSample replaces the snapshot wholesale with the built-in seed
// dataset. No merging with existing data.
func (s *Store) ResetSample() {
	s.publish(domain.SampleData())
}

// renumber returns the todos re-stamped with a dense 1..N order matching
// their slice positions.
func renumber(todos []domain.TodoItem) []domain.TodoItem {
	out := make([]domain.TodoItem, len(todos))
	for i, t := range todos {
		t.Order = i + 1
		out[i] = t
	}
	return out
}

// sanitizeProject fills zero-valued fields of a caller-built project so the
// stored value is always complete. Numeric scores are left alone; zero is a
// value a caller may legitimately set.
func sanitizeProject(p domain.Project) domain.Project {
	out := p.Clone()
	if out.ID == "" {
		out.ID = domain.NewID()
	}
	if out.Title == "" {
		out.Title = "Untitled Project"
	}
	if !domain.ValidStatus(out.Status) {
		out.Status = domain.StatusBacklog
	}
	if !domain.ValidHorizon(out.Horizon) {
		out.Horizon = domain.HorizonCore
	}
	if out.UpdatedAt == "" {
		out.UpdatedAt = domain.Today()
	}
	for i, t := range out.NextTodos {
		if t.ID == "" {
			t.ID = domain.NewID()
		}
		if t.CreatedAt == "" {
			t.CreatedAt = domain.Today()
		}
		if t.UpdatedAt == "" {
			t.UpdatedAt = domain.Today()
		}
		out.NextTodos[i] = t
	}
	sort.SliceStable(out.NextTodos, func(i, j int) bool {
		return out.NextTodos[i].Order < out.NextTodos[j].Order
	})
	return out
}
