package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrMissingVersion is returned when an AppData document lacks a numeric
// version field. It is the single hard validation gate: a minimal schema
// fingerprint to reject obviously-foreign JSON. Every other shape problem
// is coerced to a default instead of rejected, so partially-corrupt state
// from older schema versions still loads.
var ErrMissingVersion = errors.New("invalid data: missing version")

// NormalizeTodo coerces an arbitrary decoded JSON value into a complete
// TodoItem. Fields with the expected type are kept; everything else gets a
// default. Pure apart from id generation.
func NormalizeTodo(raw any) TodoItem {
	fields, _ := raw.(map[string]any)
	return TodoItem{
		ID:        stringOr(fields["id"], NewID()),
		Text:      stringOr(fields["text"], ""),
		Done:      truthy(fields["done"]),
		Order:     intOr(fields["order"], 1),
		CreatedAt: stringOr(fields["created_at"], Today()),
		UpdatedAt: stringOr(fields["updated_at"], Today()),
		Note:      stringOr(fields["note"], ""),
	}
}

// NormalizeProject coerces an arbitrary decoded JSON value into a complete
// Project. ParentID defaults to nil; referential integrity against existing
// ids is the store's concern, not this layer's. Todos are normalized
// per-item and sorted ascending by order. Sorting only: renumbering to a
// dense sequence is each mutating operation's job.
func NormalizeProject(raw any) Project {
	fields, _ := raw.(map[string]any)

	status := Status(stringOr(fields["status"], string(StatusBacklog)))
	if !ValidStatus(status) {
		status = StatusBacklog
	}
	horizon := Horizon(stringOr(fields["horizon"], string(HorizonCore)))
	if !ValidHorizon(horizon) {
		horizon = HorizonCore
	}

	var parentID *string
	if s, ok := fields["parent_id"].(string); ok {
		parentID = &s
	}

	area := []string{}
	if list, ok := fields["area"].([]any); ok {
		for _, v := range list {
			if s, ok := v.(string); ok && s != "" {
				area = append(area, s)
			}
		}
	}

	todos := []TodoItem{}
	if list, ok := fields["next_todos"].([]any); ok {
		for _, v := range list {
			todos = append(todos, NormalizeTodo(v))
		}
		sort.SliceStable(todos, func(i, j int) bool {
			return todos[i].Order < todos[j].Order
		})
	}

	return Project{
		ID:          stringOr(fields["id"], NewID()),
		ParentID:    parentID,
		Title:       stringOr(fields["title"], "Untitled Project"),
		Description: stringOr(fields["description"], ""),
		Status:      status,
		Horizon:     horizon,
		Area:        area,
		Priority:    floatOr(fields["priority"], 5),
		Cost:        intOr(fields["cost"], 3),
		Value:       intOr(fields["value"], 3),
		Leverage:    intOr(fields["leverage"], 3),
		Certainty:   intOr(fields["certainty"], 3),
		NextTodos:   todos,
		UpdatedAt:   stringOr(fields["updated_at"], Today()),
		Notes:       stringOr(fields["notes"], ""),
	}
}

// NormalizeAppData coerces an arbitrary decoded JSON value into a complete
// AppData document. A missing or non-numeric version fails with
// ErrMissingVersion; every project-level shape problem is coerced leniently.
func NormalizeAppData(raw any) (AppData, error) {
	fields, _ := raw.(map[string]any)
	version, ok := fields["version"].(float64)
	if !ok {
		return AppData{}, ErrMissingVersion
	}

	projects := []Project{}
	if list, ok := fields["projects"].([]any); ok {
		for _, v := range list {
			projects = append(projects, NormalizeProject(v))
		}
	}

	return AppData{
		Version:   int(version),
		Projects:  projects,
		UpdatedAt: stringOr(fields["updated_at"], Today()),
	}, nil
}

// ParseAppData decodes raw JSON text and normalizes it into AppData.
func ParseAppData(text []byte) (AppData, error) {
	var raw any
	if err := json.Unmarshal(text, &raw); err != nil {
		return AppData{}, fmt.Errorf("parse app data: %w", err)
	}
	return NormalizeAppData(raw)
}

// MarshalAppData renders the canonical pretty-printed JSON form of a
// document, with field order matching the data model.
func MarshalAppData(data AppData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

// truthy mirrors loose boolean coercion so persisted done flags written as
// 0/1 or "true" still load.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case nil:
		return false
	default:
		return true
	}
}

func intOr(v any, def int) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return def
}

func floatOr(v any, def float64) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return def
}
