package domain

import "time"

func daysAgo(days int) string {
	return time.Now().AddDate(0, 0, -days).Format(DateFormat)
}

func parentOf(id string) *string {
	return &id
}

// SampleData returns the built-in seed dataset used on first startup, after
// a failed load, and by the reset operation. It covers every column, both
// horizons of nesting, and projects with and without todos.
func SampleData() AppData {
	return AppData{
		Version:   SchemaVersion,
		UpdatedAt: Today(),
		Projects: []Project{
			{
				ID:          "p-alpha",
				Title:       "AI Research Cockpit",
				Description: "Build internal AI research tracker for experiments.",
				Status:      StatusDoing,
				Horizon:     HorizonCore,
				Area:        []string{"AI", "Knowledge"},
				Priority:    8.6,
				Cost:        3,
				Value:       5,
				Leverage:    4,
				Certainty:   3,
				NextTodos: []TodoItem{
					{ID: "t-alpha-1", Text: "Audit model benchmark datasets", Order: 1, CreatedAt: daysAgo(10), UpdatedAt: daysAgo(2), Note: "Focus on eval coverage and bias."},
					{ID: "t-alpha-2", Text: "Draft evaluation rubric", Order: 2, CreatedAt: daysAgo(8), UpdatedAt: daysAgo(4)},
					{ID: "t-alpha-3", Text: "Sync with infra team on GPU allocation", Done: true, Order: 3, CreatedAt: daysAgo(6), UpdatedAt: daysAgo(1), Note: "Confirmed availability next week."},
				},
				UpdatedAt: daysAgo(2),
				Notes:     "Stakeholders want a weekly summary.",
			},
			{
				ID:          "p-beta",
				Title:       "Platform Observability Upgrade",
				Description: "Improve logs and tracing for core services.",
				Status:      StatusDoing,
				Horizon:     HorizonPlatform,
				Area:        []string{"Infra", "Reliability"},
				Priority:    7.4,
				Cost:        4,
				Value:       5,
				Leverage:    5,
				Certainty:   4,
				NextTodos: []TodoItem{
					{ID: "t-beta-1", Text: "Map critical services with missing traces", Order: 1, CreatedAt: daysAgo(5), UpdatedAt: daysAgo(3)},
					{ID: "t-beta-2", Text: "Define SLO dashboard layout", Order: 2, CreatedAt: daysAgo(4), UpdatedAt: daysAgo(3), Note: "Include error budget view."},
					{ID: "t-beta-3", Text: "Pilot new alert routing rules", Order: 3, CreatedAt: daysAgo(2), UpdatedAt: daysAgo(1)},
				},
				UpdatedAt: daysAgo(3),
			},
			{
				ID:          "p-gamma",
				Title:       "Knowledge Base Redesign",
				Description: "Revamp internal knowledge base navigation.",
				Status:      StatusNext,
				Horizon:     HorizonCore,
				Area:        []string{"Knowledge", "Design"},
				Priority:    6.2,
				Cost:        2,
				Value:       4,
				Leverage:    3,
				Certainty:   4,
				NextTodos: []TodoItem{
					{ID: "t-gamma-1", Text: "Interview 3 power users", Order: 1, CreatedAt: daysAgo(9), UpdatedAt: daysAgo(7)},
				},
				UpdatedAt: daysAgo(9),
				Notes:     "Need quick win on search.",
			},
			{
				ID:          "p-delta",
				Title:       "Explore AI Pairing",
				Description: "Investigate AI pair programming pilot.",
				Status:      StatusBacklog,
				Horizon:     HorizonExplore,
				Area:        []string{"AI", "DevEx"},
				Priority:    5.1,
				Cost:        3,
				Value:       3,
				Leverage:    2,
				Certainty:   2,
				NextTodos:   []TodoItem{},
				UpdatedAt:   daysAgo(15),
			},
			{
				ID:          "p-epsilon",
				Title:       "Customer Insight Sync",
				Description: "Monthly survey analysis and insights.",
				Status:      StatusWaiting,
				Horizon:     HorizonCore,
				Area:        []string{"Research"},
				Priority:    4.3,
				Cost:        2,
				Value:       3,
				Leverage:    2,
				Certainty:   4,
				NextTodos:   []TodoItem{},
				UpdatedAt:   daysAgo(5),
			},
			{
				ID:          "p-kappa",
				Title:       "Explore Knowledge Graph",
				Description: "Prototype knowledge graph for docs.",
				Status:      StatusArchived,
				Horizon:     HorizonExplore,
				Area:        []string{"AI", "Knowledge"},
				Priority:    2.3,
				Cost:        2,
				Value:       2,
				Leverage:    2,
				Certainty:   1,
				NextTodos:   []TodoItem{},
				UpdatedAt:   daysAgo(30),
				Notes:       "Archived until Q4.",
			},
			{
				ID:          "p-lambda",
				Title:       "Team Enablement Sprint",
				Description: "Enablement sessions for new tooling.",
				Status:      StatusDone,
				Horizon:     HorizonPlatform,
				Area:        []string{"DevEx"},
				Priority:    4.8,
				Cost:        2,
				Value:       3,
				Leverage:    3,
				Certainty:   4,
				NextTodos:   []TodoItem{},
				UpdatedAt:   daysAgo(2),
			},
			{
				ID:          "p-mu",
				Title:       "AI Documentation Assistant",
				Description: "Build assistant for documentation search.",
				Status:      StatusNext,
				Horizon:     HorizonCore,
				Area:        []string{"AI", "Docs"},
				Priority:    6.9,
				Cost:        3,
				Value:       4,
				Leverage:    4,
				Certainty:   3,
				NextTodos: []TodoItem{
					{ID: "t-mu-1", Text: "Define success metrics", Order: 1, CreatedAt: daysAgo(7), UpdatedAt: daysAgo(6)},
					{ID: "t-mu-2", Text: "Prototype retrieval flow", Order: 2, CreatedAt: daysAgo(6), UpdatedAt: daysAgo(5)},
					{ID: "t-mu-3", Text: "Prepare user testing script", Order: 3, CreatedAt: daysAgo(5), UpdatedAt: daysAgo(4)},
				},
				UpdatedAt: daysAgo(4),
			},
			{
				ID:          "p-alpha-sub1",
				ParentID:    parentOf("p-alpha"),
				Title:       "Dataset Expansion",
				Description: "Add domain-specific datasets.",
				Status:      StatusNext,
				Horizon:     HorizonCore,
				Area:        []string{"AI"},
				Priority:    6.1,
				Cost:        2,
				Value:       4,
				Leverage:    3,
				Certainty:   3,
				NextTodos: []TodoItem{
					{ID: "t-alpha-sub1-1", Text: "Collect finance datasets", Order: 1, CreatedAt: daysAgo(3), UpdatedAt: daysAgo(2)},
				},
				UpdatedAt: daysAgo(2),
			},
			{
				ID:          "p-alpha-sub2",
				ParentID:    parentOf("p-alpha"),
				Title:       "Evaluation Dashboard",
				Description: "Dashboard for tracking eval runs.",
				Status:      StatusBacklog,
				Horizon:     HorizonCore,
				Area:        []string{"AI", "Platform"},
				Priority:    5.4,
				Cost:        3,
				Value:       4,
				Leverage:    3,
				Certainty:   2,
				NextTodos:   []TodoItem{},
				UpdatedAt:   daysAgo(8),
			},
			{
				ID:          "p-beta-sub1",
				ParentID:    parentOf("p-beta"),
				Title:       "Log Schema Alignment",
				Description: "Standardize log metadata for services.",
				Status:      StatusDoing,
				Horizon:     HorizonPlatform,
				Area:        []string{"Infra"},
				Priority:    6.7,
				Cost:        3,
				Value:       4,
				Leverage:    4,
				Certainty:   3,
				NextTodos: []TodoItem{
					{ID: "t-beta-sub1-1", Text: "Align service owners on schema", Order: 1, CreatedAt: daysAgo(4), UpdatedAt: daysAgo(2)},
				},
				UpdatedAt: daysAgo(2),
			},
		},
	}
}
