package plan

import (
	"fmt"

	"github.com/mfiorito/hard75/internal/constants"
	"github.com/mfiorito/hard75/internal/models"
)

// builtins is the static plan catalog. The hard plan is the original 75 Hard
// ruleset; soft and medium are scaled-down variants; custom is the seed for
// user-authored challenges.
var builtins = []models.Plan{
	{
		ID:           "soft",
		Name:         "Soft Challenge",
		Description:  "A gentle version for beginners or recovery periods",
		DurationDays: 30,
		Tasks: []models.TaskDefinition{
			{ID: "diet", Label: "Flexible Diet", Description: "Healthy food, one cheat meal per week", Icon: "utensils"},
			{ID: "workout", Label: "Daily Exercise", Description: "30 minutes of physical activity", Icon: "dumbbell"},
			{ID: "water", Label: "Hydration", Description: "2 liters of water per day", Icon: "droplet"},
			{ID: "reading", Label: "Reading", Description: "5 pages of a book", Icon: "book-open"},
		},
	},
	{
		ID:           "medium",
		Name:         "Medium Challenge",
		Description:  "An intermediate version with balanced demands",
		DurationDays: 45,
		Tasks: []models.TaskDefinition{
			{ID: "diet", Label: "Controlled Diet", Description: "No cheat meals, limited alcohol", Icon: "utensils"},
			{ID: "workout-1", Label: "First Workout", Description: "45 minutes of physical activity", Icon: "dumbbell"},
			{ID: "workout-2", Label: "Second Workout", Description: "30 minutes outdoors", Icon: "cloud-sun"},
			{ID: "water", Label: "Water (2.5L)", Description: "2.5 liters of water per day", Icon: "droplet"},
			{ID: "reading", Label: "Reading (10 pages)", Description: "10 pages of non-fiction", Icon: "book-open"},
			{ID: "photo", Label: "Progress Photo", Description: "A photo every 3 days", Icon: "camera"},
		},
	},
	{
		ID:           "hard",
		Name:         "Hard Challenge",
		Description:  "The complete original 75 HARD challenge",
		DurationDays: 75,
		Tasks: []models.TaskDefinition{
			{ID: "diet", Label: "Strict Diet", Description: "No cheat meals, no alcohol", Icon: "utensils"},
			{ID: "workout-1", Label: "First Workout", Description: "45 minutes of physical activity", Icon: "dumbbell"},
			{ID: "workout-2", Label: "Second Workout", Description: "45 minutes outdoors (or 8000 steps)", Icon: "cloud-sun"},
			{ID: "water", Label: "Water (3.7L)", Description: "One gallon of water per day", Icon: "droplet"},
			{ID: "reading", Label: "Reading (10 pages)", Description: "10 pages of non-fiction", Icon: "book-open"},
			{ID: "photo", Label: "Progress Photo", Description: "A daily progress photo", Icon: "camera"},
		},
	},
	{
		ID:           "custom",
		Name:         "Custom Challenge",
		Description:  "Build your own challenge from custom tasks",
		DurationDays: 60,
		Tasks:        DefaultCustomTasks(),
	},
}

// DefaultCustomTasks returns the seed task definitions for a custom plan.
func DefaultCustomTasks() []models.TaskDefinition {
	return []models.TaskDefinition{
		{ID: "custom-diet", Label: "Custom Diet", Description: "Set your own eating rules", Icon: "utensils"},
		{ID: "custom-workout", Label: "Custom Exercise", Description: "Set your own training routine", Icon: "dumbbell"},
		{ID: "custom-water", Label: "Custom Hydration", Description: "Set your own water goal", Icon: "droplet"},
		{ID: "custom-reading", Label: "Custom Reading", Description: "Set your own reading goal", Icon: "book-open"},
		{ID: "custom-meditation", Label: "Meditation", Description: "Mindfulness or meditation practice", Icon: "heart"},
		{ID: "custom-sleep", Label: "Rest", Description: "Track your hours of sleep", Icon: "moon"},
	}
}

// All returns the built-in plan catalog.
func All() []models.Plan {
	plans := make([]models.Plan, len(builtins))
	copy(plans, builtins)
	return plans
}

// Get looks up a built-in plan by id.
func Get(id string) (models.Plan, error) {
	for _, p := range builtins {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Plan{}, fmt.Errorf("unknown plan %q", id)
}

// GetOrDefault resolves a plan id, falling back to the default plan when the
// id is unknown. An unknown stored plan id must never leave the app without a
// task set.
func GetOrDefault(id string) models.Plan {
	if p, err := Get(id); err == nil {
		return p
	}
	return Default()
}

// Default returns the plan adopted on first run.
func Default() models.Plan {
	p, _ := Get(constants.DefaultPlanID)
	return p
}

// Custom builds a custom plan from user-authored task definitions. An empty
// definition list falls back to the custom seed tasks.
func Custom(defs []models.TaskDefinition) models.Plan {
	base, _ := Get("custom")
	if len(defs) > 0 {
		base.Tasks = defs
	}
	return base
}
