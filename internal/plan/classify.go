package plan

import (
	"strings"

	"github.com/mfiorito/hard75/internal/models"
)

// classifyRule maps id substrings to a task type. Rules are evaluated in
// order and the first match wins, so "workout" beats the "custom-" prefix in
// ids like "custom-workout".
type classifyRule struct {
	substrings []string
	taskType   models.TaskType
}

var classifyRules = []classifyRule{
	{[]string{"workout", "exercise"}, models.TaskTypeExercise},
	{[]string{"water"}, models.TaskTypeWater},
	{[]string{"read", "reading"}, models.TaskTypeReading},
	{[]string{"photo", "progress"}, models.TaskTypeProgress},
	{[]string{"diet"}, models.TaskTypeDiet},
}

// Classify infers the semantic type of a task from its id. Ids that match no
// rule get no type; renaming a custom task therefore degrades it to a plain
// checklist item instead of silently misclassifying it.
func Classify(id string) models.TaskType {
	lower := strings.ToLower(id)
	for _, rule := range classifyRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.taskType
			}
		}
	}
	return ""
}

// Instantiate turns a plan's task definitions into a fresh day's task set.
// Every task starts incomplete and carries the type inferred from its id.
// The same rules apply on first run, plan switch and reset, so task
// semantics stay stable across the app.
func Instantiate(p models.Plan) []models.Task {
	tasks := make([]models.Task, 0, len(p.Tasks))
	for _, def := range p.Tasks {
		tasks = append(tasks, models.Task{
			ID:          def.ID,
			Label:       def.Label,
			Description: def.Description,
			Completed:   false,
			Icon:        def.Icon,
			Type:        Classify(def.ID),
		})
	}
	return tasks
}
