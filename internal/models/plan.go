package models

// TaskDefinition is the template a plan carries for one daily task. It is
// instantiated into a Task (Completed=false, Type inferred from the id)
// whenever a new day's task set is created.
type TaskDefinition struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Plan is a named challenge variant: a duration and the set of tasks that
// must be completed every day.
type Plan struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	DurationDays int              `json:"durationDays"`
	Tasks        []TaskDefinition `json:"tasks"`
}

// PlanSelection is the persisted pointer to the active plan.
type PlanSelection struct {
	ID string `json:"id"`
}

// AttemptReason records why an attempt ended.
type AttemptReason string

const (
	AttemptCompleted  AttemptReason = "completed"
	AttemptReset      AttemptReason = "reset"
	AttemptPlanSwitch AttemptReason = "plan_switch"
)

// Attempt is an archived challenge run. Plan switches and resets start a new
// discrete attempt, but the old history is preserved here rather than
// discarded so the calendar never loses days.
type Attempt struct {
	PlanID    string         `json:"planId"`
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	Reason    AttemptReason  `json:"reason"`
	State     ChallengeState `json:"state"`
}
