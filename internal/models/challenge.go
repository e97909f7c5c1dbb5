package models

// TaskType is the semantic category of a daily task, inferred from its id.
// It drives how companion surfaces (calendar, daily log) render the task.
type TaskType string

const (
	TaskTypeDiet     TaskType = "diet"
	TaskTypeExercise TaskType = "exercise"
	TaskTypeWater    TaskType = "water"
	TaskTypeReading  TaskType = "reading"
	TaskTypeProgress TaskType = "progress"
	TaskTypeCustom   TaskType = "custom"
)

// Task is a single checklist item within one day. Completed is the only field
// that changes after creation; everything else is fixed when the day's task
// set is instantiated from a plan.
type Task struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Icon        string   `json:"icon"`
	Type        TaskType `json:"type,omitempty"`
}

// DailyRecord is the task set for one calendar day. Records are appended to
// history and never removed or rewritten once a later day supersedes them.
type DailyRecord struct {
	DateString string `json:"dateString"` // YYYY-MM-DD in the civil timezone
	Tasks      []Task `json:"tasks"`
}

// Perfect reports whether every task in the day was completed. A day with no
// tasks is not perfect.
func (d DailyRecord) Perfect() bool {
	if len(d.Tasks) == 0 {
		return false
	}
	for _, t := range d.Tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// CompletedCount returns how many of the day's tasks are done.
func (d DailyRecord) CompletedCount() int {
	n := 0
	for _, t := range d.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// ChallengeState is the whole persisted record of the current challenge
// attempt. It is loaded and saved as a unit on every mutation.
type ChallengeState struct {
	CurrentDay      int           `json:"currentDay"`
	StartDate       string        `json:"startDate"`
	History         []DailyRecord `json:"history"`
	LastVisitedDate string        `json:"lastVisitedDate"`
}

// Record returns the history entry for the given date, or nil when the day
// was never visited.
func (s *ChallengeState) Record(date string) *DailyRecord {
	for i := range s.History {
		if s.History[i].DateString == date {
			return &s.History[i]
		}
	}
	return nil
}

// TodayRecord returns the working record, the one whose date matches
// LastVisitedDate. After a rollover it always exists.
func (s *ChallengeState) TodayRecord() *DailyRecord {
	return s.Record(s.LastVisitedDate)
}

// OverallProgress returns the percentage of the plan's duration covered by
// the current streak.
func (s *ChallengeState) OverallProgress(durationDays int) float64 {
	if durationDays <= 0 {
		return 0
	}
	p := float64(s.CurrentDay) / float64(durationDays) * 100
	if p > 100 {
		p = 100
	}
	return p
}
