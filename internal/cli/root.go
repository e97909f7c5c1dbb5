package cli

import (
	"fmt"
	"strings"

	"github.com/mfiorito/hard75/internal/challenge"
	"github.com/mfiorito/hard75/internal/clock"
	"github.com/mfiorito/hard75/internal/models"
	"github.com/mfiorito/hard75/internal/storage"
)

// Context carries the shared dependencies into every command.
type Context struct {
	Store     storage.Provider
	Clock     *clock.Clock
	Engine    *challenge.Engine
	ServerURL string
}

// checkbox renders a task's completion marker.
func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// progressBar renders a simple ASCII progress bar.
func progressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return fmt.Sprintf("[%s%s] %3.0f%%", strings.Repeat("=", filled), strings.Repeat(" ", width-filled), percent)
}

// printDay renders one day's record as a task checklist.
func printDay(rec *models.DailyRecord) {
	if rec == nil {
		fmt.Println("No record for today yet.")
		return
	}
	for _, task := range rec.Tasks {
		fmt.Printf("  %s %-12s %s\n", checkbox(task.Completed), task.ID, task.Label)
	}
}
