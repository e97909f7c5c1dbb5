package cli

import (
	"fmt"

	"github.com/mfiorito/hard75/internal/models"
)

type HistoryCmd struct {
	All bool `help:"Include archived attempts." short:"a"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, err := ctx.Engine.Bootstrap()
	if err != nil {
		return err
	}

	if c.All {
		attempts, err := ctx.Store.GetAttempts()
		if err != nil {
			return err
		}
		for _, a := range attempts {
			fmt.Printf("%s plan, %s to %s (%s)\n", a.PlanID, a.StartDate, a.EndDate, a.Reason)
			printHistory(a.State.History)
			fmt.Println()
		}
	}

	plan := ctx.Engine.CurrentPlan()
	fmt.Printf("%s plan, started %s (current)\n", plan.ID, state.StartDate)
	printHistory(state.History)
	return nil
}

func printHistory(history []models.DailyRecord) {
	for _, rec := range history {
		mark := " "
		if rec.Perfect() {
			mark = "★"
		}
		fmt.Printf("  %s  %d/%d tasks %s\n", rec.DateString, rec.CompletedCount(), len(rec.Tasks), mark)
	}
}
