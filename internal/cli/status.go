package cli

import "fmt"

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, err := ctx.Engine.Bootstrap()
	if err != nil {
		return err
	}

	plan := ctx.Engine.CurrentPlan()
	fmt.Printf("%s — day %d of %d (started %s)\n", plan.Name, state.CurrentDay, plan.DurationDays, state.StartDate)
	fmt.Printf("%s\n\n", progressBar(state.OverallProgress(plan.DurationDays), 30))

	rec := state.TodayRecord()
	printDay(rec)
	if rec != nil {
		fmt.Printf("\n%d/%d tasks done today\n", rec.CompletedCount(), len(rec.Tasks))
	}

	cd := ctx.Clock.UntilMidnight()
	fmt.Printf("\n%02d:%02d:%02d until midnight\n", cd.Hours, cd.Minutes, cd.Seconds)
	return nil
}
