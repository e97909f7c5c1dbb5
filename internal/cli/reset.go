package cli

import "fmt"

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if !c.Yes {
		fmt.Println("This archives your current attempt and restarts the challenge at day 1.")
		if !confirm("Reset?") {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	state, err := ctx.Engine.Reset()
	if err != nil {
		return err
	}

	plan := ctx.Engine.CurrentPlan()
	fmt.Printf("Back to day %d of %d on %s. Started %s.\n", state.CurrentDay, plan.DurationDays, plan.Name, state.StartDate)
	return nil
}
