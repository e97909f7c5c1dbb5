package cli

import "fmt"

type DoneCmd struct {
	Task string `arg:"" help:"Task ID to mark complete (e.g. 'diet', 'workout-1')."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	return setCompletion(ctx, c.Task, true)
}

type UndoCmd struct {
	Task string `arg:"" help:"Task ID to mark incomplete."`
}

func (c *UndoCmd) Run(ctx *Context) error {
	return setCompletion(ctx, c.Task, false)
}

// setCompletion flips the task only when its state differs from the target,
// so repeating a command is harmless.
func setCompletion(ctx *Context, taskID string, completed bool) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, err := ctx.Engine.Bootstrap()
	if err != nil {
		return err
	}

	rec := state.TodayRecord()
	if rec == nil {
		return fmt.Errorf("no record for today")
	}

	var found bool
	for _, task := range rec.Tasks {
		if task.ID != taskID {
			continue
		}
		found = true
		if task.Completed == completed {
			fmt.Printf("%s %s (unchanged)\n", checkbox(task.Completed), task.ID)
			return nil
		}
	}
	if !found {
		return fmt.Errorf("unknown task %q, see 'hard75 status' for today's tasks", taskID)
	}

	state, err = ctx.Engine.Toggle(taskID)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", checkbox(completed), taskID)
	if rec := state.TodayRecord(); rec != nil && rec.Perfect() {
		fmt.Println("All tasks complete. See you tomorrow!")
	}
	return nil
}
