package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/mfiorito/hard75/internal/models"
	"github.com/mfiorito/hard75/internal/plan"
)

type PlanCmd struct {
	List   PlanListCmd   `cmd:"" help:"List available plans." default:"1"`
	Show   PlanShowCmd   `cmd:"" help:"Show a plan's daily tasks."`
	Select PlanSelectCmd `cmd:"" help:"Switch to a plan. Archives the current attempt."`
	Custom PlanCustomCmd `cmd:"" help:"Manage the custom plan's task list."`
}

type PlanListCmd struct{}

func (c *PlanListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	sel, err := ctx.Store.GetSelectedPlan()
	if err != nil {
		sel = models.PlanSelection{}
	}

	for _, p := range plan.All() {
		marker := " "
		if p.ID == sel.ID {
			marker = "*"
		}
		fmt.Printf("%s %-8s %3d days, %d tasks/day  %s\n", marker, p.ID, p.DurationDays, len(p.Tasks), p.Description)
	}
	return nil
}

type PlanShowCmd struct {
	ID string `arg:"" help:"Plan ID (soft, medium, hard, custom)."`
}

func (c *PlanShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	p, err := resolvePlan(ctx, c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s — %s (%d days)\n\n", p.Name, p.Description, p.DurationDays)
	for _, def := range p.Tasks {
		fmt.Printf("  %s %-16s %s\n", def.Icon, def.ID, def.Label)
	}
	return nil
}

type PlanSelectCmd struct {
	ID  string `arg:"" help:"Plan ID to switch to."`
	Yes bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *PlanSelectCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	p, err := resolvePlan(ctx, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("Switching to %q archives your current attempt and restarts at day 1.\n", p.Name)
		if !confirm("Continue?") {
			fmt.Println("Plan switch cancelled.")
			return nil
		}
	}

	state, err := ctx.Engine.ApplyPlan(p)
	if err != nil {
		return err
	}

	fmt.Printf("Now on %s, day %d of %d.\n", p.Name, state.CurrentDay, p.DurationDays)
	return nil
}

type PlanCustomCmd struct {
	List   PlanCustomListCmd   `cmd:"" help:"List custom plan tasks." default:"1"`
	Add    PlanCustomAddCmd    `cmd:"" help:"Add a task to the custom plan."`
	Edit   PlanCustomEditCmd   `cmd:"" help:"Edit a custom plan task."`
	Remove PlanCustomRemoveCmd `cmd:"" help:"Remove a task from the custom plan."`
}

type PlanCustomListCmd struct{}

func (c *PlanCustomListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	defs, err := customTasks(ctx)
	if err != nil {
		return err
	}
	for _, def := range defs {
		fmt.Printf("  %s %-24s %s\n", def.Icon, def.ID, def.Label)
	}
	return nil
}

type PlanCustomAddCmd struct {
	Label       string `arg:"" help:"Task label."`
	Description string `help:"Longer task description." short:"d"`
	Icon        string `help:"Emoji icon." default:"✅"`
}

func (c *PlanCustomAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	defs, err := customTasks(ctx)
	if err != nil {
		return err
	}

	def := models.TaskDefinition{
		ID:          "custom-" + uuid.NewString()[:8],
		Label:       c.Label,
		Description: c.Description,
		Icon:        c.Icon,
	}
	defs = append(defs, def)
	if err := ctx.Store.SaveCustomTasks(defs); err != nil {
		return err
	}

	fmt.Printf("Added %s (%s). The change applies the next time the custom plan starts a day.\n", def.Label, def.ID)
	return nil
}

type PlanCustomEditCmd struct {
	ID          string `arg:"" help:"Task ID to edit."`
	Label       string `help:"New task label."`
	Description string `help:"New task description." short:"d"`
	Icon        string `help:"New emoji icon."`
}

func (c *PlanCustomEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	defs, err := customTasks(ctx)
	if err != nil {
		return err
	}

	for i := range defs {
		if defs[i].ID != c.ID {
			continue
		}
		if c.Label != "" {
			defs[i].Label = c.Label
		}
		if c.Description != "" {
			defs[i].Description = c.Description
		}
		if c.Icon != "" {
			defs[i].Icon = c.Icon
		}
		if err := ctx.Store.SaveCustomTasks(defs); err != nil {
			return err
		}
		fmt.Printf("Updated %s.\n", c.ID)
		return nil
	}
	return fmt.Errorf("no custom task with id %q", c.ID)
}

type PlanCustomRemoveCmd struct {
	ID string `arg:"" help:"Task ID to remove."`
}

func (c *PlanCustomRemoveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	defs, err := customTasks(ctx)
	if err != nil {
		return err
	}

	kept := defs[:0]
	for _, def := range defs {
		if def.ID != c.ID {
			kept = append(kept, def)
		}
	}
	if len(kept) == len(defs) {
		return fmt.Errorf("no custom task with id %q", c.ID)
	}
	if len(kept) == 0 {
		return fmt.Errorf("cannot remove the last custom task")
	}
	if err := ctx.Store.SaveCustomTasks(kept); err != nil {
		return err
	}

	fmt.Printf("Removed %s.\n", c.ID)
	return nil
}

// resolvePlan looks up a catalog plan, substituting the stored task list for
// the custom plan.
func resolvePlan(ctx *Context, id string) (models.Plan, error) {
	p, err := plan.Get(id)
	if err != nil {
		return models.Plan{}, err
	}
	if p.ID == "custom" {
		defs, err := customTasks(ctx)
		if err != nil {
			return models.Plan{}, err
		}
		p = plan.Custom(defs)
	}
	return p, nil
}

// customTasks returns the stored custom task definitions, seeding the
// defaults on first use.
func customTasks(ctx *Context) ([]models.TaskDefinition, error) {
	defs, err := ctx.Store.GetCustomTasks()
	if err != nil || len(defs) == 0 {
		defs = plan.DefaultCustomTasks()
		if err := ctx.Store.SaveCustomTasks(defs); err != nil {
			return nil, err
		}
	}
	return defs, nil
}

// confirm prompts before a destructive action. Defaults to no.
func confirm(prompt string) bool {
	var ok bool
	if err := huh.NewConfirm().Title(prompt).Value(&ok).Run(); err != nil {
		return false
	}
	return ok
}
