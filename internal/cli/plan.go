package cli

import (
	"errors"
	"io"
	"strings"

	"checkin-cli/internal/clock"
	"checkin-cli/internal/model"
	"checkin-cli/internal/plan"
	"checkin-cli/internal/sched"
	"checkin-cli/internal/store"

	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Free-text plan captures and task injection",
	}
	cmd.AddCommand(newPlanSetCmd(app))
	cmd.AddCommand(newPlanShowCmd(app))
	cmd.AddCommand(newPlanInjectCmd(app))
	cmd.AddCommand(newPlanGenerateCmd(app))
	return cmd
}

func parseScope(s string) (model.PlanScope, error) {
	sc := model.PlanScope(strings.ToLower(strings.TrimSpace(s)))
	if !sc.Valid() {
		return "", errors.New("invalid --scope (expected day|week|month|year)")
	}
	return sc, nil
}

func newPlanSetCmd(app *App) *cobra.Command {
	var scope, top3, must, notes string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the plan capture for a scope bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := parseScope(scope)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := openDay(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			key := store.ScopeKey(sc, c.anchor)
			ps := store.PlanStore{M: c.m}
			rec := ps.Load(sc, key)
			if cmd.Flags().Changed("top3") {
				rec.Top3 = top3
			}
			if cmd.Flags().Changed("must") {
				rec.Must = must
			}
			if cmd.Flags().Changed("notes") {
				rec.Notes = notes
			}
			if err := ps.Save(sc, key, rec); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"scope": sc, "key": key, "plan": rec,
			}})
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "day", "Plan scope (day|week|month|year)")
	cmd.Flags().StringVar(&top3, "top3", "", "Top-3 lines (newline separated)")
	cmd.Flags().StringVar(&must, "must", "", "Must-do lines, one task per line")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the plan capture for a scope bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := parseScope(scope)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := openDay(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			key := store.ScopeKey(sc, c.anchor)
			rec := store.PlanStore{M: c.m}.Load(sc, key)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"scope": sc, "key": key, "plan": rec,
			}})
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "day", "Plan scope (day|week|month|year)")

	return cmd
}

func newPlanInjectCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "inject [text]",
		Short: "Parse plan lines into the day's task list (reads stdin without an argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				text = args[0]
			} else {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				text = string(b)
			}

			drafts := plan.ParseText(text)
			return injectDrafts(cmd, app, drafts)
		},
	}

	return cmd
}

func newPlanGenerateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the day's tasks from the prior day's plan capture",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openDay(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			prevKey := clock.DateKey(c.anchor.AddDate(0, 0, -1))
			prev := store.PlanStore{M: c.m}.Load(model.ScopeDay, prevKey)
			drafts := plan.GenerateFromPlan(prev)

			return injectDraftsInto(cmd, app, c, drafts)
		},
	}
}

func injectDrafts(cmd *cobra.Command, app *App, drafts []model.Task) error {
	c, err := openDay(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer c.Close()
	return injectDraftsInto(cmd, app, c, drafts)
}

// injectDraftsInto merges drafts into the day with the exact-title dedup
// rule and reports how many were actually added (dedup skips are a count,
// not an error).
func injectDraftsInto(cmd *cobra.Command, app *App, c *dayCtx, drafts []model.Task) error {
	for i := range drafts {
		drafts[i] = sched.Normalize(drafts[i])
	}

	rec := c.days.Load(c.key)
	merged, added := sched.MergeDrafts(rec.Tasks, drafts)
	rec.Tasks = merged
	if err := c.days.Save(c.key, rec); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": map[string]any{
		"date":    c.key,
		"parsed":  len(drafts),
		"added":   added,
		"skipped": len(drafts) - added,
	}})
}
