package cli

import (
	"errors"
	"strings"

	"checkin-cli/internal/store"

	"github.com/spf13/cobra"
)

func newGoalsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Long-lived goals tasks can reference",
	}
	cmd.AddCommand(newGoalsAddCmd(app))
	cmd.AddCommand(newGoalsListCmd(app))
	cmd.AddCommand(newGoalsRemoveCmd(app))
	return cmd
}

func newGoalsAddCmd(app *App) *cobra.Command {
	var desc string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return writeErr(cmd, errors.New("missing goal title"))
			}
			m, err := openMedium(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer m.Close()

			g, err := store.GoalStore{M: m}.Add(args[0], desc)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": g})
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Optional description")

	return cmd
}

func newGoalsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMedium(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer m.Close()

			return writeOut(cmd, app, map[string]any{"data": store.GoalStore{M: m}.Load()})
		},
	}
}

func newGoalsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <goal-id>",
		Short: "Remove a goal (tasks still pointing at it resolve to none)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMedium(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer m.Close()

			gs := store.GoalStore{M: m}
			if _, ok := gs.Resolve(args[0]); !ok {
				return writeErr(cmd, errNotFound("goal", args[0]))
			}
			if err := gs.Remove(args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": args[0]}})
		},
	}
}
