package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Free-text notes for the day",
	}
	cmd.AddCommand(newNotesShowCmd(app))
	cmd.AddCommand(newNotesSetCmd(app))
	cmd.AddCommand(newNotesAppendCmd(app))
	return cmd
}

func newNotesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the day's notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openDay(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			rec := c.days.Load(c.key)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"date":  c.key,
				"notes": rec.Notes,
			}})
		},
	}
}

func newNotesSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <text>",
		Short: "Replace the day's notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateNotes(cmd, app, func(notes string) string { return args[0] })
		},
	}
}

func newNotesAppendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "append <text>",
		Short: "Append a line to the day's notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateNotes(cmd, app, func(notes string) string {
				if strings.TrimSpace(notes) == "" {
					return args[0]
				}
				return notes + "\n" + args[0]
			})
		},
	}
}

func mutateNotes(cmd *cobra.Command, app *App, fn func(string) string) error {
	c, err := openDay(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer c.Close()

	rec := c.days.Load(c.key)
	rec.Notes = fn(rec.Notes)
	if err := c.days.Save(c.key, rec); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": map[string]any{
		"date":  c.key,
		"notes": rec.Notes,
	}})
}
