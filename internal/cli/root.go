package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"checkin-cli/internal/clock"
	"checkin-cli/internal/format"
	"checkin-cli/internal/store"
	"checkin-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Date       string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "checkin",
		Short:        "Daily execution tracker (local-first) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive dashboard for today
  checkin

  # Scriptable commands
  checkin tasks add "Draft intro" --window 09:00-09:25
  checkin tasks list
  checkin timer start
  checkin stats --scope week
  checkin export --format csv --scope month
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CHECKIN_DIR", ""), "Path to the data dir (default: ~/.checkin/data)")
	cmd.PersistentFlags().StringVar(&app.Date, "date", envOr("CHECKIN_DATE", ""), "Day to operate on, YYYY-MM-DD (default: today)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CHECKIN_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newPlanCmd(app))
	cmd.AddCommand(newTimerCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newGoalsCmd(app))
	cmd.AddCommand(newNotesCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	m, err := openMedium(app)
	if err != nil {
		return err
	}
	defer m.Close()

	anchor, err := anchorDate(app)
	if err != nil {
		return err
	}
	return tui.Run(tui.Deps{
		Medium: m,
		Days:   dayStore(m),
		Goals:  store.GoalStore{M: m},
		Date:   anchor,
		Config: store.LoadConfig(),
	})
}

func openMedium(app *App) (*store.SQLiteMedium, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return store.OpenSQLite(dir)
}

func dayStore(m store.Medium) store.DayStore {
	return store.DayStore{M: m, Seed: store.LoadConfig().SeedPolicyOrDefault()}
}

// anchorDate resolves --date (or today). Only "today" views can show
// overdue tasks: overdue checks compare this anchor against the wall clock.
func anchorDate(app *App) (time.Time, error) {
	if strings.TrimSpace(app.Date) == "" {
		return time.Now(), nil
	}
	d, err := clock.ParseDateKey(app.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", app.Date)
	}
	return d, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
