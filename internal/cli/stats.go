package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"checkin-cli/internal/stats"

	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate completion history for a scope bucket",
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

			st, err := stats.Aggregate(c.days, sc, c.anchor)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": st})
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "day", "Aggregation scope (day|week|month|year)")

	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var scope, formatFlag, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the scoped raw task rows as CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := parseScope(scope)
			if err != nil {
				return writeErr(cmd, err)
			}
			f := strings.ToLower(strings.TrimSpace(formatFlag))
			if f != stats.FormatCSV && f != stats.FormatJSON {
				return writeErr(cmd, errors.New("invalid --format (expected csv|json)"))
			}

			c, err := openDay(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			rows, err := stats.Rows(c.days, sc, c.anchor)
			if err != nil {
				return writeErr(cmd, err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer file.Close()
				w = file
			}

			if f == stats.FormatCSV {
				err = stats.WriteCSV(w, rows)
			} else {
				err = stats.WriteJSON(w, rows)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if outPath != "" {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"file": outPath,
					"name": stats.ExportFilename(sc, stats.BucketKey(sc, c.anchor), f),
					"mime": stats.MIMEType(f),
					"rows": len(rows),
				}})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "day", "Export scope (day|week|month|year)")
	cmd.Flags().StringVar(&formatFlag, "format", stats.FormatCSV, "Export format (csv|json)")
	cmd.Flags().StringVar(&outPath, "out", "", "Write to a file instead of stdout")

	return cmd
}
