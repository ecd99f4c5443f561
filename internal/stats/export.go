package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"checkin-cli/internal/model"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

var csvHeader = []string{
	"date", "section", "title", "output", "minutes",
	"done", "fixedWindow", "remark", "priority", "goalId",
}

// WriteCSV writes the rows as CSV. Fields are quoted only when they contain
// a comma or a quote; quotes are escaped by doubling. This quoting rule is
// part of the export contract, so encoding/csv (which also quotes on
// newlines and leading spaces) is not used here.
func WriteCSV(w io.Writer, rows []Row) error {
	if _, err := io.WriteString(w, strings.Join(csvHeader, ",")+"\n"); err != nil {
		return err
	}
	for _, r := range rows {
		fields := []string{
			r.Date, r.Section, r.Title, r.Output, strconv.Itoa(r.Minutes),
			strconv.FormatBool(r.Done), r.FixedWindow, r.Remark, r.Priority, r.GoalID,
		}
		for i, f := range fields {
			fields[i] = csvField(f)
		}
		if _, err := io.WriteString(w, strings.Join(fields, ",")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func csvField(s string) string {
	if !strings.ContainsAny(s, `,"`) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteJSON writes the rows as a pretty-printed JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// ExportFilename suggests a download filename for a scope bucket.
func ExportFilename(scope model.PlanScope, key, format string) string {
	return fmt.Sprintf("checkin-%s-%s.%s", scope, key, format)
}

// MIMEType returns the content type for an export format.
func MIMEType(format string) string {
	if format == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}
