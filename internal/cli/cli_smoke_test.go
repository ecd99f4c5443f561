package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func isolate(t *testing.T) (dir string) {
	t.Helper()
	t.Setenv("CHECKIN_CONFIG_DIR", t.TempDir())
	t.Setenv("CHECKIN_DIR", "")
	t.Setenv("CHECKIN_DATE", "")
	t.Setenv("CHECKIN_FORMAT", "")
	return t.TempDir()
}

func TestCLISmoke(t *testing.T) {
	dir := isolate(t)

	mustRun := func(args ...string) map[string]any {
		t.Helper()
		stdout, stderr, err := runCLI(t, args...)
		if err != nil {
			t.Fatalf("command failed: checkin %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
		}
		var env map[string]any
		if err := json.Unmarshal(stdout, &env); err != nil {
			t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
		}
		if _, ok := env["data"]; !ok {
			t.Fatalf("expected JSON envelope with data key; got: %v", env)
		}
		return env
	}
	data := func(env map[string]any) map[string]any {
		t.Helper()
		d, ok := env["data"].(map[string]any)
		if !ok {
			t.Fatalf("expected data to be an object; got: %#v", env["data"])
		}
		return d
	}

	// March 5th is an odd day of the month, so the alt-days task is hidden.
	day := []string{"--dir", dir, "--date", "2025-03-05"}
	with := func(args ...string) []string { return append(append([]string{}, day...), args...) }

	a := mustRun(with("tasks", "add", "Deep work", "--window", "09:00-09:25", "--priority", "important-urgent")...)
	deepID, _ := data(a)["id"].(string)
	if deepID == "" {
		t.Fatalf("expected tasks add to return an id; got: %#v", a["data"])
	}
	mustRun(with("tasks", "add", "Even chore", "--alt-days")...)

	list := mustRun(with("tasks", "list")...)
	if xs, _ := data(list)["tasks"].([]any); len(xs) != 1 {
		t.Fatalf("expected 1 visible task on an odd day; got: %#v", data(list)["tasks"])
	}
	all := mustRun(with("tasks", "list", "--all")...)
	if xs, _ := data(all)["tasks"].([]any); len(xs) != 2 {
		t.Fatalf("expected 2 tasks with --all; got: %#v", data(all)["tasks"])
	}

	done := mustRun(with("tasks", "done", deepID)...)
	if v, _ := data(done)["done"].(bool); !v {
		t.Fatalf("expected task marked done; got: %#v", done["data"])
	}

	// Plan capture + inject with the dedup rule.
	mustRun(with("plan", "set", "--scope", "day", "--must", "[10:00-10:50] Review queue → merged list")...)
	show := mustRun(with("plan", "show", "--scope", "day")...)
	if p, _ := data(show)["plan"].(map[string]any); p["must"] == "" {
		t.Fatalf("expected plan show to round-trip must; got: %#v", show["data"])
	}

	inj := mustRun(with("plan", "inject", "[07:00-07:25] Journal → one page")...)
	if n, _ := data(inj)["added"].(float64); n != 1 {
		t.Fatalf("expected 1 task added; got: %#v", inj["data"])
	}
	again := mustRun(with("plan", "inject", "[07:00-07:25] Journal → one page")...)
	if n, _ := data(again)["skipped"].(float64); n != 1 {
		t.Fatalf("expected duplicate title skipped; got: %#v", again["data"])
	}

	// Next day generates from the prior day's capture.
	gen := mustRun("--dir", dir, "--date", "2025-03-06", "plan", "generate")
	if n, _ := data(gen)["added"].(float64); n != 1 {
		t.Fatalf("expected 1 generated task; got: %#v", gen["data"])
	}

	// Timer state machine through the CLI.
	st := mustRun(with("timer", "status")...)
	if n, _ := data(st)["remainingSeconds"].(float64); n != 1500 {
		t.Fatalf("expected fresh short focus = 1500s; got: %#v", st["data"])
	}
	st = mustRun(with("timer", "mode", "long")...)
	if n, _ := data(st)["remainingSeconds"].(float64); n != 3000 {
		t.Fatalf("expected long focus = 3000s; got: %#v", st["data"])
	}
	st = mustRun(with("timer", "start")...)
	if v, _ := data(st)["running"].(bool); !v {
		t.Fatalf("expected running after start; got: %#v", st["data"])
	}
	if _, _, err := runCLI(t, with("timer", "mode", "short")...); err == nil {
		t.Fatalf("expected mode change to fail while running")
	}
	st = mustRun(with("timer", "pause")...)
	if v, _ := data(st)["running"].(bool); v {
		t.Fatalf("expected paused after pause; got: %#v", st["data"])
	}
	if n, _ := data(st)["remainingSeconds"].(float64); n < 2990 || n > 3000 {
		t.Fatalf("expected pause to preserve remaining time; got: %#v", st["data"])
	}
	st = mustRun(with("timer", "bind", deepID)...)
	if got, _ := data(st)["boundTaskId"].(string); got != deepID {
		t.Fatalf("expected bound task %s; got: %#v", deepID, st["data"])
	}

	// Aggregation over the day bucket.
	agg := mustRun(with("stats", "--scope", "day")...)
	ad := data(agg)
	if ad["total"].(float64) != 3 || ad["done"].(float64) != 1 || ad["rate"].(float64) != 33 {
		t.Fatalf("unexpected day stats: %#v", agg["data"])
	}

	// CSV export goes to stdout raw, no envelope.
	csvOut, _, err := runCLI(t, with("export", "--scope", "day", "--format", "csv")...)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.HasPrefix(string(csvOut), "date,section,title,output,minutes,done,fixedWindow,remark,priority,goalId") {
		t.Fatalf("unexpected csv header:\n%s", csvOut)
	}
	if !strings.Contains(string(csvOut), "Deep work") {
		t.Fatalf("csv missing task row:\n%s", csvOut)
	}

	// Goals lifecycle + weak reference from a task.
	g := mustRun("--dir", dir, "goals", "add", "Ship v1", "--desc", "first public release")
	goalID, _ := data(g)["id"].(string)
	if goalID == "" {
		t.Fatalf("expected goals add to return an id; got: %#v", g["data"])
	}
	mustRun(with("tasks", "set-goal", deepID, goalID)...)
	shown := mustRun(with("tasks", "show", deepID)...)
	if got, _ := data(shown)["goalTitle"].(string); got != "Ship v1" {
		t.Fatalf("expected resolved goal title; got: %#v", shown["data"])
	}
	mustRun("--dir", dir, "goals", "remove", goalID)
	shown = mustRun(with("tasks", "show", deepID)...)
	if got, _ := data(shown)["goalTitle"].(string); got != "" {
		t.Fatalf("expected dangling goal to resolve to none; got: %#v", shown["data"])
	}

	// Notes.
	mustRun(with("notes", "set", "slow morning")...)
	notes := mustRun(with("notes", "append", "good afternoon")...)
	if got, _ := data(notes)["notes"].(string); got != "slow morning\ngood afternoon" {
		t.Fatalf("unexpected notes: %q", got)
	}

	// Config round trip.
	mustRun("--dir", dir, "config", "seed", "template")
	cfg := mustRun("--dir", dir, "config", "show")
	if got, _ := data(cfg)["seed"].(string); got != "template" {
		t.Fatalf("expected seed=template; got: %#v", cfg["data"])
	}

	// Curated section catalog.
	sections := mustRun("--dir", dir, "tasks", "sections")
	if xs, _ := sections["data"].([]any); len(xs) == 0 {
		t.Fatalf("expected curated sections; got: %#v", sections["data"])
	}

	// Docs topics exist and render raw.
	topics := mustRun("--dir", dir, "docs")
	if xs, _ := data(topics)["topics"].([]any); len(xs) == 0 {
		t.Fatalf("expected embedded docs topics; got: %#v", topics["data"])
	}
	raw, _, err := runCLI(t, "--dir", dir, "docs", "timer", "--raw")
	if err != nil || len(raw) == 0 {
		t.Fatalf("expected raw docs body; err=%v", err)
	}
}

func TestCLIUnknownTaskID(t *testing.T) {
	dir := isolate(t)

	_, stderr, err := runCLI(t, "--dir", dir, "--date", "2025-03-05", "tasks", "show", "nope")
	if err == nil {
		t.Fatalf("expected error for unknown task id")
	}
	if !strings.Contains(string(stderr), "task not found") {
		t.Fatalf("expected not-found message on stderr; got:\n%s", stderr)
	}
}

func TestCLITemplateSeedNewDay(t *testing.T) {
	dir := isolate(t)

	if _, _, err := runCLI(t, "--dir", dir, "config", "seed", "template"); err != nil {
		t.Fatalf("config seed: %v", err)
	}
	stdout, _, err := runCLI(t, "--dir", dir, "--date", "2025-03-04", "tasks", "list")
	if err != nil {
		t.Fatalf("tasks list: %v", err)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, stdout)
	}
	d := env["data"].(map[string]any)
	xs, _ := d["tasks"].([]any)
	if len(xs) == 0 {
		t.Fatalf("expected template-seeded tasks on a fresh day; got: %#v", d)
	}
}
