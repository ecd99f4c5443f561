package cli

import (
	"errors"
	"strconv"
	"strings"

	"checkin-cli/internal/model"
	"checkin-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Global configuration (~/.checkin/config.json)",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSeedCmd(app))
	cmd.AddCommand(newConfigTimerModeCmd(app))
	cmd.AddCommand(newConfigNotifyCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := store.LoadConfig()
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"seed":      cfg.SeedPolicyOrDefault(),
				"timerMode": cfg.TimerMode,
				"notify":    cfg.Notify == nil || *cfg.Notify,
			}})
		},
	}
}

func newConfigSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <empty|template|plan>",
		Short: "Choose how unseen days are seeded on first read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.ParseSeedPolicy(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg := store.LoadConfig()
			cfg.Seed = p
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"seed": p}})
		},
	}
}

func newConfigTimerModeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timer-mode <short|long>",
		Short: "Preferred cycle for fresh days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := model.TimerMode(strings.ToLower(strings.TrimSpace(args[0])))
			if !m.Valid() {
				return writeErr(cmd, errors.New("invalid mode: expected short|long"))
			}
			cfg := store.LoadConfig()
			cfg.TimerMode = string(m)
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"timerMode": m}})
		},
	}
}

func newConfigNotifyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notify <true|false>",
		Short: "Enable or disable desktop notifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseBool(args[0])
			if err != nil {
				return writeErr(cmd, errors.New("expected true or false"))
			}
			cfg := store.LoadConfig()
			cfg.Notify = &v
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"notify": v}})
		},
	}
}
