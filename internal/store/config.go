package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// GlobalConfig is the user-level configuration in ~/.checkin/config.json.
type GlobalConfig struct {
	// Seed selects the default-record policy for days that have never been
	// saved: "empty" (default), "template", or "plan".
	Seed SeedPolicy `json:"seed,omitempty"`

	// TimerMode is the preferred cycle ("short" or "long") for fresh days.
	TimerMode string `json:"timerMode,omitempty"`

	// Notify disables desktop notifications entirely when false is set
	// explicitly. Notification failures are always non-fatal either way.
	Notify *bool `json:"notify,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.checkin).
	if v := strings.TrimSpace(os.Getenv("CHECKIN_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".checkin"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DataDir is where the kv database lives unless --dir overrides it.
func DataDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// LoadConfig reads the global config. A missing file reads as defaults;
// malformed JSON does too, matching the recovery policy for all persisted
// data.
func LoadConfig() GlobalConfig {
	path, err := ConfigPath()
	if err != nil {
		return GlobalConfig{}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return GlobalConfig{}
	}
	var cfg GlobalConfig
	if json.Unmarshal(b, &cfg) != nil {
		return GlobalConfig{}
	}
	return cfg
}

func SaveConfig(cfg GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// SeedPolicyOrDefault normalizes the configured seed policy.
func (c GlobalConfig) SeedPolicyOrDefault() SeedPolicy {
	if c.Seed.Valid() {
		return c.Seed
	}
	return SeedEmpty
}

// ParseSeedPolicy validates a user-supplied policy name.
func ParseSeedPolicy(s string) (SeedPolicy, error) {
	p := SeedPolicy(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", errors.New("invalid seed policy: expected empty|template|plan")
	}
	return p, nil
}
