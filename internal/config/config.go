package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds process-level configuration. User-facing preferences
// (endpoint, language, theme) live in the store's synced partition,
// not here; this file covers knobs that must be readable before the
// store is open.
type Config struct {
	// DisabledTools is a list of MCP tool names to exclude from
	// registration. All tools are enabled by default. Unknown names
	// are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// Quiet suppresses terminal notifications from background save
	// flows.
	Quiet bool `json:"quiet,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Load loads configuration from baseDir/config.json. A missing file
// yields the defaults. The baseDir parameter allows tests to use
// t.TempDir() instead of ~/.promptpocket.
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.DisabledTools = cleanStringSlice(cfg.DisabledTools)
	return cfg, nil
}

// cleanStringSlice trims entries and removes blanks and duplicates.
func cleanStringSlice(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
