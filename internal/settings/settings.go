package settings

import (
	"encoding/json"
	"strings"

	"github.com/stefankummer/promptpocket/internal/errors"
	"github.com/stefankummer/promptpocket/internal/store"
)

// Status is a prompt publication status.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
)

// Theme selects the popup color scheme.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// Settings holds user preferences. They live in the synced partition;
// the auth token never does.
type Settings struct {
	// APIEndpoint is the base URL of the prompt service, without a
	// trailing slash.
	APIEndpoint string `json:"apiEndpoint"`

	// DefaultStatus is applied to quick-saves and pre-selected in the
	// popup form.
	DefaultStatus Status `json:"defaultStatus"`

	// AutoGetSelection pulls the current selection into the popup's
	// content field when no pending selection is waiting.
	AutoGetSelection bool `json:"autoGetSelection"`

	// Language is a BCP 47-ish tag ("en", "fr", "de"). Empty means
	// detect from the environment.
	Language string `json:"language,omitempty"`

	// Theme is one of system, light, dark.
	Theme Theme `json:"theme,omitempty"`
}

// Defaults returns the default settings.
func Defaults() Settings {
	return Settings{
		APIEndpoint:      "https://promptpocket.app/api/v1",
		DefaultStatus:    StatusPublished,
		AutoGetSelection: true,
		Theme:            ThemeSystem,
	}
}

// Load reads settings from the synced partition and shallow-merges them
// over the defaults. A missing or partial record never drops fields:
// absent keys keep their default value.
func Load(s *store.Store) (Settings, error) {
	result := Defaults()

	raw, ok, err := s.Get(store.PartitionSynced, store.KeySettings)
	if err != nil {
		return result, err
	}
	if !ok {
		return result, nil
	}

	// Unmarshal into a copy of the defaults: only the keys present in
	// the stored JSON are overwritten.
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return Defaults(), errors.NewInternal(err)
	}
	return normalize(result), nil
}

// Save normalizes and persists settings to the synced partition.
func Save(s *store.Store, in Settings) (Settings, error) {
	in = normalize(in)
	data, err := json.Marshal(in)
	if err != nil {
		return in, errors.NewInternal(err)
	}
	if err := s.Put(store.PartitionSynced, store.KeySettings, string(data)); err != nil {
		return in, err
	}
	return in, nil
}

// normalize trims values and strips the endpoint's trailing slash.
func normalize(in Settings) Settings {
	in.APIEndpoint = strings.TrimSuffix(strings.TrimSpace(in.APIEndpoint), "/")
	if in.APIEndpoint == "" {
		in.APIEndpoint = Defaults().APIEndpoint
	}
	if in.DefaultStatus != StatusPublished && in.DefaultStatus != StatusDraft {
		in.DefaultStatus = Defaults().DefaultStatus
	}
	switch in.Theme {
	case ThemeSystem, ThemeLight, ThemeDark:
	default:
		in.Theme = ThemeSystem
	}
	in.Language = strings.TrimSpace(in.Language)
	return in
}
