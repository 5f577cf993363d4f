package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.DisabledTools) != 0 {
		t.Fatalf("DisabledTools = %v, want empty", cfg.DisabledTools)
	}
	if cfg.Quiet {
		t.Fatal("Quiet should default to false")
	}
}

func TestLoad_DisabledTools(t *testing.T) {
	tmpDir := t.TempDir()
	body := []byte(`{"disabled_tools": ["prompt_capture", " prompt_capture ", "", "prompt_pending"]}`)
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), body, 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"prompt_capture", "prompt_pending"}
	if len(cfg.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", cfg.DisabledTools, want)
	}
	for i, name := range want {
		if cfg.DisabledTools[i] != name {
			t.Fatalf("DisabledTools[%d] = %q, want %q", i, cfg.DisabledTools[i], name)
		}
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatal("Load() expected error, got nil")
	}
}
