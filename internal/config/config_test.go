// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("built-in defaults should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.BackendURL != Default().BackendURL {
		t.Errorf("BackendURL = %q, want default", cfg.BackendURL)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
backend_url = "http://10.0.0.5:8000"
default_model = "gpt-x"
available_models = ["gpt-x", "gpt-y"]
search_targets = ["courtlistener", "caselaw"]
max_tokens = 2048

[prompts]
extract_search_statement = "Determine whether the user asked a legal question."

[ui]
reduced_motion = true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.BackendURL != "http://10.0.0.5:8000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.DefaultModel != "gpt-x" {
		t.Errorf("DefaultModel = %q", cfg.DefaultModel)
	}
	if len(cfg.SearchTargets) != 2 || cfg.SearchTargets[1] != "caselaw" {
		t.Errorf("SearchTargets = %v", cfg.SearchTargets)
	}
	if cfg.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %d", cfg.MaxTokens)
	}
	if !cfg.UI.ReducedMotion {
		t.Error("UI.ReducedMotion should be true")
	}
	if cfg.Prompts.ExtractSearchStatement == "" {
		t.Error("prompt transcript should be loaded")
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty backend url", func(c *Config) { c.BackendURL = "" }},
		{"malformed backend url", func(c *Config) { c.BackendURL = "not a url" }},
		{"no models", func(c *Config) { c.AvailableModels = nil }},
		{"no search targets", func(c *Config) { c.SearchTargets = []string{} }},
		{"default model not offered", func(c *Config) { c.DefaultModel = "gpt-z" }},
		{"negative max tokens", func(c *Config) { c.MaxTokens = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate should have failed")
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LEXFLOW_BACKEND_URL", "http://127.0.0.1:9999")
	t.Setenv("LEXFLOW_MAX_TOKENS", "512")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://127.0.0.1:9999" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d", cfg.MaxTokens)
	}
}
