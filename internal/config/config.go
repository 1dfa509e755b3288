// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the lexflow TUI.
//
// Configuration is read from TOML with built-in defaults and environment
// variable overrides, in that order of precedence:
//   - LEXFLOW_* environment variables
//   - ~/.lexflow/config.toml (or the path given with --config)
//   - Built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config is the complete lexflow client configuration.
type Config struct {
	// BackendURL is the base URL of the legal-RAG backend.
	BackendURL string `toml:"backend_url" validate:"required,url"`

	// DefaultModel is the model preselected at startup. It must be one of
	// AvailableModels.
	DefaultModel string `toml:"default_model" validate:"required"`

	// AvailableModels lists the model identifiers the settings overlay
	// offers.
	AvailableModels []string `toml:"available_models" validate:"min=1,dive,required"`

	// SearchTargets lists the legal data sources the backend can query.
	SearchTargets []string `toml:"search_targets" validate:"min=1,dive,required"`

	// MaxTokens caps completion length; 0 lets the backend decide.
	MaxTokens int `toml:"max_tokens" validate:"gte=0"`

	// Prompts carries the backend prompt transcripts, displayed read-only
	// in the inspect overlay.
	Prompts PromptsConfig `toml:"prompts"`

	// UI holds interface preferences.
	UI UIConfig `toml:"ui"`
}

// PromptsConfig holds transcripts of the prompts the backend uses. They are
// for inspection only; the client never sends them.
type PromptsConfig struct {
	Base                   string `toml:"base"`
	History                string `toml:"history"`
	RAG                    string `toml:"rag"`
	ExtractSearchStatement string `toml:"extract_search_statement"`
}

// UIConfig contains interface preferences.
type UIConfig struct {
	// ReducedMotion disables auto-scroll animation during streaming.
	ReducedMotion bool `toml:"reduced_motion"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BackendURL:      "http://127.0.0.1:5000",
		DefaultModel:    "gpt-4o",
		AvailableModels: []string{"gpt-4o", "gpt-4o-mini"},
		SearchTargets:   []string{"courtlistener"},
		MaxTokens:       0,
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lexflow", "config.toml")
}

// Load reads configuration from path, layering it over the defaults and then
// applying environment overrides. A missing file is not an error: defaults
// plus environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration, including the cross-field requirement
// that the default model is actually offered.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	for _, m := range c.AvailableModels {
		if m == c.DefaultModel {
			return nil
		}
	}
	return fmt.Errorf("invalid config: default_model %q is not in available_models", c.DefaultModel)
}

// LogDir returns the directory for the inspect log, creating it if needed.
func LogDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".lexflow")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LEXFLOW_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("LEXFLOW_DEFAULT_MODEL"); v != "" {
		cfg.DefaultModel = v
	}
	if v := os.Getenv("LEXFLOW_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("LEXFLOW_REDUCED_MOTION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.ReducedMotion = b
		}
	}
}
