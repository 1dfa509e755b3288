// lexflow TUI - terminal client for the lexflow legal research backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/lexflow-tui/internal/api"
	"github.com/jeranaias/lexflow-tui/internal/config"
	"github.com/jeranaias/lexflow-tui/internal/inspect"
	"github.com/jeranaias/lexflow-tui/internal/ui/chat"
	"github.com/jeranaias/lexflow-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lexflow:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.DefaultPath(), "path to the config file")
	backendURL := flag.String("backend", "", "backend URL (overrides the config file)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("lexflow %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("standard output is not a terminal")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *backendURL != "" {
		cfg.BackendURL = *backendURL
	}

	// Inspect log: every backend exchange lands in ~/.lexflow/inspect.log;
	// the overlay shows the in-memory tail of the same stream.
	var sink io.Writer = io.Discard
	if dir, err := config.LogDir(); err == nil {
		if f, err := os.OpenFile(filepath.Join(dir, "inspect.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
			defer f.Close()
			sink = f
		}
	}
	inspector := inspect.New(sink)

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.BackendURL,
	})

	theme := styles.NewTheme()
	app := chat.New(cfg, client, inspector, theme)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Hot-reload: edits to the config file land in the running session. A
	// broken edit is reported and otherwise ignored.
	stopWatch := make(chan struct{})
	defer close(stopWatch)
	watchErr := config.Watch(*configPath,
		func(next *config.Config) {
			if *backendURL != "" {
				next.BackendURL = *backendURL
			}
			p.Send(chat.ConfigReloadedMsg{Config: next})
		},
		func(err error) {
			p.Send(chat.ConfigReloadedMsg{Err: err})
		},
		stopWatch,
	)
	if watchErr != nil {
		inspector.RecordError("config watch unavailable", watchErr)
	}

	_, err = p.Run()
	return err
}
