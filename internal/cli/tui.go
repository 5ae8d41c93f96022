// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/fraction-tui/internal/logging"
	"github.com/jeranaias/fraction-tui/internal/script"
	"github.com/jeranaias/fraction-tui/internal/ui/chat"
)

// runTUI starts the interactive playback.
func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	closer, err := logging.Setup(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	s, err := loadScript(cfg)
	if err != nil {
		return err
	}

	m := chat.New(chat.Options{
		Script: s,
		Config: cfg,
		Logger: slog.Default(),
	})

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, programOpts...)

	if cfg.Playback.Watch {
		stop, err := watchScript(cfg.Playback.Script, p)
		if err != nil {
			return err
		}
		defer stop()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// watchScript forwards reloads of path into the running program. The
// watcher goroutine talks to the model only through Send.
func watchScript(path string, p *tea.Program) (func(), error) {
	if path == "" {
		slog.Warn("--watch ignored: playing the built-in script")
		return func() {}, nil
	}

	w, err := script.NewWatcher(path, script.DefaultDebounce, func(s *script.Script, err error) {
		p.Send(chat.ScriptReloadedMsg{Script: s, Err: err})
	})
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		w.Close()
		return nil, err
	}
	slog.Info("watching script", "path", path)

	return func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to stop script watcher", "error", err)
		}
	}, nil
}
