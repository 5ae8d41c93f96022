// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/fraction-tui/internal/config"
	"github.com/jeranaias/fraction-tui/internal/script"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// GLOBAL OPTIONS
// =============================================================================

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	scriptPath string
	seed       uint64
	minDelay   time.Duration
	maxDelay   time.Duration
	noMouse    bool
	watch      bool
	logFile    string
	logLevel   string
}

// =============================================================================
// COMMAND TREE
// =============================================================================

// NewRootCommand builds the fraction command tree. Running the root command
// without a subcommand starts the TUI.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "fraction",
		Short: "Scripted AI-to-AI conversation in the terminal",
		Long: `fraction plays a scripted conversation between two AI agents with a
typing animation, syntax-highlighted code blocks and a collapsible chat
sidebar.

Press ctrl+b (or click the >_ glyph) to toggle the sidebar, esc to close it,
y to copy the last code block, ? for help and q to quit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyColorProfile()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.fraction/config.toml)")
	flags.StringVarP(&opts.scriptPath, "script", "s", "", "script file to play (.yaml, .json or .toml)")
	flags.Uint64Var(&opts.seed, "seed", 0, "seed for typing delays (0 picks a random seed)")
	flags.DurationVar(&opts.minDelay, "min-delay", 0, "minimum delay between typed characters")
	flags.DurationVar(&opts.maxDelay, "max-delay", 0, "maximum delay between typed characters")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse support")
	root.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the script when the file changes")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return NewUsageError("flag", "", err.Error())
	})

	root.AddCommand(
		newPrintCommand(opts),
		newScriptCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)

	return root
}

// Execute runs the command tree with args and returns the process exit
// code. Errors are displayed on stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		DisplayError(stderr, err)
	}
	return GetExitCode(err)
}

// =============================================================================
// SHARED LOADING
// =============================================================================

// wholeMillis converts a delay flag to the millisecond resolution the
// config stores.
func wholeMillis(flag string, d time.Duration) (int, error) {
	if d%time.Millisecond != 0 {
		return 0, NewUsageError(flag, d.String(), "must be a whole number of milliseconds")
	}
	return int(d / time.Millisecond), nil
}

// loadConfig loads the config file, then applies command-line flags that
// were set explicitly. A broken default config file is reported as a
// warning and defaults are used; an explicit --config must load.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.configPath != "" {
		loaded, err := config.LoadFromPath(opts.configPath)
		if err != nil {
			return nil, &ConfigError{Path: opts.configPath, Err: err}
		}
		cfg = loaded
	} else {
		loaded, err := config.Load()
		if loaded == nil {
			return nil, &ConfigError{Err: err}
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %v (using defaults)\n", WarningStyle.Render("[WARN]"), err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("script") {
		cfg.Playback.Script = opts.scriptPath
	}
	if flags.Changed("seed") {
		cfg.Playback.Seed = opts.seed
	}
	if flags.Changed("min-delay") {
		ms, err := wholeMillis("--min-delay", opts.minDelay)
		if err != nil {
			return nil, err
		}
		cfg.Playback.MinDelayMs = ms
	}
	if flags.Changed("max-delay") {
		ms, err := wholeMillis("--max-delay", opts.maxDelay)
		if err != nil {
			return nil, err
		}
		cfg.Playback.MaxDelayMs = ms
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Lookup("no-mouse") != nil && flags.Changed("no-mouse") {
		cfg.UI.Mouse = !opts.noMouse
	}
	if flags.Lookup("watch") != nil && flags.Changed("watch") {
		cfg.Playback.Watch = opts.watch
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Path: opts.configPath, Err: err}
	}
	return cfg, nil
}

// loadScript loads the configured script file, or the built-in
// conversation when none is set.
func loadScript(cfg *config.Config) (*script.Script, error) {
	if cfg.Playback.Script == "" {
		return script.Default(), nil
	}
	s, err := script.LoadFile(cfg.Playback.Script)
	if err != nil {
		return nil, err
	}
	slog.Debug("script loaded", "path", cfg.Playback.Script, "turns", s.Len())
	return s, nil
}
