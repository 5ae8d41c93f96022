// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jeranaias/fraction-tui/internal/config"
	"github.com/jeranaias/fraction-tui/internal/export"
	"github.com/jeranaias/fraction-tui/internal/playback"
)

type printOptions struct {
	format  string
	animate bool
	title   string
}

func newPrintCommand(root *rootOptions) *cobra.Command {
	opts := &printOptions{}

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Write the conversation to stdout",
		Long: `Write the whole conversation to stdout without the TUI.

Markdown is rendered for the terminal when stdout is a TTY and written raw
when piped. --animate plays the conversation in plain text with the same
typing delays as the TUI.`,
		Example: `  fraction print
  fraction print --format json > conversation.json
  fraction print --animate --min-delay 5ms --max-delay 15ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "markdown", "output format (markdown, json, plain, html)")
	cmd.Flags().BoolVarP(&opts.animate, "animate", "a", false, "play the conversation with the typing animation")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title (defaults to the configured UI title)")

	return cmd
}

func runPrint(cmd *cobra.Command, root *rootOptions, opts *printOptions) error {
	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}
	s, err := loadScript(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if opts.animate {
		if cmd.Flags().Changed("format") && !isPlainFormat(opts.format) {
			return NewUsageError("--format", opts.format, "--animate only writes plain text")
		}
		engine := playback.New(s)
		pacer := playback.NewPacer(cfg.MinDelay(), cfg.MaxDelay(), cfg.Playback.Seed)
		w := newAnimatedWriter(out)
		err := playback.NewRunner(engine, pacer).Run(cmd.Context(), w.OnChange)
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(out)
			return nil
		}
		return err
	}

	exporter, err := export.ForFormat(opts.format, exportOptions(cfg))
	if err != nil {
		return err
	}
	title := opts.title
	if title == "" {
		title = cfg.UI.Title
	}
	content, err := exporter.Export(export.FromScript(s, title))
	if err != nil {
		return err
	}

	if _, ok := exporter.(*export.MarkdownExporter); ok && isTerminalWriter(out) {
		content = []byte(renderMarkdown(string(content), GetTerminalWidth()))
	}
	_, err = out.Write(content)
	return err
}

func isPlainFormat(format string) bool {
	switch strings.ToLower(format) {
	case "plain", "text", "txt":
		return true
	}
	return false
}

func exportOptions(cfg *config.Config) *export.Options {
	return &export.Options{
		CodeLanguage: cfg.UI.CodeLanguage,
		CodeStyle:    cfg.UI.CodeStyle,
		IncludeChats: true,
	}
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders markdown for terminal display. Returns the
// original content if rendering fails.
func renderMarkdown(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// =============================================================================
// ANIMATED OUTPUT
// =============================================================================

// animatedWriter prints engine changes as they happen. The finished output
// is identical to the plain exporter's.
type animatedWriter struct {
	w         io.Writer
	labelled  bool
	written   int
	codeShown bool
}

func newAnimatedWriter(w io.Writer) *animatedWriter {
	return &animatedWriter{w: w}
}

// OnChange is a playback.ChangeFunc.
func (a *animatedWriter) OnChange(change playback.Change, snap playback.Snapshot) {
	switch change.Kind {
	case playback.ChangeChar:
		active := snap.Active
		if active == nil {
			return
		}
		if !a.labelled {
			fmt.Fprintf(a.w, "%s: ", active.Speaker)
			a.labelled = true
		}
		io.WriteString(a.w, active.Prefix[a.written:])
		a.written = len(active.Prefix)

	case playback.ChangeCode:
		active := snap.Active
		if active == nil {
			return
		}
		if !a.labelled {
			fmt.Fprintf(a.w, "%s:", active.Speaker)
			a.labelled = true
		}
		io.WriteString(a.w, "\n")
		io.WriteString(a.w, export.IndentCode(active.Code))
		a.codeShown = true

	case playback.ChangeCommit:
		if !a.codeShown {
			io.WriteString(a.w, "\n")
		}
		if !snap.Done() {
			io.WriteString(a.w, "\n")
		}
		*a = animatedWriter{w: a.w}
	}
}
