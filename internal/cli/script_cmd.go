// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/fraction-tui/internal/export"
	"github.com/jeranaias/fraction-tui/internal/script"
	"github.com/jeranaias/fraction-tui/internal/util"
)

// scriptFormats are written with script.Encode and load back as scripts.
var scriptFormats = map[string]script.Format{
	"yaml": script.FormatYAML,
	"yml":  script.FormatYAML,
	"json": script.FormatJSON,
	"toml": script.FormatTOML,
}

func newScriptCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Validate and convert script files",
	}
	cmd.AddCommand(
		newScriptValidateCommand(),
		newScriptExportCommand(root),
	)
	return cmd
}

// =============================================================================
// SCRIPT VALIDATE
// =============================================================================

func newScriptValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "validate PATH...",
		Short:   "Check that script files load",
		Example: "  fraction script validate conversation.yaml",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var failed error
			for _, path := range args {
				s, err := script.LoadFile(path)
				if err != nil {
					if failed == nil {
						failed = err
					}
					if len(args) > 1 {
						DisplayError(cmd.ErrOrStderr(), err)
					}
					continue
				}
				fmt.Fprintf(out, "%s %s: %d turns, %d chats, speakers: %s\n",
					SuccessStyle.Render("[OK]"), path, s.Len(), len(s.Chats()),
					strings.Join(s.Speakers(), ", "))
			}
			return failed
		},
	}
}

// =============================================================================
// SCRIPT EXPORT
// =============================================================================

type scriptExportOptions struct {
	format string
	output string
	title  string
}

func newScriptExportCommand(root *rootOptions) *cobra.Command {
	opts := &scriptExportOptions{}

	cmd := &cobra.Command{
		Use:   "export [PATH]",
		Short: "Convert a script to another format",
		Long: `Convert a script file, or the built-in conversation when PATH is
omitted, to another format.

yaml, json and toml output is a script file that fraction can play.
markdown, html and plain output is a readable document.`,
		Example: `  fraction script export --format toml --output conversation.toml
  fraction script export my.yaml --format html --output my.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := cmd.Flags().Set("script", args[0]); err != nil {
					return err
				}
			}
			return runScriptExport(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "yaml", "output format (yaml, json, toml, markdown, html, plain)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title for markdown and html")

	return cmd
}

func runScriptExport(cmd *cobra.Command, root *rootOptions, opts *scriptExportOptions) error {
	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}
	s, err := loadScript(cfg)
	if err != nil {
		return err
	}

	var content []byte
	if format, ok := scriptFormats[strings.ToLower(opts.format)]; ok {
		content, err = script.Encode(s, format)
	} else {
		var exporter export.Exporter
		exporter, err = export.ForFormat(opts.format, exportOptions(cfg))
		if err != nil {
			return NewUsageError("--format", opts.format, "want yaml, json, toml, markdown, html or plain")
		}
		title := opts.title
		if title == "" {
			title = cfg.UI.Title
		}
		content, err = exporter.Export(export.FromScript(s, title))
	}
	if err != nil {
		return err
	}

	if opts.output == "" || opts.output == "-" {
		_, err = cmd.OutOrStdout().Write(content)
		return err
	}
	if err := util.AtomicWriteFile(opts.output, content, 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s wrote %s\n", SuccessStyle.Render("[OK]"), opts.output)
	return nil
}
