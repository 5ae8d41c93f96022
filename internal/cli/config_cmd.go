// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/fraction-tui/internal/config"
)

func newConfigCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and edit configuration",
		Long: `Show and edit the fraction configuration file.

Settings are read from ~/.fraction/config.toml (or config.json), then
FRACTION_* environment variables, then command-line flags. Set
FRACTION_HOME to use another directory.`,
	}
	cmd.AddCommand(
		newConfigShowCommand(root),
		newConfigInitCommand(root),
		newConfigPathCommand(root),
		newConfigGetCommand(root),
		newConfigSetCommand(root),
	)
	return cmd
}

// configFilePath is the file config init and config set write to.
func configFilePath(root *rootOptions) (string, error) {
	if root.configPath != "" {
		return root.configPath, nil
	}
	return config.ConfigPathTOML()
}

func newConfigShowCommand(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				fmt.Fprintln(out, cfg.String())
				return nil
			}

			fmt.Fprintln(out, TitleStyle.Render("fraction configuration"))
			for _, key := range config.Keys() {
				value, err := cfg.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s%s\n", RenderLabel(key), ValueStyle.Render(fmt.Sprint(value)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newConfigInitCommand(root *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath(root)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return NewUsageError("config", path, "file exists (use --force to overwrite)")
			}
			if err := config.SaveToPath(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", SuccessStyle.Render("[OK]"), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigPathCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath(root)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigGetCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "get KEY",
		Short:   "Print one setting",
		Example: "  fraction config get playback.max_delay_ms",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return NewUsageError("key", args[0], err.Error())
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "set KEY VALUE",
		Short:   "Change one setting in the config file",
		Example: "  fraction config set ui.code_style dracula",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath(root)
			if err != nil {
				return err
			}

			cfg := config.Default()
			if _, statErr := os.Stat(path); statErr == nil {
				loaded, err := config.LoadFileOnly(path)
				if err != nil {
					return &ConfigError{Path: path, Err: err}
				}
				cfg = loaded
			} else if !errors.Is(statErr, fs.ErrNotExist) {
				return statErr
			}

			if err := cfg.Set(args[0], args[1]); err != nil {
				return NewUsageError("key", args[0], err.Error())
			}
			if err := cfg.Validate(); err != nil {
				return &ConfigError{Path: path, Err: err}
			}
			if err := config.SaveToPath(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", SuccessStyle.Render("[OK]"), args[0], args[1])
			return nil
		},
	}
}
