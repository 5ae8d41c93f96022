// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for fraction commands.
//
// Commands always return errors through RunE; Execute displays them once
// and maps them to an exit code.

package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/jeranaias/fraction-tui/internal/config"
	"github.com/jeranaias/fraction-tui/internal/export"
	"github.com/jeranaias/fraction-tui/internal/script"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates an unreadable or invalid config file
	ExitConfigError = 3
	// ExitScriptError indicates an invalid script file
	ExitScriptError = 4
	// ExitNotFoundError indicates a file was not found
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports invalid flags or arguments.
type UsageError struct {
	Flag   string
	Value  string
	Reason string
}

func (e *UsageError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Flag, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Flag, e.Reason)
}

// NewUsageError creates a usage error.
func NewUsageError(flag, value, reason string) error {
	return &UsageError{Flag: flag, Value: value, Reason: reason}
}

// ConfigError wraps a failure to load or validate configuration.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError writes err to w in a consistent format. Script validation
// errors are listed one per line.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}

	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), headline(err))

	var verrs script.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 1 {
		for _, v := range verrs {
			fmt.Fprintf(w, "  - %s\n", v.Error())
		}
	}
}

// headline is the first line of an error report.
func headline(err error) string {
	var verrs script.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 1 {
		msg := err.Error()
		if i := strings.Index(msg, verrs.Error()); i > 0 {
			return strings.TrimRight(msg[:i], ": ") + fmt.Sprintf(": %d validation errors", len(verrs))
		}
		return fmt.Sprintf("%d validation errors", len(verrs))
	}
	return err.Error()
}

// GetExitCode determines the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) || errors.Is(err, export.ErrUnknownFormat) ||
		errors.Is(err, script.ErrUnsupportedFormat) {
		return ExitUsageError
	}

	var configErr *ConfigError
	var cfgValidation config.ValidateErrors
	if errors.As(err, &configErr) || errors.As(err, &cfgValidation) {
		return ExitConfigError
	}

	var scriptErr *script.ValidationError
	var scriptErrs script.ValidationErrors
	if errors.As(err, &scriptErr) || errors.As(err, &scriptErrs) {
		return ExitScriptError
	}

	if errors.Is(err, fs.ErrNotExist) {
		return ExitNotFoundError
	}

	return ExitGeneralError
}
