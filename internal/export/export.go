// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders scripts and played transcripts as documents.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jeranaias/fraction-tui/internal/playback"
	"github.com/jeranaias/fraction-tui/internal/script"
	"github.com/jeranaias/fraction-tui/internal/util"
)

// ErrUnknownFormat is returned by ForFormat for unsupported format names.
var ErrUnknownFormat = errors.New("unknown export format")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for document exporters.
type Exporter interface {
	// Export converts a document to the target format and returns the content.
	Export(doc *Document) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is the exportable form of a conversation.
type Document struct {
	Title string        `json:"title"`
	Turns []script.Turn `json:"turns"`
	Chats []script.Chat `json:"chats,omitempty"`
}

// FromScript builds a document holding every turn of s.
func FromScript(s *script.Script, title string) *Document {
	return &Document{
		Title: title,
		Turns: s.Turns(),
		Chats: s.Chats(),
	}
}

// FromTranscript builds a document holding only committed entries.
func FromTranscript(entries []playback.Entry, title string) *Document {
	turns := make([]script.Turn, 0, len(entries))
	for _, e := range entries {
		turns = append(turns, e.Turn)
	}
	return &Document{Title: title, Turns: turns}
}

func (d *Document) validate() error {
	if d == nil {
		return errors.New("document is nil")
	}
	return nil
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// CodeLanguage labels code fences and selects the HTML lexer.
	// Default: "javascript"
	CodeLanguage string

	// CodeStyle is the chroma style for HTML export.
	// Default: "onedark"
	CodeStyle string

	// IncludeChats appends the sidebar chat list.
	IncludeChats bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		CodeLanguage: "javascript",
		CodeStyle:    "onedark",
		IncludeChats: true,
	}
}

func (o *Options) orDefault() *Options {
	if o == nil {
		return DefaultOptions()
	}
	out := *o
	if out.CodeLanguage == "" {
		out.CodeLanguage = "javascript"
	}
	if out.CodeStyle == "" {
		out.CodeStyle = "onedark"
	}
	return &out
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// Formats lists the names accepted by ForFormat.
var Formats = []string{"markdown", "json", "plain", "html"}

// ForFormat returns the exporter for a format name.
func ForFormat(name string, opts *Options) (Exporter, error) {
	switch strings.ToLower(name) {
	case "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	case "plain", "text", "txt":
		return NewPlainExporter(opts), nil
	case "html", "htm":
		return NewHTMLExporter(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, name, strings.Join(Formats, ", "))
	}
}

// ExportToFile exports a document and writes it atomically to path. An
// empty path derives a file name from the title in the current directory.
// Returns the path written.
func ExportToFile(doc *Document, exporter Exporter, path string) (string, error) {
	content, err := exporter.Export(doc)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if path == "" {
		path = sanitizeFilename(doc.Title) + exporter.FileExtension()
	}
	path = filepath.Clean(path)

	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	const maxLen = 50
	runes := []rune(strings.TrimSpace(s))
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	result := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			result = append(result, '-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			result = append(result, '_')
		case r < 32 || r == 127:
			result = append(result, '-')
		default:
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "conversation"
	}
	return string(result)
}
