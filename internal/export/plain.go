// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"
)

// =============================================================================
// PLAIN TEXT EXPORTER
// =============================================================================

// PlainExporter writes the transcript the way the terminal shows it, without
// styling: "Speaker: message" with code indented underneath.
type PlainExporter struct {
	options *Options
}

// NewPlainExporter creates a new plain text exporter.
func NewPlainExporter(opts *Options) *PlainExporter {
	return &PlainExporter{options: opts.orDefault()}
}

// Export converts a document to plain text.
func (e *PlainExporter) Export(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	for i, turn := range doc.Turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		WriteTurn(&sb, turn.Speaker, turn.Message, turn.Code)
	}
	return []byte(sb.String()), nil
}

// WriteTurn writes one turn in plain layout.
func WriteTurn(sb *strings.Builder, speaker, message, code string) {
	sb.WriteString(speaker)
	sb.WriteString(":")
	if message != "" {
		sb.WriteString(" ")
		sb.WriteString(message)
	}
	sb.WriteString("\n")
	if code != "" {
		sb.WriteString(IndentCode(code))
	}
}

// IndentCode indents every line of code by four spaces.
func IndentCode(code string) string {
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		if line == "" {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// FileExtension returns the file extension for plain text.
func (e *PlainExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for plain text.
func (e *PlainExporter) MimeType() string {
	return "text/plain"
}
