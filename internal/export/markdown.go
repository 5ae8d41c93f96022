// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports documents to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	return &MarkdownExporter{options: opts.orDefault()}
}

// Export converts a document to Markdown.
func (e *MarkdownExporter) Export(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder

	if doc.Title != "" {
		sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(doc.Title)))
	}

	for i, turn := range doc.Turns {
		if turn.Message != "" {
			sb.WriteString(fmt.Sprintf("**%s:** %s\n", escapeMarkdown(turn.Speaker), turn.Message))
		} else {
			sb.WriteString(fmt.Sprintf("**%s:**\n", escapeMarkdown(turn.Speaker)))
		}
		if turn.HasCode() {
			sb.WriteString("\n")
			sb.WriteString(fence(turn.Code, e.options.CodeLanguage))
		}
		if i < len(doc.Turns)-1 {
			sb.WriteString("\n")
		}
	}

	if e.options.IncludeChats && len(doc.Chats) > 0 {
		sb.WriteString("\n## Chats\n\n")
		for _, chat := range doc.Chats {
			sb.WriteString(fmt.Sprintf("- %s\n", escapeMarkdown(chat.Name)))
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// fence wraps code in a fenced block long enough to contain any backtick
// runs inside the code.
func fence(code, language string) string {
	ticks := "```"
	for strings.Contains(code, ticks) {
		ticks += "`"
	}
	return ticks + language + "\n" + strings.TrimRight(code, "\n") + "\n" + ticks + "\n"
}

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}
