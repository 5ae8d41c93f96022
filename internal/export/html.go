// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports documents to a standalone HTML page styled like the
// terminal view. Code is highlighted with chroma using inline styles.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	return &HTMLExporter{options: opts.orDefault()}
}

// Export converts a document to HTML.
func (e *HTMLExporter) Export(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}

	title := doc.Title
	if title == "" {
		title = "fraction-ai-terminal"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(title)))
	sb.WriteString("    <meta name=\"generator\" content=\"fraction\">\n")
	sb.WriteString(htmlCSS)
	sb.WriteString("</head>\n")
	sb.WriteString("<body>\n")
	sb.WriteString("    <div class=\"terminal\">\n")
	sb.WriteString(fmt.Sprintf("        <header>&gt;_ %s</header>\n", html.EscapeString(title)))
	sb.WriteString("        <main>\n")

	for _, turn := range doc.Turns {
		rendered, err := e.renderTurn(turn.Speaker, turn.Message, turn.Code)
		if err != nil {
			return nil, err
		}
		sb.WriteString(rendered)
	}

	sb.WriteString("        </main>\n")

	if e.options.IncludeChats && len(doc.Chats) > 0 {
		sb.WriteString("        <nav>\n            <h2>Chats</h2>\n            <ul>\n")
		for _, chat := range doc.Chats {
			sb.WriteString(fmt.Sprintf("                <li>%s</li>\n", html.EscapeString(chat.Name)))
		}
		sb.WriteString("            </ul>\n        </nav>\n")
	}

	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderTurn(speaker, message, code string) (string, error) {
	var sb strings.Builder

	sb.WriteString("            <div class=\"turn\">\n")
	sb.WriteString(fmt.Sprintf("                <span class=\"%s\">%s:</span> <span>%s</span>\n",
		speakerClass(speaker), html.EscapeString(speaker), html.EscapeString(message)))
	if code != "" {
		highlighted, err := e.highlight(code)
		if err != nil {
			return "", err
		}
		sb.WriteString(highlighted)
	}
	sb.WriteString("            </div>\n")

	return sb.String(), nil
}

func (e *HTMLExporter) highlight(code string) (string, error) {
	lexer := lexers.Get(e.options.CodeLanguage)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := chromaStyles.Get(e.options.CodeStyle)
	if style == nil {
		style = chromaStyles.Fallback
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise code: %w", err)
	}

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(2))
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("format code: %w", err)
	}
	return buf.String() + "\n", nil
}

func speakerClass(speaker string) string {
	switch speaker {
	case "AI Agent 1":
		return "speaker agent-one"
	case "AI Agent 2":
		return "speaker agent-two"
	default:
		return "speaker"
	}
}

const htmlCSS = `    <style>
        body { background: #1c1917; color: #e7e5e4; font-family: ui-monospace, monospace; }
        .terminal { max-width: 80rem; margin: 2rem auto; border-radius: 0.5rem; overflow: hidden; background: rgba(41, 37, 36, 0.7); }
        header { background: #1c1917; color: #16a34a; padding: 0.5rem 1rem; font-size: 0.875rem; }
        main { padding: 1rem; font-size: 0.875rem; }
        .turn { margin-bottom: 1rem; }
        .speaker { font-weight: bold; }
        .agent-one { color: #60a5fa; }
        .agent-two { color: #c084fc; }
        pre { border-radius: 0.5rem; padding: 0.5rem; margin-top: 0.5rem; }
        nav { padding: 1rem; border-top: 1px solid #57534e; }
        nav li { list-style: none; margin-bottom: 0.5rem; padding: 0.5rem 1rem; background: #292524; border-radius: 0.5rem; }
    </style>
`
