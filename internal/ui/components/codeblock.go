// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the fraction TUI.
package components

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/fraction-tui/internal/ui/styles"
)

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// Highlighter renders code with one fixed chroma lexer and style. There is
// no per-block language detection. Results are cached by source text since
// committed blocks are re-rendered on every frame.
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter

	mu    sync.Mutex
	cache map[string]string
}

// NewHighlighter resolves the lexer and style by name, falling back to
// chroma's plain-text lexer and default style for unknown names.
func NewHighlighter(language, style string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Get("plaintext")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	// Get returns chroma's fallback style for unknown names.
	chromaStyle := chromaStyles.Get(style)

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	return &Highlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     chromaStyle,
		formatter: formatter,
		cache:     make(map[string]string),
	}
}

// Language returns the lexer name in use.
func (h *Highlighter) Language() string {
	return h.lexer.Config().Name
}

// Highlight returns code with ANSI colouring, or code unchanged on failure.
func (h *Highlighter) Highlight(code string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if out, ok := h.cache[code]; ok {
		return out
	}

	iterator, err := h.lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return code
	}

	out := strings.TrimRight(buf.String(), "\n")
	h.cache[code] = out
	return out
}

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock renders a committed code snippet with highlighting.
type CodeBlock struct {
	Code     string
	MaxWidth int

	highlighter *Highlighter
	theme       *styles.Theme
}

// NewCodeBlock creates a new code block.
func NewCodeBlock(theme *styles.Theme, highlighter *Highlighter, code string) CodeBlock {
	return CodeBlock{
		Code:        code,
		MaxWidth:    80,
		highlighter: highlighter,
		theme:       theme,
	}
}

// SetMaxWidth sets the maximum width for the code block.
func (c *CodeBlock) SetMaxWidth(width int) {
	c.MaxWidth = width
}

// Render renders the code block with a language badge.
func (c CodeBlock) Render() string {
	code := strings.TrimRight(c.Code, "\n")
	body := code
	badge := ""
	if c.highlighter != nil {
		body = c.highlighter.Highlight(code)
		badge = c.theme.CodeLangBadge.Render(strings.ToLower(c.highlighter.Language())) + "\n"
	}
	return c.theme.CodeBlock.MaxWidth(clampWidth(c.MaxWidth)).Render(badge + body)
}

// RenderPendingCode renders code that is being revealed: plain green
// preformatted text with no highlighting.
func RenderPendingCode(theme *styles.Theme, code string, maxWidth int) string {
	return theme.CodePending.MaxWidth(clampWidth(maxWidth)).Render(strings.TrimRight(code, "\n"))
}

func clampWidth(width int) int {
	if width < 20 {
		return 20
	}
	return width
}

// =============================================================================
// INLINE CODE RENDERER
// =============================================================================

// ParseInlineCode renders text with `code` spans in codeStyle and the rest
// in textStyle. Backticks stay in the output so the rendered width matches
// the raw text. An unclosed backtick is kept literally.
func ParseInlineCode(text string, textStyle, codeStyle lipgloss.Style) string {
	var result strings.Builder
	var plain strings.Builder
	var code strings.Builder
	var inCode bool

	flush := func() {
		if plain.Len() > 0 {
			result.WriteString(textStyle.Render(plain.String()))
			plain.Reset()
		}
	}

	for _, r := range text {
		switch {
		case r == '`' && inCode:
			result.WriteString(codeStyle.Render("`" + code.String() + "`"))
			code.Reset()
			inCode = false
		case r == '`':
			flush()
			inCode = true
		case inCode:
			code.WriteRune(r)
		default:
			plain.WriteRune(r)
		}
	}

	if inCode {
		plain.WriteString("`")
		plain.WriteString(code.String())
	}
	flush()

	return result.String()
}
