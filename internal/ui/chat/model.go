// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the playback view of the fraction TUI.
package chat

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/fraction-tui/internal/config"
	"github.com/jeranaias/fraction-tui/internal/playback"
	"github.com/jeranaias/fraction-tui/internal/script"
	"github.com/jeranaias/fraction-tui/internal/ui/components"
	"github.com/jeranaias/fraction-tui/internal/ui/styles"
)

// =============================================================================
// MODEL OPTIONS
// =============================================================================

// Options configures a Model. Zero values fall back to defaults.
type Options struct {
	// Script to play; nil plays the built-in conversation
	Script *script.Script
	// Config supplies UI settings; nil uses config.Default()
	Config *config.Config
	// Pacer paces typing steps; nil builds one from Config
	Pacer *playback.Pacer
	// Logger receives structured events; nil uses slog.Default()
	Logger *slog.Logger
	// Now is the clock used for animations
	Now func() time.Time
	// Clipboard writes text to the system clipboard
	Clipboard func(string) error
}

// =============================================================================
// MODEL DEFINITION
// =============================================================================

// scrollState is an in-flight smooth scroll toward the transcript bottom.
type scrollState struct {
	generation uint64
	active     bool
	from       int
	to         int
	start      time.Time
}

// Model is the Bubble Tea model that plays a script.
type Model struct {
	cfg    *config.Config
	theme  *styles.Theme
	keys   KeyMap
	help   help.Model
	logger *slog.Logger

	// Playback
	engine *playback.Engine
	epoch  uint64
	pacer  *playback.Pacer

	// Components
	header     *components.Header
	sidebar    *components.Sidebar
	transcript *components.Transcript
	viewport   viewport.Model
	scroll     scrollState

	// Layout
	width  int
	height int
	ready  bool

	// Cursor blink
	cursorVisible bool
	blinking      bool

	// Status line
	status    string
	statusErr bool
	quitting  bool

	now       func() time.Time
	clipboard func(string) error
}

// New creates a playback model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	s := opts.Script
	if s == nil {
		s = script.Default()
	}
	pacer := opts.Pacer
	if pacer == nil {
		pacer = playback.NewPacer(cfg.MinDelay(), cfg.MaxDelay(), cfg.Playback.Seed)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	theme := styles.NewTheme(cfg.UI.Theme)
	engine := playback.New(s)

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = cfg.UI.Mouse

	logger.Info("playback starting", "turns", s.Len(), "chats", len(s.Chats()))

	return Model{
		cfg:           cfg,
		theme:         theme,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		logger:        logger,
		engine:        engine,
		pacer:         pacer,
		header:        components.NewHeader(theme, cfg.UI.Title),
		sidebar:       components.NewSidebar(theme, s.Chats(), cfg.UI.SidebarWidth, cfg.SidebarAnimation()),
		transcript:    components.NewTranscript(theme, components.NewHighlighter(cfg.UI.CodeLanguage, cfg.UI.CodeStyle)),
		viewport:      vp,
		cursorVisible: true,
		blinking:      !engine.Done(),
		now:           now,
		clipboard:     copyFn,
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init schedules the first step and starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	var blink tea.Cmd
	if m.blinking {
		blink = m.blinkCmd()
	}
	return tea.Batch(m.stepCmd(), blink)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TypeTickMsg:
		return m.handleTypeTick(msg)

	case SidebarTickMsg:
		return m.handleSidebarTick(msg)

	case ScrollTickMsg:
		return m.handleScrollTick(msg)

	case BlinkMsg:
		return m.handleBlink()

	case ScriptReloadedMsg:
		return m.handleReload(msg)

	case CopyResultMsg:
		if msg.Err != nil {
			m.logger.Warn("clipboard copy failed", "error", msg.Err)
			m.setStatus("copy failed: "+msg.Err.Error(), true)
		} else {
			m.setStatus(formatCopied(msg.Lines), false)
		}
		return m, nil
	}

	return m, nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Engine returns the engine currently driving playback.
func (m Model) Engine() *playback.Engine {
	return m.engine
}

// Sidebar returns the sidebar component.
func (m Model) Sidebar() *components.Sidebar {
	return m.sidebar
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.header.SetWidth(msg.Width)
	m.theme.SetSize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	m.layout()
	m.refresh()
	m.scroll.active = false
	m.viewport.GotoBottom()
	return m, nil
}

// layout sizes the viewport around the header, sidebar and footer.
func (m *Model) layout() {
	bodyHeight := m.height - components.HeaderHeight - m.footerHeight()
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	bodyWidth := m.width - m.sidebar.Width()
	if bodyWidth < 1 {
		bodyWidth = 1
	}
	m.viewport.Width = bodyWidth
	m.viewport.Height = bodyHeight
}

// refresh re-renders the transcript into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	inner := m.viewport.Width - m.theme.Transcript.GetHorizontalFrameSize()
	content := m.transcript.Render(m.engine.Snapshot(), inner, m.cursorVisible)
	m.viewport.SetContent(m.theme.Transcript.Render(content))
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// =============================================================================
// KEYS AND MOUSE
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.Stop()
		m.quitting = true
		m.logger.Info("playback stopped by user", "index", m.engine.Cursor().Index)
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleSidebar):
		cmd := m.toggleSidebar()
		return m, cmd

	case key.Matches(msg, m.keys.CloseSidebar):
		cmd := m.closeSidebar()
		return m, cmd

	case key.Matches(msg, m.keys.Copy):
		cmd := m.copyLastCode()
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.scroll.active = false
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.scroll.active = false
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scroll.active = false
		m.viewport.ViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.scroll.active = false
		m.viewport.ViewDown()
	case key.Matches(msg, m.keys.Home):
		m.scroll.active = false
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.End):
		m.scroll.active = false
		m.viewport.GotoBottom()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.cfg.UI.Mouse {
		return m, nil
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if m.header.GlyphHit(msg.X, msg.Y) {
			cmd := m.toggleSidebar()
			return m, cmd
		}
		if msg.Y >= components.HeaderHeight && msg.X < m.sidebar.Width() {
			if m.sidebar.CloseHit(msg.X, msg.Y-components.HeaderHeight) {
				cmd := m.closeSidebar()
				return m, cmd
			}
			// Chat entries are inert.
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		m.scroll.active = false
	}
	return m, cmd
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m *Model) toggleSidebar() tea.Cmd {
	animate := m.sidebar.Toggle(m.now())
	m.logger.Debug("sidebar toggled", "open", m.sidebar.Open())
	return m.afterSidebarChange(animate)
}

func (m *Model) closeSidebar() tea.Cmd {
	if !m.sidebar.Open() {
		return nil
	}
	animate := m.sidebar.Close(m.now())
	m.logger.Debug("sidebar closed")
	return m.afterSidebarChange(animate)
}

func (m *Model) afterSidebarChange(animate bool) tea.Cmd {
	m.relayoutKeepingBottom()
	if !animate {
		return nil
	}
	return sidebarTickCmd(m.sidebar.Generation())
}

func (m Model) handleSidebarTick(msg SidebarTickMsg) (tea.Model, tea.Cmd) {
	if msg.Generation != m.sidebar.Generation() {
		return m, nil
	}
	more := m.sidebar.Tick(msg.Generation, msg.Time)
	m.relayoutKeepingBottom()
	if !more {
		return m, nil
	}
	return m, sidebarTickCmd(msg.Generation)
}

// relayoutKeepingBottom resizes the viewport and stays pinned to the bottom
// when it was already there.
func (m *Model) relayoutKeepingBottom() {
	atBottom := m.viewport.AtBottom()
	m.layout()
	m.refresh()
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// CLIPBOARD
// =============================================================================

// lastCode returns the code of the most recently committed entry that has any.
func (m Model) lastCode() (string, bool) {
	entries := m.engine.Transcript()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].HasCode() {
			return entries[i].Code, true
		}
	}
	return "", false
}

func (m *Model) copyLastCode() tea.Cmd {
	code, ok := m.lastCode()
	if !ok {
		m.setStatus("no code to copy yet", false)
		return nil
	}
	return copyCmd(m.clipboard, code)
}
