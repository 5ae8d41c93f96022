// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/fraction-tui/internal/config"
	"github.com/jeranaias/fraction-tui/internal/export"
	"github.com/jeranaias/fraction-tui/internal/script"
)

func TestMain(m *testing.M) {
	ForceColorsEnabled(false)
	os.Exit(m.Run())
}

// =============================================================================
// HELPERS
// =============================================================================

type result struct {
	stdout string
	stderr string
	code   int
}

// run executes the command tree against an isolated FRACTION_HOME.
func run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("FRACTION_HOME", home)
	for _, name := range []string{
		"FRACTION_SCRIPT", "FRACTION_MIN_DELAY_MS", "FRACTION_MAX_DELAY_MS",
		"FRACTION_CODE_STYLE", "FRACTION_NO_MOUSE", "FRACTION_LOG_LEVEL", "FRACTION_LOG_FILE",
	} {
		t.Setenv(name, "")
	}
	return home
}

const smallScript = `turns:
  - speaker: AI Agent 1
    message: "Show me a closure"
  - speaker: AI Agent 2
    message: "Here:"
    code: |
      const add = (a) => (b) => a + b;
  - speaker: AI Agent 1
    code: "add(1)(2);"
chats:
  - id: 1
    name: Closures
`

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conversation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// =============================================================================
// VERSION
// =============================================================================

func TestVersion(t *testing.T) {
	isolate(t)
	res := run(t, "version")
	assert.Equal(t, ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "fraction "+Version)
	assert.Contains(t, res.stdout, "commit:")
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	isolate(t)
	res := run(t, "print", "--bogus")
	assert.Equal(t, ExitUsageError, res.code)
	assert.Contains(t, res.stderr, "[ERROR]")
}

// =============================================================================
// PRINT
// =============================================================================

const smallPlain = "AI Agent 1: Show me a closure\n" +
	"\n" +
	"AI Agent 2: Here:\n" +
	"    const add = (a) => (b) => a + b;\n" +
	"\n" +
	"AI Agent 1:\n" +
	"    add(1)(2);\n"

func TestPrint_Plain(t *testing.T) {
	isolate(t)
	path := writeScript(t, smallScript)

	res := run(t, "print", "--script", path, "--format", "plain")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, smallPlain, res.stdout)
}

func TestPrint_MarkdownDefaultScript(t *testing.T) {
	isolate(t)

	res := run(t, "print")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "# fraction-ai-terminal\n"))
	assert.Contains(t, res.stdout, "**AI Agent 1:**")
	assert.Contains(t, res.stdout, "**AI Agent 2:**")
	assert.Contains(t, res.stdout, "```javascript\n")
	assert.Contains(t, res.stdout, "## Chats")
}

func TestPrint_JSONLoadsBack(t *testing.T) {
	isolate(t)
	path := writeScript(t, smallScript)

	res := run(t, "print", "-s", path, "-f", "json")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	s, err := script.Parse([]byte(res.stdout), script.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}

func TestPrint_Animate(t *testing.T) {
	isolate(t)
	path := writeScript(t, smallScript)

	res := run(t, "print", "--animate", "-s", path, "--min-delay", "0", "--max-delay", "0", "--seed", "7")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, smallPlain, res.stdout)
}

func TestPrint_AnimateMatchesPlainExport(t *testing.T) {
	isolate(t)

	res := run(t, "print", "--animate", "--min-delay", "0", "--max-delay", "0")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	want, err := export.NewPlainExporter(nil).Export(export.FromScript(script.Default(), ""))
	require.NoError(t, err)
	assert.Equal(t, string(want), res.stdout)
}

func TestPrint_AnimateRejectsDocumentFormats(t *testing.T) {
	isolate(t)
	res := run(t, "print", "--animate", "--format", "html")
	assert.Equal(t, ExitUsageError, res.code)
}

func TestPrint_UnknownFormat(t *testing.T) {
	isolate(t)
	res := run(t, "print", "--format", "pdf")
	assert.Equal(t, ExitUsageError, res.code)
	assert.Contains(t, res.stderr, "unknown export format")
}

func TestPrint_MissingScript(t *testing.T) {
	isolate(t)
	res := run(t, "print", "--script", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, ExitNotFoundError, res.code)
}

func TestPrint_ScriptFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("FRACTION_SCRIPT", writeScript(t, smallScript))

	res := run(t, "print", "--format", "plain")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, smallPlain, res.stdout)
}

// =============================================================================
// SCRIPT
// =============================================================================

func TestScriptValidate(t *testing.T) {
	isolate(t)
	path := writeScript(t, smallScript)

	res := run(t, "script", "validate", path)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "[OK]")
	assert.Contains(t, res.stdout, "3 turns, 1 chats")
	assert.Contains(t, res.stdout, "AI Agent 1, AI Agent 2")
}

func TestScriptValidate_Invalid(t *testing.T) {
	isolate(t)
	path := writeScript(t, "turns:\n  - speaker: \"\"\n  - speaker: A\n")

	res := run(t, "script", "validate", path)
	assert.Equal(t, ExitScriptError, res.code)
	assert.Contains(t, res.stderr, "[ERROR]")
	assert.Contains(t, res.stderr, "3 validation errors")
	assert.Contains(t, res.stderr, "turn 1: message")
}

func TestScriptValidate_UnsupportedExtension(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "conversation.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	res := run(t, "script", "validate", path)
	assert.Equal(t, ExitUsageError, res.code)
}

func TestScriptExport_ToFileRoundTrips(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "nested", "conversation.toml")

	res := run(t, "script", "export", "--format", "toml", "--output", out)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "wrote "+out)

	s, err := script.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, script.Default().Turns(), s.Turns())
	assert.Equal(t, script.Default().Chats(), s.Chats())
}

func TestScriptExport_PathArgument(t *testing.T) {
	isolate(t)
	path := writeScript(t, smallScript)

	res := run(t, "script", "export", path, "--format", "plain")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, smallPlain, res.stdout)
}

func TestScriptExport_HTML(t *testing.T) {
	isolate(t)
	path := writeScript(t, smallScript)

	res := run(t, "script", "export", path, "-f", "html", "--title", "Closures & more")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "<title>Closures &amp; more</title>")
}

func TestScriptExport_BadFormat(t *testing.T) {
	isolate(t)
	res := run(t, "script", "export", "--format", "docx")
	assert.Equal(t, ExitUsageError, res.code)
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfigPath(t *testing.T) {
	home := isolate(t)
	res := run(t, "config", "path")
	require.Equal(t, ExitSuccess, res.code)
	assert.Equal(t, filepath.Join(home, "config.toml")+"\n", res.stdout)
}

func TestConfigInitSetGet(t *testing.T) {
	home := isolate(t)

	res := run(t, "config", "init")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	_, err := os.Stat(filepath.Join(home, "config.toml"))
	require.NoError(t, err)

	res = run(t, "config", "init")
	assert.Equal(t, ExitUsageError, res.code)

	res = run(t, "config", "set", "playback.max_delay_ms", "40")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	res = run(t, "config", "get", "playback.max_delay_ms")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "40\n", res.stdout)

	cfg, err := config.LoadFromPath(filepath.Join(home, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Playback.MaxDelayMs)
}

func TestConfigInitSetGet_JSON(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "cfg.json")

	res := run(t, "--config", path, "config", "init")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	res = run(t, "--config", path, "config", "set", "ui.title", "json demo")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"), string(data))

	res = run(t, "--config", path, "config", "get", "ui.title")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "json demo\n", res.stdout)

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "json demo", cfg.UI.Title)
}

func TestConfigSet_DoesNotPersistEnvironment(t *testing.T) {
	home := isolate(t)

	res := run(t, "config", "init")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	logPath := filepath.Join(t.TempDir(), "session.log")
	t.Setenv("FRACTION_LOG_FILE", logPath)
	t.Setenv("FRACTION_CODE_STYLE", "github")

	res = run(t, "config", "set", "ui.title", "demo")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	data, err := os.ReadFile(filepath.Join(home, "config.toml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), logPath)
	assert.NotContains(t, string(data), "github")
	assert.Contains(t, string(data), "demo")
}

func TestConfigSet_Rejects(t *testing.T) {
	isolate(t)

	res := run(t, "config", "set", "playback.nope", "1")
	assert.Equal(t, ExitUsageError, res.code)

	res = run(t, "config", "set", "playback.max_delay_ms", "abc")
	assert.Equal(t, ExitUsageError, res.code)

	res = run(t, "config", "set", "playback.max_delay_ms", "1")
	assert.Equal(t, ExitConfigError, res.code)
	assert.Contains(t, res.stderr, "max_delay_ms")
}

func TestConfigShow(t *testing.T) {
	isolate(t)

	res := run(t, "config", "show")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	for _, key := range config.Keys() {
		assert.Contains(t, res.stdout, key)
	}

	res = run(t, "config", "show", "--json", "--min-delay", "5ms", "--max-delay", "50ms")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"min_delay_ms": 5`)
	assert.Contains(t, res.stdout, `"max_delay_ms": 50`)
}

func TestExplicitConfigMustLoad(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is not toml ]]"), 0600))

	res := run(t, "print", "--config", path)
	assert.Equal(t, ExitConfigError, res.code)
}

func TestBrokenDefaultConfigWarns(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte("[[[ nope"), 0600))

	res := run(t, "print", "--format", "plain")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "[WARN]")
	assert.NotEmpty(t, res.stdout)
}

func TestInvalidFlagValuesFailValidation(t *testing.T) {
	isolate(t)
	res := run(t, "print", "--min-delay", "50ms", "--max-delay", "10ms")
	assert.Equal(t, ExitConfigError, res.code)
}

func TestDelayFlagsRejectSubMillisecond(t *testing.T) {
	isolate(t)

	res := run(t, "print", "--min-delay", "500us")
	assert.Equal(t, ExitUsageError, res.code)
	assert.Contains(t, res.stderr, "--min-delay")

	res = run(t, "print", "--max-delay", "20.5ms")
	assert.Equal(t, ExitUsageError, res.code)
	assert.Contains(t, res.stderr, "--max-delay")

	res = run(t, "print", "--format", "plain", "--min-delay", "1ms", "--max-delay", "2ms")
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
}

// =============================================================================
// EXIT CODES
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"usage", NewUsageError("--format", "x", "bad"), ExitUsageError},
		{"export format", fmt.Errorf("wrap: %w", export.ErrUnknownFormat), ExitUsageError},
		{"script format", script.ErrUnsupportedFormat, ExitUsageError},
		{"config", &ConfigError{Err: errors.New("bad")}, ExitConfigError},
		{"config validation", config.ValidateErrors{{Field: "x", Message: "y"}}, ExitConfigError},
		{"script validation", fmt.Errorf("script: %w", script.ValidationErrors{{Index: 0, Field: "speaker", Err: script.ErrNoSpeaker}}), ExitScriptError},
		{"not found", fmt.Errorf("read: %w", os.ErrNotExist), ExitNotFoundError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}
