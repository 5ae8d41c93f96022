// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package script

import (
	"errors"
	"fmt"
	"strings"
)

// Well-known speakers. Any other label is valid and gets the default
// treatment when rendered.
const (
	AgentOne = "AI Agent 1"
	AgentTwo = "AI Agent 2"
)

var (
	// ErrEmptyTurn is returned for a turn with neither message nor code.
	ErrEmptyTurn = errors.New("turn has neither message nor code")
	// ErrNoSpeaker is returned for a turn with a blank speaker label.
	ErrNoSpeaker = errors.New("turn has no speaker")
)

// =============================================================================
// TYPES
// =============================================================================

// Turn is one scripted exchange unit.
type Turn struct {
	Speaker string `yaml:"speaker" json:"speaker" toml:"speaker"`
	Message string `yaml:"message,omitempty" json:"message,omitempty" toml:"message,omitempty"`
	Code    string `yaml:"code,omitempty" json:"code,omitempty" toml:"code,omitempty"`
}

// HasCode reports whether the turn carries a code block.
func (t Turn) HasCode() bool {
	return t.Code != ""
}

// Chat is a decorative sidebar entry.
type Chat struct {
	ID   int    `yaml:"id" json:"id" toml:"id"`
	Name string `yaml:"name" json:"name" toml:"name"`
}

// Script is the immutable store of turns and sidebar chats.
type Script struct {
	turns []Turn
	chats []Chat
}

// =============================================================================
// VALIDATION ERRORS
// =============================================================================

// ValidationError describes one invalid turn.
type ValidationError struct {
	Index int
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("turn %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every problem found in a script.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// New validates turns and builds a Script. The slices are copied, so later
// changes by the caller never reach the script.
func New(turns []Turn, chats []Chat) (*Script, error) {
	var errs ValidationErrors
	for i, t := range turns {
		if strings.TrimSpace(t.Speaker) == "" {
			errs = append(errs, &ValidationError{Index: i, Field: "speaker", Err: ErrNoSpeaker})
		}
		if t.Message == "" && t.Code == "" {
			errs = append(errs, &ValidationError{Index: i, Field: "message", Err: ErrEmptyTurn})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	s := &Script{
		turns: make([]Turn, len(turns)),
		chats: make([]Chat, len(chats)),
	}
	copy(s.turns, turns)
	copy(s.chats, chats)
	return s, nil
}

// MustNew is like New but panics on invalid input. Intended for built-in
// scripts that are known valid.
func MustNew(turns []Turn, chats []Chat) *Script {
	s, err := New(turns, chats)
	if err != nil {
		panic(err)
	}
	return s
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Len returns the number of turns.
func (s *Script) Len() int {
	return len(s.turns)
}

// Turn returns the turn at index i. ok is false when i is out of range.
func (s *Script) Turn(i int) (Turn, bool) {
	if i < 0 || i >= len(s.turns) {
		return Turn{}, false
	}
	return s.turns[i], true
}

// Turns returns a copy of all turns in playback order.
func (s *Script) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Chats returns a copy of the sidebar chats.
func (s *Script) Chats() []Chat {
	out := make([]Chat, len(s.chats))
	copy(out, s.chats)
	return out
}

// Speakers returns the distinct speakers in order of first appearance.
func (s *Script) Speakers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range s.turns {
		if !seen[t.Speaker] {
			seen[t.Speaker] = true
			out = append(out, t.Speaker)
		}
	}
	return out
}
