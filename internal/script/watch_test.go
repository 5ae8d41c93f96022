// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package script

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeScript(t, "watched.yaml", yamlScript)

	reloaded := make(chan *Script, 4)
	w, err := NewWatcher(path, 20*time.Millisecond, func(s *Script, err error) {
		if err == nil {
			reloaded <- s
		}
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Close()

	updated := yamlScript + "  - id: 8\n    name: Another chat\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	select {
	case s := <-reloaded:
		assert.Len(t, s.Chats(), 2)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_CloseWithoutStart(t *testing.T) {
	path := writeScript(t, "idle.yaml", yamlScript)

	w, err := NewWatcher(path, 0, nil)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}
