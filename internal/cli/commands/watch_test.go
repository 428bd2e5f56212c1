package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWatchRechecksOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinition(t, dir, "users.yaml", usersYAML)

	ctx, cancel := context.WithCancel(testContext(nil))
	defer cancel()

	var out syncBuffer

	done := make(chan error, 1)

	go func() {
		done <- runWatch(ctx, &out, []string{path}, &InputOptions{}, 20*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "2 entities resolved")
	}, 5*time.Second, 10*time.Millisecond)

	// the watcher is registered right after the first check; keep writing
	// until a re-check shows up
	broken := usersYAML + postsYAML[strings.Index(postsYAML, "  - name: Post"):]

	require.Eventually(t, func() bool {
		if err := os.WriteFile(path, []byte(broken), 0o644); err != nil {
			return false
		}

		return strings.Contains(out.String(), "missing fields: body")
	}, 5*time.Second, 50*time.Millisecond)

	assert.Contains(t, out.String(), "1 of 3 entities failed")

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRunWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinition(t, dir, "users.yaml", usersYAML)

	ctx, cancel := context.WithCancel(testContext(nil))
	defer cancel()

	var out syncBuffer

	done := make(chan error, 1)

	go func() {
		done <- runWatch(ctx, &out, []string{path}, &InputOptions{}, 10*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "2 entities resolved")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 1, strings.Count(out.String(), "entities resolved"))

	cancel()
	require.NoError(t, <-done)
}

func TestRunWatchRequiresInputs(t *testing.T) {
	err := runWatch(testContext(nil), &syncBuffer{}, nil, &InputOptions{}, DefaultDebounce)
	require.ErrorContains(t, err, "no inputs")
}
