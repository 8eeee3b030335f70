package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeGitDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "refs", "heads"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "refs", "tags"), 0o755))
	return dir
}

func TestWatcherSignalsOnRefChange(t *testing.T) {
	dir := fakeGitDir(t)
	w, err := New(dir, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "refs", "heads", "main"), []byte("abc\n"), 0o644))

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := fakeGitDir(t)
	w, err := New(dir, nil)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "HEAD"), []byte("ref: refs/heads/main\n"), 0o644))
	}

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}

	// The burst settles into at most one pending token.
	time.Sleep(3 * debounceTime)
	select {
	case <-w.Changes():
		// A second token is tolerable when the burst straddled the
		// first flush, but there must be nothing beyond that.
		select {
		case <-w.Changes():
			t.Fatal("burst produced more than two notifications")
		default:
		}
	default:
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestIgnoreRules(t *testing.T) {
	tests := []struct {
		name   string
		event  fsnotify.Event
		ignore bool
	}{
		{"ref update", fsnotify.Event{Name: "/r/.git/refs/heads/main", Op: fsnotify.Write}, false},
		{"head update", fsnotify.Event{Name: "/r/.git/HEAD", Op: fsnotify.Create}, false},
		{"lock file", fsnotify.Event{Name: "/r/.git/index.lock", Op: fsnotify.Create}, true},
		{"reflog", fsnotify.Event{Name: "/r/.git/logs/HEAD", Op: fsnotify.Write}, true},
		{"config edit", fsnotify.Event{Name: "/r/.git/config", Op: fsnotify.Write}, true},
		{"removal", fsnotify.Event{Name: "/r/.git/refs/heads/main", Op: fsnotify.Remove}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ignore, ignore(tt.event))
		})
	}
}
