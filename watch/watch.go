// Package watch signals when a git repository changes on disk, so an
// open view can reload instead of going stale.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const debounceTime = 100 * time.Millisecond

// Watcher monitors a .git directory and delivers one notification per
// burst of filesystem events. Lock files, reflogs and config edits are
// ignored; those fire constantly without the history changing.
type Watcher struct {
	fs      *fsnotify.Watcher
	changes chan struct{}
	quit    chan struct{}
	logger  *log.Logger
}

// New starts watching gitDir and the ref directories under it.
func New(gitDir string, logger *log.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	dirs := []string{
		gitDir,
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	}
	watched := 0
	for _, d := range dirs {
		if err := fs.Add(d); err != nil {
			logger.Debug("not watching", "dir", d, "err", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		fs.Close()
		return nil, fmt.Errorf("nothing watchable under %s", gitDir)
	}

	w := &Watcher{
		fs:      fs,
		changes: make(chan struct{}, 1),
		quit:    make(chan struct{}),
		logger:  logger,
	}
	go w.loop()
	return w, nil
}

// Changes delivers a token per settled burst of repository changes.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Close stops the watcher. Idempotent closes are the caller's problem;
// call it once.
func (w *Watcher) Close() error {
	close(w.quit)
	return w.fs.Close()
}

func (w *Watcher) loop() {
	var debounce *time.Timer
	for {
		select {
		case <-w.quit:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ignore(event) {
				continue
			}
			w.logger.Debug("repository change", "file", filepath.Base(event.Name))
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceTime, w.notify)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "err", err)
		}
	}
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
		// A pending token already covers this burst.
	}
}

func ignore(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return true
	}
	if strings.HasSuffix(base, ".lock") {
		return true
	}
	if strings.Contains(event.Name, string(filepath.Separator)+"logs"+string(filepath.Separator)) {
		return true
	}
	if base == "config" {
		return true
	}
	return false
}
