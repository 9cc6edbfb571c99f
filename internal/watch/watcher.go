// Package watch re-runs a callback when the inputs of a resolution change on
// disk: the workspace snapshot file or the persisted selection state.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces bursts of events (atomic writes produce a create
// and a rename) into one callback.
const DefaultDebounce = 100 * time.Millisecond

// Watcher calls OnChange after files it watches change.
type Watcher struct {
	// Paths are files or directories to watch. Files are watched through
	// their parent directory so atomic replacement is observed.
	Paths []string

	// OnChange is called once per debounced burst of events.
	OnChange func(ctx context.Context)

	Debounce time.Duration
	Logger   *zap.Logger
}

// Run blocks, calling OnChange once at start and again after every debounced
// change, until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range w.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		targets[abs] = true

		dir := abs
		if !isDir(abs) {
			dir = filepath.Dir(abs)
		}
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	w.OnChange(ctx)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event, targets) {
				continue
			}
			logger.Debug("watched path changed",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()),
			)
			timer.Reset(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			w.OnChange(ctx)
		}
	}
}

// relevant reports whether event touches a watched target: either the target
// itself or anything inside a watched directory.
func relevant(event fsnotify.Event, targets map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Clean(event.Name)
	if targets[name] {
		return true
	}
	if filepath.Base(name)[0] == '.' {
		// Temp files from atomic writes.
		return false
	}
	return targets[filepath.Dir(name)]
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
