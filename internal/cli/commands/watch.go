package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of events from a single save.
const watchDebounce = 100 * time.Millisecond

// fileWatcher calls back when a single file is written or replaced.
// The parent directory is watched so editors that save by renaming are seen.
type fileWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
}

func newFileWatcher(path string, logger *slog.Logger) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	return &fileWatcher{
		path:     abs,
		watcher:  watcher,
		logger:   logger,
		debounce: watchDebounce,
	}, nil
}

// Run blocks until ctx is cancelled, calling onChange after each debounced
// change. Calls to onChange never overlap, and none is running or pending
// once Run returns. The watcher is closed on return.
func (w *fileWatcher) Run(ctx context.Context, onChange func()) error {
	defer func() { _ = w.watcher.Close() }()

	var (
		mu            sync.Mutex
		debounceTimer *time.Timer
		stopped       bool
	)

	// stop cancels a pending call and waits for a running one.
	stop := func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		mu.Lock()
		stopped = true
		mu.Unlock()
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// Only handle write/create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Debug("file event", "file", event.Name, "op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				mu.Lock()
				defer mu.Unlock()
				if stopped || ctx.Err() != nil {
					return
				}
				w.logger.Info("change detected", "file", filepath.Base(w.path))
				onChange()
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}
