// Package filewatch reports changes to a single file on disk.
//
// It watches the parent directory rather than the file itself, so a file
// replaced by rename (as most editors and exporters do) keeps being seen.
package filewatch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/estatemap/internal/logger"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 500 * time.Millisecond

// Watch returns a channel that receives a value after path is written or
// recreated and then stays quiet for debounce. Several changes inside one
// debounce window produce one notification. The channel is closed when ctx
// is cancelled or the watcher fails.
func Watch(ctx context.Context, path string, debounce time.Duration) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	changes := make(chan struct{}, 1)
	go run(ctx, w, abs, debounce, changes)
	return changes, nil
}

func run(ctx context.Context, w *fsnotify.Watcher, path string, debounce time.Duration, changes chan<- struct{}) {
	defer close(changes)
	defer w.Close()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("filewatch: %s %s", event.Op, event.Name)
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("filewatch: %v", err)

		case <-timer.C:
			select {
			case changes <- struct{}{}:
			default:
			}
		}
	}
}
