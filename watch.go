package panelctl

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// WatchEvent represents a debounced source tree change
type WatchEvent struct {
	// Path is the file whose change ended the debounce window
	Path string

	// Err reports watcher failures
	Err error
}

// WatchCleanupFunc stops a watch and releases its resources
type WatchCleanupFunc func() error

// Watch monitors the source tree and emits one event per burst of changes,
// debounced by Config.WatchDebounce. Excluded paths never trigger events;
// directories created while watching are picked up as they appear.
//
// The returned cleanup function must be called to stop the watch; closing
// happens asynchronously and the channel is closed once it completes.
func (c *Config) Watch(ctx context.Context) (<-chan WatchEvent, WatchCleanupFunc, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, &OpError{Op: "watch", Path: c.SourceDir, Err: err}
	}

	// fsnotify does not recurse, so register every non-excluded directory
	if err := addTree(watcher, c.SourceDir, c.Excludes); err != nil {
		_ = watcher.Close()
		return nil, nil, &OpError{Op: "watch", Path: c.SourceDir, Err: err}
	}

	ch := make(chan WatchEvent, 10)

	sctx := stopper.WithContext(ctx)

	sctx.Defer(func() {
		_ = watcher.Close()
		close(ch)
	})

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond)
		return sctx.Wait()
	}

	var mu sync.Mutex
	var debouncer *time.Timer
	var pending string

	emit := func() {
		mu.Lock()
		path := pending
		mu.Unlock()

		if sctx.IsStopping() {
			return
		}
		select {
		case ch <- WatchEvent{Path: path}:
		case <-sctx.Stopping():
		}
	}

	sctx.Go(func(sctx *stopper.Context) error {
		sctx.Defer(func() {
			mu.Lock()
			if debouncer != nil {
				debouncer.Stop()
			}
			mu.Unlock()
		})

		for !sctx.IsStopping() {
			select {
			case <-sctx.Stopping():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}

				rel, err := filepath.Rel(c.SourceDir, event.Name)
				if err != nil || Excluded(rel, c.Excludes) {
					continue
				}

				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = addTree(watcher, event.Name, c.Excludes)
					}
				}

				mu.Lock()
				pending = event.Name
				if debouncer != nil {
					debouncer.Stop()
				}
				debouncer = time.AfterFunc(c.WatchDebounce, emit)
				mu.Unlock()

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil && !sctx.IsStopping() {
					select {
					case ch <- WatchEvent{Err: err}:
					case <-sctx.Stopping():
						return nil
					}
				}
			}
		}
		return nil
	})

	return ch, cleanup, nil
}

// addTree registers watches for root and every non-excluded subdirectory
func addTree(watcher *fsnotify.Watcher, root string, excludes []string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel != "." && Excluded(rel, excludes) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
