// ABOUTME: Config file watcher built on fsnotify
// ABOUTME: Blocks until the file is written, debouncing editors' multi-step saves

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce lets atomic writes settle before the file is re-read
const reloadDebounce = 100 * time.Millisecond

// Watcher reports writes to a single config file
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	onError func(error)
}

// Watch starts watching path. The parent directory is watched so that
// editors replacing the file by rename are still noticed.
func Watch(path string, onError func(error)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()

		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	if onError == nil {
		onError = func(error) {}
	}

	return &Watcher{path: filepath.Clean(path), watcher: w, onError: onError}, nil
}

// Next blocks until the config file is written or created.
// It returns false once the watcher is closed.
func (w *Watcher) Next() bool {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return false
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				time.Sleep(reloadDebounce)
				w.drain()

				return true
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return false
			}

			w.onError(err)
		}
	}
}

// drain discards events queued during the debounce
func (w *Watcher) drain() {
	for {
		select {
		case _, ok := <-w.watcher.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Path returns the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
