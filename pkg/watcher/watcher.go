package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches files for changes and triggers callbacks.
// Change events are debounced: CAD exporters and editors often write a
// file in several bursts, and only the last write should trigger a
// re-process.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	callbacks map[string]func(string)
	debounce  time.Duration
	timers    map[string]*time.Timer
	errs      chan error
	done      chan struct{}
}

// New creates a file watcher with the given debounce interval
func New(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:   watcher,
		callbacks: make(map[string]func(string)),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
		errs:      make(chan error, 1),
		done:      make(chan struct{}),
	}, nil
}

// Watch registers files to watch; callback is invoked with the path of
// the file that changed, after the debounce interval has passed without
// further events.
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		if err := fw.watcher.Add(absPath); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}

		fw.callbacks[absPath] = callback
	}

	return nil
}

// Start begins delivering change events in a background goroutine
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}

				switch {
				case event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create):
					fw.handleFileChange(event.Name)
				case event.Op.Has(fsnotify.Rename) || event.Op.Has(fsnotify.Remove):
					// Atomic-save editors replace the file; re-add the
					// path so the next export is still observed.
					fw.rewatch(event.Name)
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				select {
				case fw.errs <- err:
				default:
				}

			case <-fw.done:
				return
			}
		}
	}()
}

// Errors delivers watcher errors; the channel is never closed
func (fw *FileWatcher) Errors() <-chan error {
	return fw.errs
}

func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, exists := fw.callbacks[filePath]
	if !exists {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}

	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		callback(filePath)
	})
}

func (fw *FileWatcher) rewatch(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, exists := fw.callbacks[filePath]
	if !exists {
		return
	}

	// Best effort: the replacement file may not exist yet
	if err := fw.watcher.Add(filePath); err != nil {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}
	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		callback(filePath)
	})
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}
