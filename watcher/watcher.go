package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/achilleasa/aabbtree/log"
	"github.com/fsnotify/fsnotify"
)

// The default interval used to coalesce bursts of change events.
const DefaultDebounce = 250 * time.Millisecond

// A ChangeFunc is invoked with the absolute path of a changed file.
type ChangeFunc func(path string)

// Watches a set of scene files and invokes a callback once a burst of write
// events for a file has settled.
type Watcher struct {
	logger log.Logger

	fsWatcher *fsnotify.Watcher
	debounce  time.Duration

	mutex     sync.Mutex
	dirs      map[string]bool
	callbacks map[string]ChangeFunc
	timers    map[string]*time.Timer
	started   bool

	doneChan chan struct{}
}

// Create a new watcher. A zero debounce interval selects DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: could not create fs watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		logger:    log.New("watcher"),
		fsWatcher: fsWatcher,
		debounce:  debounce,
		dirs:      make(map[string]bool),
		callbacks: make(map[string]ChangeFunc),
		timers:    make(map[string]*time.Timer),
		doneChan:  make(chan struct{}),
	}, nil
}

// Register files to be watched. The callback fires for each file separately.
// The parent directory of each file is watched instead of the file itself so
// that saves which replace the file (write to a temp file and rename it over
// the original) keep being detected.
func (w *Watcher) Watch(files []string, callback ChangeFunc) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("watcher: could not resolve path %s: %w", file, err)
		}

		if _, err = os.Stat(absPath); err != nil {
			return fmt.Errorf("watcher: could not watch %s: %w", absPath, err)
		}

		dir := filepath.Dir(absPath)
		if !w.dirs[dir] {
			if err = w.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("watcher: could not watch %s: %w", dir, err)
			}
			w.dirs[dir] = true
		}

		w.callbacks[absPath] = callback
		w.logger.Debugf("watching %s", absPath)
	}

	return nil
}

// Start processing fs events in a background goroutine.
func (w *Watcher) Start() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.started {
		return
	}
	w.started = true
	go w.loop()
}

func (w *Watcher) loop() {
	defer close(w.doneChan)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.scheduleCallback(filepath.Clean(event.Name))
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warningf("fs watcher error: %v", err)
		}
	}
}

// Reset the debounce timer for a changed file.
func (w *Watcher) scheduleCallback(path string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	callback, exists := w.callbacks[path]
	if !exists {
		return
	}

	if timer, exists := w.timers[path]; exists {
		timer.Stop()
	}

	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.logger.Debugf("detected change to %s", path)
		callback(path)
	})
}

// Stop watching all files and wait for the event loop to exit. Pending
// callbacks are cancelled.
func (w *Watcher) Close() error {
	w.mutex.Lock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
	started := w.started
	w.mutex.Unlock()

	err := w.fsWatcher.Close()
	if started {
		<-w.doneChan
	}
	return err
}
