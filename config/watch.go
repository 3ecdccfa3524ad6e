package config

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a config file into a Store whenever it changes on disk.
// Invalid edits are reported on Errors and leave the current snapshot alone.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	store   *Store
	Events  chan *Movement
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once

	// debounce is the quiet period after the last event before a reload.
	debounce time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	closed   bool
}

// NewWatcher watches the directory holding path, since editors often replace
// files by rename rather than writing in place.
func NewWatcher(path string, store *Store) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := newWatcher(path, store)
	watcher.watcher = w
	go watcher.run()
	return watcher, nil
}

func newWatcher(path string, store *Store) *Watcher {
	return &Watcher{
		path:    filepath.Clean(path),
		store:   store,
		Events:   make(chan *Movement, 4),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		debounce: reloadDebounce,
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		close(w.closeCh)
		if w.watcher != nil {
			err = w.watcher.Close()
		}
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.handle(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

// handle schedules a reload when name is the watched file. Every event
// restarts the quiet period, so an editor that truncates and then writes
// gets one reload of the finished file. It reports whether name matched.
func (w *Watcher) handle(name string) bool {
	if filepath.Clean(name) != w.path {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return true
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.reload)
	} else {
		w.timer.Reset(w.debounce)
	}
	return true
}

// reload parses the file and publishes it. Invalid files leave the current
// snapshot in place.
func (w *Watcher) reload() {
	m, err := LoadFile(w.path)
	if err == nil {
		err = w.store.Replace(m)
	}
	if err != nil {
		log.Printf("[config] reload of %s rejected: %v", w.path, err)
		w.report(err)
		return
	}

	log.Printf("[config] reloaded %s", w.path)
	select {
	case w.Events <- w.store.Snapshot():
	default:
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
