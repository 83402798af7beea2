// Package watch re-lists the current directory after external changes. It
// follows one directory at a time and coalesces bursts of filesystem events
// into a single notification.
package watch

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/filedeck/filedeck/internal/constants"
	"github.com/filedeck/filedeck/internal/logging"
)

// Watcher follows a single directory.
type Watcher struct {
	fs       *fsnotify.Watcher
	notify   func(dir string)
	debounce time.Duration
	log      *logging.Logger

	mu    sync.Mutex
	dir   string
	timer *time.Timer

	done chan struct{}
	wg   sync.WaitGroup
}

// New starts a watcher that calls notify (from its own goroutine) once per
// burst of changes in the watched directory. Frontends marshal the call onto
// their UI goroutine.
func New(notify func(dir string), log *logging.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if log == nil {
		log = logging.Nop()
	}
	w := &Watcher{
		fs:       fw,
		notify:   notify,
		debounce: constants.WatchDebounce,
		log:      log,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Watch switches the watcher to dir. Watching the same directory again is a no-op.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		_ = w.fs.Remove(w.dir)
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.dir = ""
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	w.dir = dir
	return nil
}

// Dir returns the directory being watched.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Close stops the watcher. No notification is delivered after Close returns.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.dir = ""
	w.mu.Unlock()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.schedule()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("File watcher error")

		case <-w.done:
			return
		}
	}
}

// schedule (re)starts the debounce timer for the current directory.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	dir := w.dir
	if dir == "" {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
			return
		default:
		}
		if w.Dir() != dir {
			return
		}
		w.notify(dir)
	})
}
