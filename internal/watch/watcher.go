package watch

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler receives a debounced batch of normalized events.
type Handler func(events []Event)

// Watcher watches directory trees for changes to files matching a suffix
// filter and delivers debounced event batches to a single handler.
type Watcher struct {
	suffix   string
	debounce time.Duration
	handler  Handler
	logger   *slog.Logger

	fsw  *fsnotify.Watcher
	deb  *Debouncer
	done chan struct{}
	wg   sync.WaitGroup

	mu      sync.Mutex
	pending []Event
}

// New creates a watcher for files ending in suffix (e.g. ".hsl"). Events are
// batched behind a quiet period of debounce before handler runs.
func New(suffix string, debounce time.Duration, logger *slog.Logger, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	w := &Watcher{
		suffix:   suffix,
		debounce: debounce,
		handler:  handler,
		logger:   logger,
		fsw:      fsw,
		deb:      NewDebouncer(debounce),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Add registers a directory tree for watching. Hidden directories are
// skipped.
func (w *Watcher) Add(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // vanished mid-walk; nothing to watch
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); name != filepath.Base(root) && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Close stops the watcher and flushes any pending batch.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	w.deb.Flush()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.observe(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) observe(ev fsnotify.Event) {
	// New subdirectories need their own watch registration.
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.Add(ev.Name); err != nil {
				w.logger.Warn("watch new directory", "path", ev.Name, "error", err)
			}
			return
		}
	}
	if !strings.HasSuffix(ev.Name, w.suffix) {
		return
	}

	var typ EventType
	switch {
	case ev.Op.Has(fsnotify.Create):
		typ = Created
	case ev.Op.Has(fsnotify.Write):
		typ = Modified
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		typ = Deleted
	default:
		return
	}

	w.mu.Lock()
	w.pending = append(w.pending, Event{Type: typ, Path: ev.Name, Timestamp: time.Now()})
	w.mu.Unlock()

	w.deb.Trigger(w.flush)
}

// flush hands the accumulated batch to the handler, keeping only the last
// event per path.
func (w *Watcher) flush() {
	w.mu.Lock()
	batch := w.pending
	w.pending = nil
	w.mu.Unlock()
	if len(batch) == 0 {
		return
	}

	last := make(map[string]int, len(batch))
	for i, ev := range batch {
		last[ev.Path] = i
	}
	coalesced := make([]Event, 0, len(last))
	for i, ev := range batch {
		if last[ev.Path] == i {
			coalesced = append(coalesced, ev)
		}
	}
	w.handler(coalesced)
}
