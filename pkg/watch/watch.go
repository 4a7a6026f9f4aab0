// Package watch re-runs a callback when template or context files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType is the kind of change seen for a file.
type EventType int

const (
	EventCreated EventType = iota
	EventModified
	EventDeleted
	EventRenamed
)

func (e EventType) String() string {
	switch e {
	case EventCreated:
		return "created"
	case EventModified:
		return "modified"
	case EventDeleted:
		return "deleted"
	case EventRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Event is one debounced change to a watched file.
type Event struct {
	Type EventType
	Path string
}

// Handler receives a batch of changes. Returning an error stops Run.
type Handler func(events []Event) error

// Watcher watches individual files by watching their parent directories,
// so editors that replace files on save are still noticed.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

// New creates a watcher that groups changes arriving within debounce of
// each other into a single batch.
func New(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fs:       fw,
		debounce: debounce,
		files:    map[string]bool{},
		dirs:     map[string]bool{},
	}, nil
}

// Add registers files to watch.
func (w *Watcher) Add(paths ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		dir := filepath.Dir(abs)
		if !w.dirs[dir] {
			if err := w.fs.Add(dir); err != nil {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			w.dirs[dir] = true
		}
		w.files[abs] = true
	}
	return nil
}

func (w *Watcher) watched(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(path)]
}

// Run delivers debounced batches to h until ctx is cancelled, the watcher
// is closed, or h returns an error.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	pending := map[string]EventType{}
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.watched(ev.Name) {
				continue
			}
			typ, ok := eventType(ev.Op)
			if !ok {
				continue
			}
			slog.Debug("file event", "path", ev.Name, "type", typ)
			pending[filepath.Clean(ev.Name)] = typ
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			batch := make([]Event, 0, len(pending))
			for p, typ := range pending {
				batch = append(batch, Event{Type: typ, Path: p})
			}
			sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
			pending = map[string]EventType{}
			if err := h(batch); err != nil {
				return err
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func eventType(op fsnotify.Op) (EventType, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return EventCreated, true
	case op.Has(fsnotify.Write):
		return EventModified, true
	case op.Has(fsnotify.Remove):
		return EventDeleted, true
	case op.Has(fsnotify.Rename):
		return EventRenamed, true
	default:
		return 0, false
	}
}
