// Package watcher provides file change notification for re-running
// searches, built on fsnotify with per-path debouncing.
package watcher

import (
	"errors"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned when operating on a closed watcher.
var ErrClosed = errors.New("watcher is closed")

// Op is the kind of change observed on a path.
type Op uint8

const (
	OpWrite  Op = iota // File content changed
	OpCreate           // File appeared
	OpRemove           // File disappeared
	OpRename           // File was renamed away
)

// String returns the string representation of the op.
func (o Op) String() string {
	switch o {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event is a debounced change notification for a watched path.
type Event struct {
	Path string
	Op   Op
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period collapsing bursts of events per path.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher watches individual files and delivers debounced change events.
type Watcher struct {
	mu     sync.Mutex
	fsw    *fsnotify.Watcher
	events chan Event
	errs   chan error

	debounce time.Duration
	pending  map[string]*time.Timer

	closed  bool
	closeCh chan struct{}
	done    sync.WaitGroup
}

// New creates a watcher and starts its event loop.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		events:   make(chan Event, 64),
		errs:     make(chan error, 16),
		debounce: 100 * time.Millisecond,
		pending:  make(map[string]*time.Timer),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.done.Add(1)
	go w.run()
	return w, nil
}

// Add starts watching a file path.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	return w.fsw.Add(path)
}

// Events returns the channel of debounced change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.pending {
		t.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.done.Wait()
	return err
}

// run translates fsnotify events into debounced Events until closed.
func (w *Watcher) run() {
	defer w.done.Done()
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if op, relevant := translateOp(ev.Op); relevant {
				w.schedule(ev.Name, op)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a path.
func (w *Watcher) schedule(path string, op Op) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		select {
		case w.events <- Event{Path: path, Op: op}:
		case <-w.closeCh:
		}
	})
}

// translateOp maps an fsnotify op to a watcher Op.
// Chmod-only events are dropped.
func translateOp(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	default:
		return 0, false
	}
}
