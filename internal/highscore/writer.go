package highscore

import (
	"sync"
)

// Mode selects how a Writer persists records.
type Mode int

const (
	// ModeAsync hands records to a background goroutine.
	ModeAsync Mode = iota
	// ModeSync writes each record before Record returns.
	ModeSync
)

// ParseMode maps a config value onto a Mode. Anything but "sync" is async.
func ParseMode(s string) Mode {
	if s == "sync" {
		return ModeSync
	}
	return ModeAsync
}

// Writer takes high score records from the game loop and writes them to a
// Store. Records only ever raise the stored value, so several sessions can
// share one Writer. Write errors are logged and dropped.
type Writer struct {
	store *Store
	mode  Mode

	saveMu sync.Mutex // Orders saves so the file never goes backwards

	mu      sync.Mutex
	best    int  // Highest value recorded or loaded
	pending bool // best has not been written yet
	closed  bool

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewWriter creates a writer starting from the store's current value.
func NewWriter(store *Store, mode Mode) *Writer {
	w := &Writer{
		store: store,
		mode:  mode,
		best:  store.Load(),
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	if mode == ModeAsync {
		go w.loop()
	} else {
		close(w.done)
	}
	return w
}

// Best returns the highest value seen by the writer.
func (w *Writer) Best() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.best
}

// Record offers a new high score. Values at or below the current best are
// ignored. In async mode Record never blocks on the file.
func (w *Writer) Record(v int) {
	w.mu.Lock()
	if w.closed || v <= w.best {
		w.mu.Unlock()
		return
	}
	w.best = v
	w.pending = true
	if w.mode == ModeAsync {
		select {
		case w.wake <- struct{}{}:
		default: // a write is already queued and will pick up the latest value
		}
	}
	w.mu.Unlock()

	if w.mode == ModeSync {
		w.flush()
	}
}

// Flush writes any pending value before returning.
func (w *Writer) Flush() {
	w.flush()
}

// Close stops the background goroutine and writes the last recorded value.
// It is safe to call more than once.
func (w *Writer) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.mode == ModeAsync {
			close(w.wake)
		}
		w.mu.Unlock()
	})
	<-w.done
	w.flush()
	return nil
}

func (w *Writer) loop() {
	defer close(w.done)
	for range w.wake {
		w.flush()
	}
}

// flush writes best if it has not been written.
func (w *Writer) flush() {
	w.saveMu.Lock()
	defer w.saveMu.Unlock()

	w.mu.Lock()
	if !w.pending {
		w.mu.Unlock()
		return
	}
	v := w.best
	w.pending = false
	w.mu.Unlock()

	if err := w.store.Save(v); err != nil {
		w.store.logger.Warn("could not save high score", "score", v, "err", err)
		w.mu.Lock()
		if w.best == v {
			w.pending = true
		}
		w.mu.Unlock()
	}
}
