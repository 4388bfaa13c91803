package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce batches the burst of events an editor produces on save.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reloads the catalog when its file changes on disk. It watches the
// parent directory so editors that replace the file on save are handled.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(ctx context.Context)
	pending  time.Time
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher watches path and calls onChange once changes settle.
func NewWatcher(path string, debounce time.Duration, onChange func(ctx context.Context)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// WatchLoader wires a watcher to l.Load.
func WatchLoader(l *Loader, path string, debounce time.Duration) (*Watcher, error) {
	return NewWatcher(path, debounce, func(ctx context.Context) {
		_, _ = l.Load(ctx)
	})
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Info().Str("component", "watch").Str("path", w.path).Msg("watching catalog file")

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine. It is safe to call
// more than once, and before Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		log.Error().Err(err).Str("component", "watch").Msg("close watcher")
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(w.debounce / 3)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Str("component", "watch").Msg("watcher error")

		case <-tick.C:
			if w.due() {
				log.Info().Str("component", "watch").Str("path", w.path).Msg("catalog file changed")
				w.onChange(ctx)
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}
	log.Debug().Str("component", "watch").Str("op", ev.Op.String()).Msg("event")

	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

// due reports whether a change is pending and quiet for the debounce period,
// clearing it if so.
func (w *Watcher) due() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}
