package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"garagehub/internal/catalog"
	hubsync "garagehub/internal/sync"
)

// State is the visible load state of the catalog.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Status describes the last load attempt. A failed reload keeps serving the
// previous snapshot, so SnapshotID and Items may be set while State is error.
type Status struct {
	State       State     `json:"state"`
	Source      string    `json:"source"`
	SnapshotID  string    `json:"snapshot_id,omitempty"`
	Items       int       `json:"items"`
	LastSuccess time.Time `json:"last_success,omitempty"`
	LastAttempt time.Time `json:"last_attempt,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
	Attempts    int       `json:"attempts"`
}

// Publisher receives reload notifications. *sync.Hub implements it.
type Publisher interface {
	PublishCatalog(ev hubsync.CatalogEvent)
}

type Options struct {
	Attempts    int
	Backoff     time.Duration
	QuantityCap int
}

// Loader fetches the catalog from its source and swaps it into the store.
type Loader struct {
	store  *catalog.Store
	source Source
	pub    Publisher
	opts   Options

	loadMu sync.Mutex // one load at a time

	mu     sync.RWMutex
	status Status
}

func New(store *catalog.Store, source Source, pub Publisher, opts Options) *Loader {
	if opts.Attempts <= 0 {
		opts.Attempts = 1
	}
	if opts.Backoff < 0 {
		opts.Backoff = 0
	}
	return &Loader{
		store:  store,
		source: source,
		pub:    pub,
		opts:   opts,
		status: Status{State: StateIdle, Source: source.Name()},
	}
}

// Status returns a copy of the current status.
func (l *Loader) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// Store returns the store the loader writes to.
func (l *Loader) Store() *catalog.Store { return l.store }

// Load fetches and decodes the catalog, retrying up to the configured number
// of attempts. On success the store is replaced; on failure it keeps its
// previous snapshot and the error is recorded in Status.
func (l *Loader) Load(ctx context.Context) (*catalog.Snapshot, error) {
	l.loadMu.Lock()
	defer l.loadMu.Unlock()

	l.setStatus(func(s *Status) {
		s.State = StateLoading
		s.LastAttempt = time.Now().UTC()
		s.Attempts = 0
	})

	var lastErr error
	for attempt := 1; attempt <= l.opts.Attempts; attempt++ {
		l.setStatus(func(s *Status) { s.Attempts = attempt })

		snap, err := l.loadOnce(ctx)
		if err == nil {
			return snap, nil
		}
		lastErr = err
		log.Warn().Err(err).Str("component", "loader").Str("source", l.source.Name()).
			Int("attempt", attempt).Int("of", l.opts.Attempts).Msg("catalog load failed")

		// malformed documents are not retried
		if errors.Is(err, ErrInvalidDocument) || errors.Is(err, ErrEmptySource) || attempt == l.opts.Attempts {
			break
		}
		if err := sleep(ctx, l.opts.Backoff*time.Duration(attempt)); err != nil {
			lastErr = err
			break
		}
	}

	l.fail(lastErr)
	return nil, fmt.Errorf("load catalog from %s: %w", l.source.Name(), lastErr)
}

func (l *Loader) loadOnce(ctx context.Context) (*catalog.Snapshot, error) {
	data, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	cars, err := Decode(data, DecodeOptions{QuantityCap: l.opts.QuantityCap})
	if err != nil {
		return nil, err
	}

	snap := l.store.Load(cars)
	now := time.Now().UTC()
	l.setStatus(func(s *Status) {
		s.State = StateReady
		s.SnapshotID = snap.ID
		s.Items = snap.Len()
		s.LastSuccess = now
		s.LastError = ""
	})
	log.Info().Str("component", "loader").Str("source", l.source.Name()).
		Str("snapshot", snap.ID).Int("items", snap.Len()).Msg("catalog loaded")

	l.publish(hubsync.CatalogEvent{
		Type:       hubsync.EventCatalogReloaded,
		SnapshotID: snap.ID,
		Items:      snap.Len(),
		Source:     l.source.Name(),
		At:         now,
	})
	return snap, nil
}

func (l *Loader) fail(err error) {
	cur := l.store.Snapshot()
	l.setStatus(func(s *Status) {
		s.State = StateError
		s.LastError = err.Error()
		s.SnapshotID = cur.ID
		s.Items = cur.Len()
	})
	l.publish(hubsync.CatalogEvent{
		Type:       hubsync.EventCatalogFailed,
		SnapshotID: cur.ID,
		Items:      cur.Len(),
		Source:     l.source.Name(),
		Error:      err.Error(),
		At:         time.Now().UTC(),
	})
}

func (l *Loader) publish(ev hubsync.CatalogEvent) {
	if l.pub != nil {
		l.pub.PublishCatalog(ev)
	}
}

func (l *Loader) setStatus(fn func(s *Status)) {
	l.mu.Lock()
	fn(&l.status)
	l.mu.Unlock()
}

// Run reloads the catalog every interval until ctx is done. Failures are
// logged and recorded; the loop keeps going.
func (l *Loader) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			_, _ = l.Load(ctx)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
