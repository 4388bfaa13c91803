package query

import (
	"sync"

	"garagehub/internal/catalog"
)

// SnapshotSource supplies the catalog snapshot a Browser queries.
// *catalog.Store satisfies it.
type SnapshotSource interface {
	Snapshot() *catalog.Snapshot
}

// Browser is the garage grid state: the active Spec plus the rules for how
// it moves. Every change to a filter or the sort mode sends the view back to
// the first page. Browser is safe for concurrent use.
type Browser struct {
	mu     sync.Mutex
	engine *Engine
	source SnapshotSource
	spec   Spec
}

func NewBrowser(engine *Engine, source SnapshotSource) *Browser {
	return &Browser{
		engine: engine,
		source: source,
		spec:   engine.Normalize(Spec{}),
	}
}

// Spec returns the active spec.
func (b *Browser) Spec() Spec {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spec
}

// Current evaluates the active spec against the latest snapshot.
func (b *Browser) Current() Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentLocked()
}

func (b *Browser) currentLocked() Page {
	return b.engine.Query(b.source.Snapshot(), b.spec)
}

// Apply replaces the spec. The page index is kept only when neither the
// filters nor the sort mode changed.
func (b *Browser) Apply(spec Spec) Page {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.engine.Normalize(spec)
	if !next.sameFilters(b.spec) || next.Sort != b.spec.Sort || next.PageSize != b.spec.PageSize {
		next.Page = 0
	}
	b.spec = next
	return b.currentLocked()
}

func (b *Browser) update(fn func(s *Spec)) Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.spec)
	b.spec = b.engine.Normalize(b.spec)
	b.spec.Page = 0
	return b.currentLocked()
}

func (b *Browser) SetText(text string) Page {
	return b.update(func(s *Spec) { s.Text = text })
}

func (b *Browser) SetManufacturer(v string) Page {
	return b.update(func(s *Spec) { s.Manufacturer = v })
}

func (b *Browser) SetSeries(v string) Page {
	return b.update(func(s *Spec) { s.Series = v })
}

func (b *Browser) SetBrand(v string) Page {
	return b.update(func(s *Spec) { s.Brand = v })
}

// SetSort changes the order only; filters stay as they are.
func (b *Browser) SetSort(mode SortMode) Page {
	return b.update(func(s *Spec) { s.Sort = mode })
}

func (b *Browser) ToggleVariantsOnly() Page {
	return b.update(func(s *Spec) { s.VariantsOnly = !s.VariantsOnly })
}

// Reset clears every filter and restores the default sort.
func (b *Browser) Reset() Page {
	return b.update(func(s *Spec) { *s = Spec{PageSize: s.PageSize} })
}

// Refresh is called after the catalog reloads. Filters are cleared since the
// old values may no longer exist in the new catalog.
func (b *Browser) Refresh() Page {
	return b.Reset()
}

// Next moves forward one page. It refuses to move past the last page of the
// current filtered total and reports whether the page changed.
func (b *Browser) Next() (Page, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur := b.currentLocked()
	if !cur.HasNext() {
		return cur, false
	}
	b.spec.Page = cur.Page + 1
	return b.currentLocked(), true
}

// Prev moves back one page. It reports whether the page changed.
func (b *Browser) Prev() (Page, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur := b.currentLocked()
	if !cur.HasPrev() {
		return cur, false
	}
	b.spec.Page = cur.Page - 1
	return b.currentLocked(), true
}
