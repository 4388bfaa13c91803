package catalog

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"garagehub/pkg/models"
)

// Store owns the authoritative car list for the session. The list is
// replaced wholesale on every load; there is no incremental update.
type Store struct {
	current atomic.Pointer[Snapshot]
	locale  language.Tag
	now     func() time.Time
}

// NewStore creates an empty store. Until the first Load, Snapshot returns an
// empty snapshot.
func NewStore(locale language.Tag) *Store {
	s := &Store{locale: locale, now: time.Now}
	s.current.Store(newSnapshot("", time.Time{}, []models.Car{}))
	return s
}

// Load copies cars, puts them in default order, indexes them and swaps the
// result in as the current snapshot.
func (s *Store) Load(cars []models.Car) *Snapshot {
	ordered := cloneAll(cars)
	SortDefault(ordered, s.locale)

	snap := newSnapshot(uuid.NewString(), s.now().UTC(), ordered)
	s.current.Store(snap)
	return snap
}

// Snapshot returns the current snapshot. It is safe to hold on to: later
// loads never modify it.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// All returns a copy of the current car list.
func (s *Store) All() []models.Car {
	return s.Snapshot().All()
}

// SortDefault orders cars by serial, numeric serials descending first, then
// the remaining serials by descending text. Equal keys keep their order.
func SortDefault(cars []models.Car, locale language.Tag) {
	col := collate.New(locale)
	sort.SliceStable(cars, func(i, j int) bool {
		a, aok := cars[i].SerialValue()
		b, bok := cars[j].SerialValue()
		switch {
		case aok && bok:
			return a > b
		case aok != bok:
			return aok
		default:
			return col.CompareString(cars[i].Serial, cars[j].Serial) > 0
		}
	})
}
