package catalog

import (
	"sort"
	"strings"
	"time"

	"garagehub/pkg/models"
)

// DefaultRelatedLimit caps the "more from this manufacturer" rail.
const DefaultRelatedLimit = 50

// Snapshot is the immutable result of one catalog load. All derived views
// are computed from a snapshot and never modify it.
type Snapshot struct {
	ID       string    `json:"id"`
	LoadedAt time.Time `json:"loaded_at"`

	cars      []models.Car
	byModel   map[string][]int
	byVariant map[string]int
}

// FilterOptions lists the distinct values offered by the garage dropdowns.
type FilterOptions struct {
	Manufacturers []string `json:"manufacturers"`
	Series        []string `json:"series"`
	Brands        []string `json:"brands"`
}

func newSnapshot(id string, loadedAt time.Time, cars []models.Car) *Snapshot {
	s := &Snapshot{
		ID:        id,
		LoadedAt:  loadedAt,
		cars:      cars,
		byModel:   make(map[string][]int),
		byVariant: make(map[string]int, len(cars)),
	}
	for i, c := range cars {
		if c.Model != "" {
			s.byModel[c.Model] = append(s.byModel[c.Model], i)
		}
		if c.VariantID != "" {
			if _, dup := s.byVariant[c.VariantID]; !dup {
				s.byVariant[c.VariantID] = i
			}
		}
	}
	return s
}

// Len returns the number of cars; zero for a nil snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.cars)
}

// Empty reports whether no catalog has been loaded yet, or it has no cars.
func (s *Snapshot) Empty() bool {
	return s.Len() == 0
}

// All returns a deep copy of the cars in catalog order.
func (s *Snapshot) All() []models.Car {
	if s == nil {
		return []models.Car{}
	}
	return cloneAll(s.cars)
}

// Each calls fn for every car in catalog order without copying. fn must not
// retain or modify the car's slices.
func (s *Snapshot) Each(fn func(i int, c *models.Car)) {
	if s == nil {
		return
	}
	for i := range s.cars {
		fn(i, &s.cars[i])
	}
}

// ByVariantID looks a car up by its variant identifier.
func (s *Snapshot) ByVariantID(id string) (models.Car, bool) {
	if s == nil {
		return models.Car{}, false
	}
	i, ok := s.byVariant[strings.TrimSpace(id)]
	if !ok {
		return models.Car{}, false
	}
	return s.cars[i].Clone(), true
}

// FindByName returns the first car whose name matches, ignoring case and
// surrounding whitespace. Share links address cars this way.
func (s *Snapshot) FindByName(name string) (models.Car, bool) {
	if s == nil {
		return models.Car{}, false
	}
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return models.Car{}, false
	}
	for _, c := range s.cars {
		if strings.ToLower(c.Name) == want {
			return c.Clone(), true
		}
	}
	return models.Car{}, false
}

// HasVariants reports whether model is shared by more than one car.
func (s *Snapshot) HasVariants(model string) bool {
	if s == nil || model == "" {
		return false
	}
	return len(s.byModel[model]) > 1
}

// Variants returns every car sharing c's model, in catalog order, c included.
// A car without a model has no variants.
func (s *Snapshot) Variants(c models.Car) []models.Car {
	if s == nil || c.Model == "" {
		return []models.Car{}
	}
	idx := s.byModel[c.Model]
	out := make([]models.Car, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.cars[i].Clone())
	}
	return out
}

// Related returns up to limit other cars from c's manufacturer.
func (s *Snapshot) Related(c models.Car, limit int) []models.Car {
	out := []models.Car{}
	if s == nil {
		return out
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	manu := strings.ToLower(c.Manufacturer)
	for _, other := range s.cars {
		if len(out) >= limit {
			break
		}
		if other.VariantID == c.VariantID {
			continue
		}
		if strings.ToLower(other.Manufacturer) == manu {
			out = append(out, other.Clone())
		}
	}
	return out
}

// FilterOptions collects sorted distinct manufacturers, series and brands.
func (s *Snapshot) FilterOptions() FilterOptions {
	var manu, series, brands []string
	if s != nil {
		manu = distinct(s.cars, func(c models.Car) string { return c.Manufacturer })
		series = distinct(s.cars, func(c models.Car) string { return c.Series })
		brands = distinct(s.cars, func(c models.Car) string { return c.Brand })
	}
	return FilterOptions{
		Manufacturers: nonNil(manu),
		Series:        nonNil(series),
		Brands:        nonNil(brands),
	}
}

func distinct(cars []models.Car, field func(models.Car) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range cars {
		v := field(c)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func cloneAll(cars []models.Car) []models.Car {
	out := make([]models.Car, len(cars))
	for i, c := range cars {
		out[i] = c.Clone()
	}
	return out
}
