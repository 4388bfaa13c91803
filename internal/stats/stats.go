package stats

import (
	"sort"
	"strings"

	"garagehub/internal/catalog"
	"garagehub/internal/hero"
	"garagehub/pkg/models"
)

// UnknownBrand labels cars without a brand in the brand breakdown.
const UnknownBrand = "Unknown"

// Summary holds the headline numbers of the home dashboard.
type Summary struct {
	Items         int `json:"items"`
	TotalOwned    int `json:"total_owned"`
	Manufacturers int `json:"manufacturers"`
	Series        int `json:"series"`
	Brands        int `json:"brands"`
	TreasureHunts int `json:"treasure_hunts"`
}

// Count is one row of a ranking.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Gifter is one row of the gifter ranking, with the cars they gave.
type Gifter struct {
	Name  string       `json:"name"`
	Count int          `json:"count"`
	Cars  []models.Car `json:"cars"`
}

// Limits bounds the lists of the home dashboard.
type Limits struct {
	TopBrands  int
	TopGifters int
	Recent     int
	HallOfFame int
}

// DefaultLimits are the home dashboard sizes used when none are configured.
var DefaultLimits = Limits{TopBrands: 5, TopGifters: 3, Recent: 3, HallOfFame: 3}

func (l Limits) withDefaults() Limits {
	if l.TopBrands <= 0 {
		l.TopBrands = DefaultLimits.TopBrands
	}
	if l.TopGifters <= 0 {
		l.TopGifters = DefaultLimits.TopGifters
	}
	if l.Recent <= 0 {
		l.Recent = DefaultLimits.Recent
	}
	if l.HallOfFame <= 0 {
		l.HallOfFame = DefaultLimits.HallOfFame
	}
	return l
}

// Summarize counts items, owned copies and distinct non-empty values.
func Summarize(cars []models.Car) Summary {
	manu := map[string]struct{}{}
	series := map[string]struct{}{}
	brands := map[string]struct{}{}

	s := Summary{Items: len(cars)}
	for _, c := range cars {
		s.TotalOwned += c.Quantity()
		if c.TreasureHunt {
			s.TreasureHunts++
		}
		if v := strings.TrimSpace(c.Manufacturer); v != "" {
			manu[v] = struct{}{}
		}
		if v := strings.TrimSpace(c.Series); v != "" {
			series[v] = struct{}{}
		}
		if v := strings.TrimSpace(c.Brand); v != "" {
			brands[v] = struct{}{}
		}
	}
	s.Manufacturers = len(manu)
	s.Series = len(series)
	s.Brands = len(brands)
	return s
}

// TopBrands ranks brands by number of cars. Ties keep first-seen order.
func TopBrands(cars []models.Car, n int) []Count {
	idx := map[string]int{}
	out := []Count{}
	for _, c := range cars {
		name := strings.TrimSpace(c.Brand)
		if name == "" {
			name = UnknownBrand
		}
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, Count{Name: name})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return truncate(out, n)
}

// TopGifters ranks gifters by number of gifts. Cars without a gifter are
// ignored. Ties keep first-seen order.
func TopGifters(cars []models.Car, n int) []Gifter {
	idx := map[string]int{}
	out := []Gifter{}
	for _, c := range cars {
		name := strings.TrimSpace(c.Gifter)
		if name == "" {
			continue
		}
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, Gifter{Name: name})
		}
		out[i].Count++
		out[i].Cars = append(out[i].Cars, c.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return truncate(out, n)
}

// GiftsFrom lists the cars given by name, in catalog order.
func GiftsFrom(cars []models.Car, name string) []models.Car {
	name = strings.TrimSpace(name)
	out := []models.Car{}
	if name == "" {
		return out
	}
	for _, c := range cars {
		if strings.TrimSpace(c.Gifter) == name {
			out = append(out, c.Clone())
		}
	}
	return out
}

func TreasureHunts(cars []models.Car) []models.Car {
	out := []models.Car{}
	for _, c := range cars {
		if c.TreasureHunt {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Exchange lists the cars owned more than once.
func Exchange(cars []models.Car) []models.Car {
	out := []models.Car{}
	for _, c := range cars {
		if c.Quantity() > 1 {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Recent returns the first n cars in catalog order, which is newest serial
// first.
func Recent(cars []models.Car, n int) []models.Car {
	out := []models.Car{}
	for i := 0; i < len(cars) && i < n; i++ {
		out = append(out, cars[i].Clone())
	}
	return out
}

func truncate[T any](s []T, n int) []T {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// Dashboard is the home view model.
type Dashboard struct {
	SnapshotID    string       `json:"snapshot_id"`
	Empty         bool         `json:"empty"`
	Summary       Summary      `json:"summary"`
	TopBrands     []Count      `json:"top_brands"`
	TopGifters    []Gifter     `json:"top_gifters"`
	TreasureHunts []models.Car `json:"treasure_hunts"`
	Recent        []models.Car `json:"recent"`
	HallOfFame    []models.Car `json:"hall_of_fame"`
}

// BuildDashboard derives the home view from one snapshot.
func BuildDashboard(snap *catalog.Snapshot, limits Limits) Dashboard {
	limits = limits.withDefaults()
	cars := snap.All()

	d := Dashboard{
		Empty:         len(cars) == 0,
		Summary:       Summarize(cars),
		TopBrands:     TopBrands(cars, limits.TopBrands),
		TopGifters:    TopGifters(cars, limits.TopGifters),
		TreasureHunts: TreasureHunts(cars),
		Recent:        Recent(cars, limits.Recent),
		HallOfFame:    hero.SelectHallOfFame(cars, limits.HallOfFame),
	}
	if snap != nil {
		d.SnapshotID = snap.ID
	}
	return d
}
