package query

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"garagehub/internal/catalog"
	"garagehub/pkg/models"
)

// Page is one slice of a filtered, sorted result.
type Page struct {
	Items    []models.Car `json:"items"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Pages    int          `json:"pages"`
	Start    int          `json:"start"` // 1-based, inclusive; 0 when there are no results
	End      int          `json:"end"`
	// NoResults is set when nothing matched, as opposed to a page that
	// happens to be empty.
	NoResults bool `json:"no_results"`
}

// Summary renders the pagination text shown under the grid.
func (p Page) Summary() string {
	if p.NoResults {
		return "No cars found"
	}
	return fmt.Sprintf("%d–%d of %d", p.Start, p.End, p.Total)
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool {
	return (p.Page+1)*p.PageSize < p.Total
}

// HasPrev reports whether a preceding page exists.
func (p Page) HasPrev() bool {
	return p.Page > 0
}

// Options configure an Engine.
type Options struct {
	PageSize    int
	DefaultSort SortMode
	Locale      language.Tag
}

// Engine evaluates query specs against catalog snapshots. It keeps no state
// between calls.
type Engine struct {
	pageSize    int
	defaultSort SortMode
	locale      language.Tag
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		pageSize:    opts.PageSize,
		defaultSort: ParseSortMode(string(opts.DefaultSort), DefaultSort),
		locale:      opts.Locale,
	}
	if e.pageSize <= 0 || e.pageSize > MaxPageSize {
		e.pageSize = DefaultPageSize
	}
	if e.locale == language.Und {
		e.locale = language.English
	}
	return e
}

// PageSize returns the page size used when a spec leaves it unset.
func (e *Engine) PageSize() int { return e.pageSize }

// DefaultSort returns the sort mode used when a spec leaves it unset.
func (e *Engine) DefaultSort() SortMode { return e.defaultSort }

// Normalize fills defaults into spec and clamps out-of-range values. The page
// index is clamped later, once the total is known.
func (e *Engine) Normalize(spec Spec) Spec {
	spec.Text = strings.TrimSpace(spec.Text)
	spec.Manufacturer = strings.TrimSpace(spec.Manufacturer)
	spec.Series = strings.TrimSpace(spec.Series)
	spec.Brand = strings.TrimSpace(spec.Brand)
	spec.Gifter = strings.TrimSpace(spec.Gifter)
	spec.Sort = ParseSortMode(string(spec.Sort), e.defaultSort)
	if spec.PageSize <= 0 {
		spec.PageSize = e.pageSize
	}
	if spec.PageSize > MaxPageSize {
		spec.PageSize = MaxPageSize
	}
	if spec.Page < 0 {
		spec.Page = 0
	}
	return spec
}

// Query filters, sorts and paginates the snapshot. Calling it twice with the
// same snapshot and spec yields equal pages.
func (e *Engine) Query(snap *catalog.Snapshot, spec Spec) Page {
	spec = e.Normalize(spec)

	matched := e.Filter(snap, spec)
	e.Sort(matched, spec.Sort)

	return paginate(matched, spec.Page, spec.PageSize)
}

// Filter returns copies of the cars matching every active predicate, in
// catalog order.
func (e *Engine) Filter(snap *catalog.Snapshot, spec Spec) []models.Car {
	spec = e.Normalize(spec)
	text := strings.ToLower(spec.Text)

	out := []models.Car{}
	snap.Each(func(_ int, c *models.Car) {
		if text != "" && !strings.Contains(strings.ToLower(c.Name), text) {
			return
		}
		if spec.Manufacturer != "" && c.Manufacturer != spec.Manufacturer {
			return
		}
		if spec.Series != "" && c.Series != spec.Series {
			return
		}
		if spec.Brand != "" && c.Brand != spec.Brand {
			return
		}
		if spec.Gifter != "" && c.Gifter != spec.Gifter {
			return
		}
		if spec.VariantsOnly && !snap.HasVariants(c.Model) {
			return
		}
		if spec.DuplicatesOnly && c.Quantity() <= 1 {
			return
		}
		if spec.TreasureHuntsOnly && !c.TreasureHunt {
			return
		}
		out = append(out, c.Clone())
	})
	return out
}

// Sort orders cars in place. Cars whose serial has no digits go last in both
// serial directions. The sort is stable.
func (e *Engine) Sort(cars []models.Car, mode SortMode) {
	switch ParseSortMode(string(mode), e.defaultSort) {
	case SortNameAsc:
		col := collate.New(e.locale)
		sort.SliceStable(cars, func(i, j int) bool {
			return col.CompareString(cars[i].Name, cars[j].Name) < 0
		})
	case SortSerialAsc:
		sort.SliceStable(cars, func(i, j int) bool {
			return serialLess(cars[i], cars[j], false)
		})
	default:
		sort.SliceStable(cars, func(i, j int) bool {
			return serialLess(cars[i], cars[j], true)
		})
	}
}

func serialLess(a, b models.Car, desc bool) bool {
	av, aok := a.SerialValue()
	bv, bok := b.SerialValue()
	switch {
	case aok && bok:
		if desc {
			return av > bv
		}
		return av < bv
	default:
		// +infinity sentinel: numeric before non-numeric, ties keep order
		return aok && !bok
	}
}

func paginate(sorted []models.Car, page, size int) Page {
	total := len(sorted)
	if total == 0 {
		return Page{
			Items:     []models.Car{},
			PageSize:  size,
			NoResults: true,
		}
	}

	pages := (total + size - 1) / size
	if page >= pages {
		page = pages - 1
	}
	start := page * size
	end := start + size
	if end > total {
		end = total
	}

	return Page{
		Items:    sorted[start:end:end],
		Total:    total,
		Page:     page,
		PageSize: size,
		Pages:    pages,
		Start:    start + 1,
		End:      end,
	}
}
