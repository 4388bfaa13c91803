package query

import "strings"

// SortMode selects the order of a result page.
type SortMode string

const (
	SortNameAsc    SortMode = "name_asc"
	SortSerialAsc  SortMode = "serial_asc"
	SortSerialDesc SortMode = "serial_desc"
)

const (
	DefaultSort     = SortSerialDesc
	DefaultPageSize = 9
	MaxPageSize     = 100
)

// ParseSortMode maps user input to a SortMode. Unknown values, including the
// empty string, yield fallback.
func ParseSortMode(s string, fallback SortMode) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortNameAsc:
		return SortNameAsc
	case SortSerialAsc:
		return SortSerialAsc
	case SortSerialDesc:
		return SortSerialDesc
	default:
		return fallback
	}
}

// Valid reports whether m is one of the known modes.
func (m SortMode) Valid() bool {
	return ParseSortMode(string(m), "") != ""
}

// Spec is the filter, sort and page configuration of one query. The zero
// value matches every car on the first page in default order.
type Spec struct {
	Text         string `json:"q,omitempty"`            // case-insensitive substring of the name
	Manufacturer string `json:"manufacturer,omitempty"` // exact after trim
	Series       string `json:"series,omitempty"`
	Brand        string `json:"brand,omitempty"`
	VariantsOnly bool   `json:"variants,omitempty"` // model shared with at least one other car

	// View parameters used outside the garage grid.
	DuplicatesOnly    bool   `json:"duplicates,omitempty"` // exchange view: more than one copy
	TreasureHuntsOnly bool   `json:"th,omitempty"`
	Gifter            string `json:"gifter,omitempty"`

	Sort     SortMode `json:"sort,omitempty"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size,omitempty"`
}

// Filtered reports whether any predicate is active.
func (s Spec) Filtered() bool {
	return strings.TrimSpace(s.Text) != "" ||
		strings.TrimSpace(s.Manufacturer) != "" ||
		strings.TrimSpace(s.Series) != "" ||
		strings.TrimSpace(s.Brand) != "" ||
		strings.TrimSpace(s.Gifter) != "" ||
		s.VariantsOnly || s.DuplicatesOnly || s.TreasureHuntsOnly
}

// sameFilters compares the predicate part of two specs, ignoring sort and page.
func (s Spec) sameFilters(o Spec) bool {
	s.Sort, s.Page, s.PageSize = "", 0, 0
	o.Sort, o.Page, o.PageSize = "", 0, 0
	return s == o
}
