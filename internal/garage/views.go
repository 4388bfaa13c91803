package garage

import (
	"errors"
	"net/url"
	"strings"

	"garagehub/internal/catalog"
	"garagehub/internal/query"
	"garagehub/internal/stats"
	"garagehub/pkg/models"
	"garagehub/pkg/utils"
)

// ErrNotFound is returned when no car matches the requested id or name.
var ErrNotFound = errors.New("car not found")

// Settings are the presentation inputs the views need from configuration.
type Settings struct {
	RelatedLimit int
	Limits       stats.Limits
	Brands       utils.BrandConfig
	Home         utils.HomeConfig
	PublicURL    string
}

// SettingsFromConfig extracts view settings from cfg.
func SettingsFromConfig(cfg utils.Config) Settings {
	return Settings{
		RelatedLimit: cfg.Garage.RelatedLimit,
		Limits: stats.Limits{
			TopBrands:  cfg.Home.TopBrands,
			TopGifters: cfg.Home.TopGifters,
			Recent:     cfg.Home.Recent,
			HallOfFame: cfg.Home.HallOfFame,
		},
		Brands:    cfg.Brands,
		Home:      cfg.Home,
		PublicURL: cfg.Server.PublicURL,
	}
}

// Views computes read-only view models from the current catalog snapshot.
// Every call works on one snapshot, so a concurrent reload never mixes two
// catalogs in one response.
type Views struct {
	store    *catalog.Store
	engine   *query.Engine
	settings Settings
}

func NewViews(store *catalog.Store, engine *query.Engine, settings Settings) *Views {
	if settings.RelatedLimit <= 0 {
		settings.RelatedLimit = catalog.DefaultRelatedLimit
	}
	return &Views{store: store, engine: engine, settings: settings}
}

func (v *Views) Engine() *query.Engine { return v.engine }

func (v *Views) Snapshot() *catalog.Snapshot { return v.store.Snapshot() }

// Card is a car as shown in a grid.
type Card struct {
	Car         models.Car `json:"car"`
	Image       string     `json:"image"`
	BrandLogo   string     `json:"brand_logo"`
	Copies      int        `json:"copies"` // shown as a badge when above one
	HasVariants bool       `json:"has_variants"`
}

// CarsPage is one page of a grid.
type CarsPage struct {
	SnapshotID string     `json:"snapshot_id"`
	Spec       query.Spec `json:"spec"`
	Items      []Card     `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	Pages      int        `json:"pages"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
	NoResults  bool       `json:"no_results"`
	Summary    string     `json:"summary"`
	HasNext    bool       `json:"has_next"`
	HasPrev    bool       `json:"has_prev"`
}

// Cars runs spec against the current snapshot.
func (v *Views) Cars(spec query.Spec) CarsPage {
	snap := v.store.Snapshot()
	spec = v.engine.Normalize(spec)
	page := v.engine.Query(snap, spec)
	spec.Page = page.Page

	items := make([]Card, 0, len(page.Items))
	for _, c := range page.Items {
		items = append(items, v.card(snap, c))
	}
	return CarsPage{
		SnapshotID: snap.ID,
		Spec:       spec,
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Pages:      page.Pages,
		Start:      page.Start,
		End:        page.End,
		NoResults:  page.NoResults,
		Summary:    page.Summary(),
		HasNext:    page.HasNext(),
		HasPrev:    page.HasPrev(),
	}
}

// Exchange is the grid of cars owned more than once.
func (v *Views) Exchange(spec query.Spec) CarsPage {
	spec.DuplicatesOnly = true
	return v.Cars(spec)
}

func (v *Views) card(snap *catalog.Snapshot, c models.Car) Card {
	return Card{
		Car:         c,
		Image:       v.image(c),
		BrandLogo:   v.settings.Brands.BrandLogo(c.Brand),
		Copies:      c.Quantity(),
		HasVariants: snap.HasVariants(c.Model),
	}
}

func (v *Views) image(c models.Car) string {
	if img := c.BestImage(); img != "" {
		return img
	}
	return v.settings.Brands.Placeholder
}

// VariantLink is one entry of the variant strip in the details view.
type VariantLink struct {
	VariantID string `json:"variant_id"`
	Label     string `json:"label"`
	Image     string `json:"image"`
	Active    bool   `json:"active"`
}

// Details is the details modal of one car.
type Details struct {
	Car       models.Car    `json:"car"`
	Images    []string      `json:"images"`
	BestImage string        `json:"best_image"`
	BrandLogo string        `json:"brand_logo"`
	Copies    int           `json:"copies"`
	Variants  []VariantLink `json:"variants"`
	Related   []Card        `json:"related"`
	ShareURL  string        `json:"share_url"`
}

// Details looks a car up by variant id.
func (v *Views) Details(variantID string) (Details, error) {
	snap := v.store.Snapshot()
	c, ok := snap.ByVariantID(variantID)
	if !ok {
		return Details{}, ErrNotFound
	}
	return v.details(snap, c), nil
}

// Share resolves a share link, which addresses a car by name.
func (v *Views) Share(name string) (Details, error) {
	snap := v.store.Snapshot()
	c, ok := snap.FindByName(name)
	if !ok {
		return Details{}, ErrNotFound
	}
	return v.details(snap, c), nil
}

func (v *Views) details(snap *catalog.Snapshot, c models.Car) Details {
	images := c.Images
	if len(images) == 0 {
		images = []string{v.settings.Brands.Placeholder}
	}

	variants := []VariantLink{}
	siblings := snap.Variants(c)
	if len(siblings) > 1 {
		for _, s := range siblings {
			variants = append(variants, VariantLink{
				VariantID: s.VariantID,
				Label:     s.VariantLabel(),
				Image:     v.image(s),
				Active:    s.VariantID == c.VariantID,
			})
		}
	}

	related := []Card{}
	for _, r := range snap.Related(c, v.settings.RelatedLimit) {
		related = append(related, v.card(snap, r))
	}

	return Details{
		Car:       c,
		Images:    images,
		BestImage: v.image(c),
		BrandLogo: v.settings.Brands.BrandLogo(c.Brand),
		Copies:    c.Quantity(),
		Variants:  variants,
		Related:   related,
		ShareURL:  v.ShareURL(c),
	}
}

// ShareURL builds the link that reopens c's details.
func (v *Views) ShareURL(c models.Car) string {
	base := strings.TrimRight(v.settings.PublicURL, "/")
	return base + "/?" + url.Values{"car": {c.Name}}.Encode()
}

// Filters lists the dropdown values of the garage view.
func (v *Views) Filters() catalog.FilterOptions {
	return v.store.Snapshot().FilterOptions()
}

// BrandRow is a top brand with its logo.
type BrandRow struct {
	stats.Count
	Logo string `json:"logo"`
}

// Home is the home dashboard view.
type Home struct {
	stats.Dashboard
	TopBrands []BrandRow       `json:"top_brands"`
	Sections  utils.HomeConfig `json:"sections"`
}

func (v *Views) Home() Home {
	d := stats.BuildDashboard(v.store.Snapshot(), v.settings.Limits)
	rows := make([]BrandRow, 0, len(d.TopBrands))
	for _, b := range d.TopBrands {
		rows = append(rows, BrandRow{Count: b, Logo: v.settings.Brands.BrandLogo(b.Name)})
	}
	return Home{Dashboard: d, TopBrands: rows, Sections: v.settings.Home}
}

// Gifts is the gifter modal.
type Gifts struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Count int    `json:"count"`
	Cars  []Card `json:"cars"`
}

func (v *Views) Gifts(name string) (Gifts, error) {
	snap := v.store.Snapshot()
	name = strings.TrimSpace(name)
	cars := stats.GiftsFrom(snap.All(), name)
	if len(cars) == 0 {
		return Gifts{}, ErrNotFound
	}
	cards := make([]Card, 0, len(cars))
	for _, c := range cars {
		cards = append(cards, v.card(snap, c))
	}
	return Gifts{Name: name, Title: "Gifts from " + name, Count: len(cards), Cars: cards}, nil
}
