package garage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"garagehub/internal/catalog"
	"garagehub/internal/loader"
	"garagehub/internal/query"
	hubsync "garagehub/internal/sync"
	"garagehub/pkg/utils"
)

const garageDoc = `[
	{"name": "Skyline GT-R", "model": "R34", "variantId": "r34-blue", "serial": "12", "Colour": "Blue", "year": 1999,
	 "brand": "Hot Wheels", "Manufacture": "Nissan", "series": "J-Imports", "images": "a.jpg,b.jpg", "Gifter": "Sam", "featured": true},
	{"name": "Skyline GT-R", "model": "R34", "variantId": "r34-silver", "serial": "7", "Colour": "Silver",
	 "brand": "Hot Wheels", "Manufacture": "Nissan", "ownership": {"quantity": 3}},
	{"name": "Supra", "model": "A80", "variantId": "a80", "serial": "N/A", "brand": "Tarmac", "Manufacture": "Toyota",
	 "isTreasurehunt": true, "Gifter": "Sam"},
	{"name": "Silvia", "variantId": "s15", "serial": "3", "brand": "Matchbox", "Manufacture": "Nissan", "featuredImage": "silvia.jpg"}
]`

type fixture struct {
	router *gin.Engine
	path   string
	loader *loader.Loader
}

func newFixture(t *testing.T, load bool) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "cars.json")
	require.NoError(t, os.WriteFile(path, []byte(garageDoc), 0o644))

	cfg := utils.Default()
	store := catalog.NewStore(language.English)
	hub := hubsync.NewHub()
	l := loader.New(store, loader.NewFileSource(path), hub, loader.Options{Attempts: 1})
	if load {
		_, err := l.Load(context.Background())
		require.NoError(t, err)
	}

	engine := query.NewEngine(query.Options{PageSize: 2, Locale: language.English})
	views := NewViews(store, engine, SettingsFromConfig(cfg))
	return fixture{router: NewRouter(NewHandler(views, l), hub), path: path, loader: l}
}

func (f fixture) do(t *testing.T, method, target string, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	f.router.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestCarsEndpoint(t *testing.T) {
	f := newFixture(t, true)

	tests := []struct {
		name    string
		target  string
		want    []string
		total   int
		summary string
	}{
		{"default page", "/cars", []string{"r34-blue", "r34-silver"}, 4, "1–2 of 4"},
		{"second page", "/cars?page=1", []string{"s15", "a80"}, 4, "3–4 of 4"},
		{"page past end clamps", "/cars?page=40", []string{"s15", "a80"}, 4, "3–4 of 4"},
		{"bad values fall back", "/cars?page=x&sort=nope&page_size=-3", []string{"r34-blue", "r34-silver"}, 4, "1–2 of 4"},
		{"serial asc", "/cars?sort=serial_asc&page_size=10", []string{"s15", "r34-silver", "r34-blue", "a80"}, 4, "1–4 of 4"},
		{"variants only", "/cars?variants=true", []string{"r34-blue", "r34-silver"}, 2, "1–2 of 2"},
		{"manufacturer and text", "/cars?manufacturer=Nissan&q=silv", []string{"s15"}, 1, "1–1 of 1"},
		{"treasure hunts", "/cars?th=1", []string{"a80"}, 1, "1–1 of 1"},
		{"gifter", "/cars?gifter=Sam", []string{"r34-blue", "a80"}, 2, "1–2 of 2"},
		{"no results", "/cars?brand=Nobody", []string{}, 0, "No cars found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var page CarsPage
			require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, tt.target, &page))

			ids := []string{}
			for _, c := range page.Items {
				ids = append(ids, c.Car.VariantID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.summary, page.Summary)
			assert.Equal(t, tt.total == 0, page.NoResults)
		})
	}
}

func TestCardsCarPresentation(t *testing.T) {
	f := newFixture(t, true)

	var page CarsPage
	f.do(t, http.MethodGet, "/cars?page_size=10", &page)
	byID := map[string]Card{}
	for _, c := range page.Items {
		byID[c.Car.VariantID] = c
	}

	assert.Equal(t, "a.jpg", byID["r34-blue"].Image)
	assert.Equal(t, "silvia.jpg", byID["s15"].Image)
	assert.Equal(t, "images/default_placeholder.webp", byID["a80"].Image)
	assert.Equal(t, "brands/hotwheels.png", byID["r34-blue"].BrandLogo)
	assert.Equal(t, "brands/default.png", byID["a80"].BrandLogo)
	assert.Equal(t, 3, byID["r34-silver"].Copies)
	assert.True(t, byID["r34-blue"].HasVariants)
	assert.False(t, byID["s15"].HasVariants)
}

func TestDetailsEndpoint(t *testing.T) {
	f := newFixture(t, true)

	var d Details
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/cars/r34-blue", &d))
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, d.Images)
	assert.Equal(t, 1, d.Copies)
	require.Len(t, d.Variants, 2)
	assert.Equal(t, VariantLink{VariantID: "r34-blue", Label: "Blue · 1999", Image: "a.jpg", Active: true}, d.Variants[0])
	assert.False(t, d.Variants[1].Active)
	assert.Equal(t, "http://localhost:8080/?car=Skyline+GT-R", d.ShareURL)

	related := []string{}
	for _, c := range d.Related {
		related = append(related, c.Car.VariantID)
	}
	assert.Equal(t, []string{"r34-silver", "s15"}, related)

	var solo Details
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/cars/a80", &solo))
	assert.Empty(t, solo.Variants)
	assert.Equal(t, []string{"images/default_placeholder.webp"}, solo.Images)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/cars/missing", nil))
}

func TestShareEndpoint(t *testing.T) {
	f := newFixture(t, true)

	var d Details
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/share?car=skyline+gt-r", &d))
	assert.Equal(t, "r34-blue", d.Car.VariantID)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/share?car=Nope", nil))
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/share", nil))
}

func TestHomeExchangeFiltersGifts(t *testing.T) {
	f := newFixture(t, true)

	var home Home
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/home", &home))
	assert.Equal(t, 4, home.Summary.Items)
	assert.Equal(t, 6, home.Summary.TotalOwned)
	assert.Equal(t, 1, home.Summary.TreasureHunts)
	require.NotEmpty(t, home.TopBrands)
	assert.Equal(t, "Hot Wheels", home.TopBrands[0].Name)
	assert.Equal(t, "brands/hotwheels.png", home.TopBrands[0].Logo)
	require.Len(t, home.HallOfFame, 3)
	assert.Equal(t, "r34-blue", home.HallOfFame[0].VariantID)
	assert.True(t, home.Sections.ShowHero)

	var ex CarsPage
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/exchange", &ex))
	require.Len(t, ex.Items, 1)
	assert.Equal(t, "r34-silver", ex.Items[0].Car.VariantID)
	assert.True(t, ex.Spec.DuplicatesOnly)

	var opts catalog.FilterOptions
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/filters", &opts))
	assert.Equal(t, []string{"Nissan", "Toyota"}, opts.Manufacturers)
	assert.Equal(t, []string{"Hot Wheels", "Matchbox", "Tarmac"}, opts.Brands)

	var gifts Gifts
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/gifters/Sam", &gifts))
	assert.Equal(t, "Gifts from Sam", gifts.Title)
	assert.Equal(t, 2, gifts.Count)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/gifters/Nobody", nil))
}

func TestReadyAndRefresh(t *testing.T) {
	f := newFixture(t, false)

	assert.Equal(t, http.StatusServiceUnavailable, f.do(t, http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/health", nil))

	var ok struct {
		SnapshotID string        `json:"snapshot_id"`
		Items      int           `json:"items"`
		Status     loader.Status `json:"status"`
	}
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/catalog/refresh", &ok))
	assert.Equal(t, 4, ok.Items)
	assert.Equal(t, loader.StateReady, ok.Status.State)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/ready", nil))

	require.NoError(t, os.WriteFile(f.path, []byte(`{"broken": true}`), 0o644))
	var failed struct {
		Error  string        `json:"error"`
		Status loader.Status `json:"status"`
	}
	require.Equal(t, http.StatusBadGateway, f.do(t, http.MethodPost, "/catalog/refresh", &failed))
	assert.Contains(t, failed.Error, "invalid catalog document")
	assert.Equal(t, loader.StateError, failed.Status.State)
	assert.Equal(t, ok.SnapshotID, failed.Status.SnapshotID, "previous snapshot kept")

	var st loader.Status
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/catalog/status", &st))
	assert.Equal(t, loader.StateError, st.State)

	var page CarsPage
	f.do(t, http.MethodGet, "/cars", &page)
	assert.Equal(t, 4, page.Total, "still serving the previous catalog")
}

func TestWithCORS(t *testing.T) {
	f := newFixture(t, true)
	h := WithCORS(f.router, []string{"http://front.test"})

	req := httptest.NewRequest(http.MethodGet, "/filters", nil)
	req.Header.Set("Origin", "http://front.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://front.test", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/filters", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
