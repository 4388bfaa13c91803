package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"garagehub/internal/catalog"
	"garagehub/pkg/models"
)

func names(cars []models.Car) []string {
	out := make([]string, len(cars))
	for i, c := range cars {
		out[i] = c.Name
	}
	return out
}

func fixture() []models.Car {
	return []models.Car{
		{Name: "a", Brand: "Hot Wheels", Manufacturer: "Nissan", Series: "S1", Gifter: "Sam", Ownership: models.Ownership{Quantity: 3}},
		{Name: "b", Brand: "Matchbox", Manufacturer: "Toyota", Series: "S1", TreasureHunt: true},
		{Name: "c", Brand: " ", Manufacturer: "Nissan", Gifter: "Ana"},
		{Name: "d", Brand: "Matchbox", Manufacturer: "", Series: "S2", Gifter: "Ana", Ownership: models.Ownership{Quantity: 2}},
		{Name: "e", Brand: "Hot Wheels", Gifter: "Sam"},
		{Name: "f", Brand: "", Gifter: "Lee", TreasureHunt: true},
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{
		Items:         6,
		TotalOwned:    3 + 1 + 1 + 2 + 1 + 1,
		Manufacturers: 2,
		Series:        2,
		Brands:        2,
		TreasureHunts: 2,
	}, Summarize(fixture()))

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestTopBrands(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []Count
	}{
		{"all, ties in first-seen order", 10, []Count{{"Hot Wheels", 2}, {"Matchbox", 2}, {UnknownBrand, 2}}},
		{"limited", 1, []Count{{"Hot Wheels", 2}}},
		{"zero", 0, []Count{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopBrands(fixture(), tt.n))
		})
	}
}

func TestTopGifters(t *testing.T) {
	top := TopGifters(fixture(), 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Sam", top[0].Name)
	assert.Equal(t, 2, top[0].Count)
	assert.Equal(t, []string{"a", "e"}, names(top[0].Cars))
	assert.Equal(t, "Ana", top[1].Name)

	assert.Empty(t, TopGifters([]models.Car{{Name: "x"}}, 3))
}

func TestViewLists(t *testing.T) {
	cars := fixture()
	assert.Equal(t, []string{"b", "f"}, names(TreasureHunts(cars)))
	assert.Equal(t, []string{"a", "d"}, names(Exchange(cars)))
	assert.Equal(t, []string{"a", "b", "c"}, names(Recent(cars, 3)))
	assert.Equal(t, []string{"c", "d"}, names(GiftsFrom(cars, " Ana ")))
	assert.Empty(t, GiftsFrom(cars, ""))
	assert.Equal(t, []models.Car{}, Recent(nil, 3))
}

func TestBuildDashboard(t *testing.T) {
	store := catalog.NewStore(language.English)
	empty := BuildDashboard(store.Snapshot(), Limits{})
	assert.True(t, empty.Empty)
	assert.Empty(t, empty.HallOfFame)

	cars := fixture()
	cars[4].Featured = true
	snap := store.Load(cars)

	d := BuildDashboard(snap, Limits{TopBrands: 2})
	assert.False(t, d.Empty)
	assert.Equal(t, snap.ID, d.SnapshotID)
	assert.Len(t, d.TopBrands, 2)
	assert.Len(t, d.TopGifters, DefaultLimits.TopGifters)
	assert.Len(t, d.Recent, DefaultLimits.Recent)
	require.Len(t, d.HallOfFame, 3)
	assert.Equal(t, "e", d.HallOfFame[0].Name)
	for _, c := range d.HallOfFame[1:] {
		assert.False(t, c.TreasureHunt)
	}
}
