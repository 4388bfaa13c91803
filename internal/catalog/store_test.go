package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"garagehub/pkg/models"
)

func car(name, serial string) models.Car {
	return models.Car{Name: name, Serial: serial, VariantID: name, Images: []string{name + ".jpg"}}
}

func names(cars []models.Car) []string {
	out := make([]string, len(cars))
	for i, c := range cars {
		out[i] = c.Name
	}
	return out
}

func TestStoreEmptyBeforeLoad(t *testing.T) {
	s := NewStore(language.English)
	snap := s.Snapshot()
	require.NotNil(t, snap)
	assert.True(t, snap.Empty())
	assert.Equal(t, []models.Car{}, s.All())
}

func TestStoreLoadDefaultOrder(t *testing.T) {
	s := NewStore(language.English)
	snap := s.Load([]models.Car{
		car("a", "5"),
		car("b", "N/A"),
		car("c", "12"),
		car("d", ""),
		car("e", "Zed"),
		car("f", "HW-7"),
	})

	assert.Equal(t, []string{"c", "f", "a", "e", "b", "d"}, names(snap.All()))
	assert.NotEmpty(t, snap.ID)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestStoreLoadReplacesContents(t *testing.T) {
	s := NewStore(language.English)
	first := s.Load([]models.Car{car("a", "1"), car("b", "2")})
	second := s.Load([]models.Car{car("z", "9")})

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []string{"z"}, names(s.All()))
	assert.Equal(t, []string{"b", "a"}, names(first.All()), "old snapshot is untouched")
}

func TestStoreLoadDoesNotAliasInput(t *testing.T) {
	input := []models.Car{car("a", "1")}
	s := NewStore(language.English)
	s.Load(input)

	input[0].Images[0] = "mutated.jpg"
	input[0].Name = "mutated"
	assert.Equal(t, "a", s.All()[0].Name)
	assert.Equal(t, "a.jpg", s.All()[0].Images[0])
}

func TestSnapshotCopyOnRead(t *testing.T) {
	s := NewStore(language.English)
	s.Load([]models.Car{car("a", "1")})

	got := s.All()
	got[0].Images[0] = "changed.jpg"
	got[0].Name = "changed"

	again := s.All()
	assert.Equal(t, "a", again[0].Name)
	assert.Equal(t, "a.jpg", again[0].Images[0])
}

func TestStoreConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	s := NewStore(language.English)
	small := []models.Car{car("a", "1")}
	large := []models.Car{car("a", "1"), car("b", "2"), car("c", "3")}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				s.Load(small)
			} else {
				s.Load(large)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			n := s.Snapshot().Len()
			assert.Contains(t, []int{0, 1, 3}, n)
		}
	}()
	wg.Wait()
}

func TestSnapshotVariantsAndRelated(t *testing.T) {
	s := NewStore(language.English)
	snap := s.Load([]models.Car{
		{Name: "GT-R blue", Model: "R34", VariantID: "v1", Serial: "3", Manufacturer: "Nissan"},
		{Name: "GT-R silver", Model: "R34", VariantID: "v2", Serial: "2", Manufacturer: "nissan"},
		{Name: "Supra", Model: "A80", VariantID: "v3", Serial: "1", Manufacturer: "Toyota"},
		{Name: "Silvia", VariantID: "v4", Serial: "4", Manufacturer: "Nissan"},
	})

	blue, ok := snap.ByVariantID("v1")
	require.True(t, ok)

	assert.True(t, snap.HasVariants("R34"))
	assert.False(t, snap.HasVariants("A80"))
	assert.False(t, snap.HasVariants(""))
	assert.Equal(t, []string{"GT-R blue", "GT-R silver"}, names(snap.Variants(blue)))

	silvia, _ := snap.ByVariantID("v4")
	assert.Empty(t, snap.Variants(silvia))

	assert.Equal(t, []string{"Silvia", "GT-R silver"}, names(snap.Related(blue, 0)))
	assert.Equal(t, []string{"Silvia"}, names(snap.Related(blue, 1)))

	supra, _ := snap.ByVariantID("v3")
	assert.Empty(t, snap.Related(supra, 10))

	_, ok = snap.ByVariantID("missing")
	assert.False(t, ok)
}

func TestSnapshotFindByName(t *testing.T) {
	s := NewStore(language.English)
	snap := s.Load([]models.Car{{Name: "Skyline GT-R", VariantID: "v1"}})

	got, ok := snap.FindByName("  skyline gt-r ")
	require.True(t, ok)
	assert.Equal(t, "v1", got.VariantID)

	_, ok = snap.FindByName("")
	assert.False(t, ok)
}

func TestSnapshotFilterOptions(t *testing.T) {
	s := NewStore(language.English)
	snap := s.Load([]models.Car{
		{Name: "a", Brand: "Matchbox", Series: "S2", Manufacturer: "Toyota"},
		{Name: "b", Brand: "Hot Wheels", Series: "S1", Manufacturer: "Nissan"},
		{Name: "c", Brand: "Hot Wheels", Manufacturer: "Toyota"},
	})

	assert.Equal(t, FilterOptions{
		Manufacturers: []string{"Nissan", "Toyota"},
		Series:        []string{"S1", "S2"},
		Brands:        []string{"Hot Wheels", "Matchbox"},
	}, snap.FilterOptions())

	empty := NewStore(language.English).Snapshot().FilterOptions()
	assert.Equal(t, []string{}, empty.Brands)
}
