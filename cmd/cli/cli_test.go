package main

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"garagehub/internal/catalog"
	"garagehub/internal/hero"
	"garagehub/internal/query"
	"garagehub/pkg/models"
)

var fleet = []models.Car{
	{VariantID: "a", Name: "Aventador", Serial: "3", Manufacturer: "Lamborghini"},
	{VariantID: "b", Name: "Beetle", Serial: "2", Manufacturer: "VW"},
	{VariantID: "c", Name: "Corvette", Serial: "1", Manufacturer: "Chevrolet"},
}

func browser() (*query.Browser, *catalog.Store) {
	store := catalog.NewStore(language.English)
	store.Load(fleet)
	return query.NewBrowser(query.NewEngine(query.Options{PageSize: 2}), store), store
}

func noReload() error { return nil }

func TestRunBrowse(t *testing.T) {
	b, _ := browser()
	var out bytes.Buffer
	in := strings.NewReader("n\nn\nm VW\nsort bogus\n/ zzz\nq\n")
	require.NoError(t, runBrowse(b, noReload, in, &out))

	text := out.String()
	assert.Contains(t, text, "1–2 of 3")
	assert.Contains(t, text, "3–3 of 3")
	assert.Contains(t, text, "last page")
	assert.Contains(t, text, "manufacturer=VW")
	assert.Contains(t, text, `unknown sort "bogus"`)
	assert.Contains(t, text, "No cars found")
}

func TestRunBrowseRefresh(t *testing.T) {
	b, store := browser()
	reloads := 0
	reload := func() error {
		reloads++
		if reloads == 2 {
			return errors.New("offline")
		}
		store.Load(append(slices.Clone(fleet), models.Car{VariantID: "d", Name: "Delorean", Serial: "4"}))
		return nil
	}

	var out bytes.Buffer
	in := strings.NewReader("m VW\nrefresh\nrefresh\nq\n")
	require.NoError(t, runBrowse(b, reload, in, &out))

	text := out.String()
	assert.Equal(t, 2, reloads)
	assert.Contains(t, text, "1–1 of 1")
	assert.Contains(t, text, "1–2 of 4", "filters reset against the reloaded catalog")
	assert.Contains(t, text, "refresh failed: offline")
	assert.Empty(t, b.Spec().Manufacturer)
}

func TestRunHeroRebuild(t *testing.T) {
	c := hero.NewCarousel(fleet[:2], hero.Options{})
	rebuilt := []models.Car{{VariantID: "z", Name: "Zonda"}}
	calls := 0
	rebuild := func() ([]models.Car, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("offline")
		}
		return rebuilt, nil
	}

	var out bytes.Buffer
	require.NoError(t, runHero(c, false, rebuild, strings.NewReader("n\nr\nr\nq\n"), &out))

	text := out.String()
	assert.Contains(t, text, "(1/2) Aventador")
	assert.Contains(t, text, "refresh failed: offline")
	assert.Contains(t, text, "(1/1) Zonda")
	assert.Equal(t, 1, c.Len())
	assert.False(t, c.Running())
}

func TestRunHeroStartsCompact(t *testing.T) {
	c := hero.NewCarousel(fleet, hero.Options{Autoplay: true, Interval: time.Hour})
	var out bytes.Buffer
	require.NoError(t, runHero(c, true, nil, strings.NewReader("h\nc\nq\n"), &out))

	text := out.String()
	assert.Contains(t, text, "hover true, autoplay running false")
	assert.Contains(t, text, "compact false, autoplay running true")
	assert.False(t, c.Running(), "stopped on quit")
}

func TestCompactFor(t *testing.T) {
	tests := []struct {
		width, breakpoint int
		want              bool
	}{
		{0, 800, false},
		{375, 800, true},
		{800, 800, true},
		{1280, 800, false},
		{375, 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, compactFor(tt.width, tt.breakpoint), "width %d breakpoint %d", tt.width, tt.breakpoint)
	}
}

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://localhost:8080", "ws://localhost:8080/ws"},
		{"https://garage.example/app", "wss://garage.example/ws"},
	}
	for _, tt := range tests {
		got, err := websocketURL(tt.base, "/ws")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
