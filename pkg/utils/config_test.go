package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 9, cfg.Garage.PageSize)
	assert.Equal(t, "serial_desc", cfg.Garage.DefaultSort)
	assert.Equal(t, 5*time.Second, cfg.Hero.Interval.Duration)
	assert.Equal(t, language.English, cfg.Garage.Tag())
}

func TestLoadFileLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garage.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[catalog]
source = "https://example.com/cars.json"
refresh_interval = "10m"

[garage]
page_size = 12
locale = "de"

[hero]
interval = "3s"

[brands.logos]
"Tarmac Works" = "brands/tarmac.png"
`), 0o644))

	t.Setenv("GARAGE_PAGE_SIZE", "18")
	t.Setenv("GARAGE_CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("GARAGE_HERO_AUTOPLAY", "false")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/cars.json", cfg.Catalog.Source)
	assert.Equal(t, 10*time.Minute, cfg.Catalog.RefreshInterval.Duration)
	assert.Equal(t, 18, cfg.Garage.PageSize, "env wins over file")
	assert.Equal(t, language.German, cfg.Garage.Tag())
	assert.Equal(t, 3*time.Second, cfg.Hero.Interval.Duration)
	assert.False(t, cfg.Hero.Autoplay)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)

	assert.Equal(t, "brands/tarmac.png", cfg.Brands.BrandLogo("Tarmac Works"))
	assert.Equal(t, "brands/hotwheels.png", cfg.Brands.BrandLogo(" Hot Wheels "), "defaults are merged")
	assert.Equal(t, "brands/default.png", cfg.Brands.BrandLogo("Unknown"))
}

func TestLoadFileRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"page size", map[string]string{"GARAGE_PAGE_SIZE": "0"}, "PageSize"},
		{"sort", map[string]string{"GARAGE_DEFAULT_SORT": "random"}, "DefaultSort"},
		{"log level", map[string]string{"GARAGE_LOG_LEVEL": "loud"}, "Level"},
		{"public url", map[string]string{"GARAGE_PUBLIC_URL": "not a url"}, "PublicURL"},
		{"locale", map[string]string{"GARAGE_LOCALE": "!!"}, "Locale"},
		{"bad number", map[string]string{"GARAGE_LOAD_ATTEMPTS": "three"}, "GARAGE_LOAD_ATTEMPTS"},
		{"bad duration", map[string]string{"GARAGE_HERO_INTERVAL": "soon"}, "GARAGE_HERO_INTERVAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFile("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
