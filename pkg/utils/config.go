package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// Duration is a time.Duration written as "5s" in config files.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type CatalogConfig struct {
	Source          string   `toml:"source" validate:"required"`
	Attempts        int      `toml:"attempts" validate:"min=1,max=10"`
	Backoff         Duration `toml:"backoff"`
	Timeout         Duration `toml:"timeout"`
	RefreshInterval Duration `toml:"refresh_interval"` // zero disables periodic reloads
	Watch           bool     `toml:"watch"`
	QuantityCap     int      `toml:"quantity_cap" validate:"min=0"`
}

type GarageConfig struct {
	PageSize     int    `toml:"page_size" validate:"min=1,max=100"`
	DefaultSort  string `toml:"default_sort" validate:"oneof=name_asc serial_asc serial_desc"`
	RelatedLimit int    `toml:"related_limit" validate:"min=1"`
	Locale       string `toml:"locale" validate:"required,locale"`
}

// Tag returns the collation locale, English when unparsable.
func (g GarageConfig) Tag() language.Tag {
	tag, err := language.Parse(g.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

type HomeConfig struct {
	TopBrands  int `toml:"top_brands" validate:"min=1"`
	TopGifters int `toml:"top_gifters" validate:"min=1"`
	Recent     int `toml:"recent" validate:"min=1"`
	HallOfFame int `toml:"hall_of_fame" validate:"min=1"`

	ShowHero          bool `toml:"show_hero" json:"show_hero"`
	ShowStats         bool `toml:"show_stats" json:"show_stats"`
	ShowTopBrands     bool `toml:"show_top_brands" json:"show_top_brands"`
	ShowRecent        bool `toml:"show_recent" json:"show_recent"`
	ShowTopGifters    bool `toml:"show_top_gifters" json:"show_top_gifters"`
	ShowTreasureHunts bool `toml:"show_treasure_hunts" json:"show_treasure_hunts"`
}

type HeroConfig struct {
	Autoplay         bool     `toml:"autoplay"`
	Interval         Duration `toml:"interval"`
	PauseOnHover     bool     `toml:"pause_on_hover"`
	MobileBreakpoint int      `toml:"mobile_breakpoint" validate:"min=0"`
}

type ServerConfig struct {
	HTTPAddr    string   `toml:"http_addr" validate:"required"`
	TCPAddr     string   `toml:"tcp_addr" validate:"required"`
	GRPCAddr    string   `toml:"grpc_addr" validate:"required"`
	MirrorAddr  string   `toml:"mirror_addr" validate:"required"`
	PublicURL   string   `toml:"public_url" validate:"required,url"`
	CORSOrigins []string `toml:"cors_origins"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Pretty bool   `toml:"pretty"`
}

type BrandConfig struct {
	Logos       map[string]string `toml:"logos"`
	DefaultLogo string            `toml:"default_logo"`
	Placeholder string            `toml:"placeholder"`
}

// Config is the full application configuration.
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Garage  GarageConfig  `toml:"garage"`
	Home    HomeConfig    `toml:"home"`
	Hero    HeroConfig    `toml:"hero"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
	Brands  BrandConfig   `toml:"brands"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Catalog: CatalogConfig{
			Source:   "cars.json",
			Attempts: 3,
			Backoff:  Duration{500 * time.Millisecond},
			Timeout:  Duration{12 * time.Second},
		},
		Garage: GarageConfig{
			PageSize:     9,
			DefaultSort:  "serial_desc",
			RelatedLimit: 50,
			Locale:       "en",
		},
		Home: HomeConfig{
			TopBrands:         5,
			TopGifters:        3,
			Recent:            3,
			HallOfFame:        3,
			ShowHero:          true,
			ShowStats:         true,
			ShowTopBrands:     true,
			ShowRecent:        true,
			ShowTopGifters:    true,
			ShowTreasureHunts: true,
		},
		Hero: HeroConfig{
			Autoplay:         true,
			Interval:         Duration{5 * time.Second},
			PauseOnHover:     true,
			MobileBreakpoint: 800,
		},
		Server: ServerConfig{
			HTTPAddr:   ":8080",
			TCPAddr:    ":7070",
			GRPCAddr:   ":9091",
			MirrorAddr: ":9000",
			PublicURL:  "http://localhost:8080",
		},
		Log: LogConfig{Level: "info", Pretty: true},
		Brands: BrandConfig{
			Logos: map[string]string{
				"Hot Wheels": "brands/hotwheels.png",
				"Matchbox":   "brands/matchbox.png",
				"Majorette":  "brands/majorette.png",
				"Tomica":     "brands/tomica.png",
				"Maisto":     "brands/maisto.png",
				"Greenlight": "brands/greenlight.png",
				"Jada":       "brands/jada.png",
				"Welly":      "brands/welly.png",
				"Kinsmart":   "brands/kinsmart.png",
				"CCA":        "brands/cca.png",
			},
			DefaultLogo: "brands/default.png",
			Placeholder: "images/default_placeholder.webp",
		},
	}
}

// BrandLogo returns the logo for brand, or the default logo.
func (b BrandConfig) BrandLogo(brand string) string {
	if logo, ok := b.Logos[strings.TrimSpace(brand)]; ok && logo != "" {
		return logo
	}
	return b.DefaultLogo
}

// Load reads .env, then the TOML file named by GARAGE_CONFIG, then GARAGE_*
// environment overrides, and validates the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Str("component", "config").Msg("reading .env")
	}
	return LoadFile(os.Getenv("GARAGE_CONFIG"))
}

// MustLoad is Load for main packages.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal().Err(err).Str("component", "config").Msg("invalid configuration")
	}
	return cfg
}

// LoadFile layers the TOML file at path (if any) and the environment over
// the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			log.Warn().Str("component", "config").Str("file", path).
				Interface("keys", undecoded).Msg("unknown config keys ignored")
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		_, err := language.Parse(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks ranges and enumerations.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}
	dur := func(key string, dst *Duration) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
			}
		}
	}

	str("GARAGE_SOURCE", &cfg.Catalog.Source)
	num("GARAGE_LOAD_ATTEMPTS", &cfg.Catalog.Attempts)
	dur("GARAGE_LOAD_BACKOFF", &cfg.Catalog.Backoff)
	dur("GARAGE_REFRESH_INTERVAL", &cfg.Catalog.RefreshInterval)
	flag("GARAGE_WATCH", &cfg.Catalog.Watch)
	num("GARAGE_QUANTITY_CAP", &cfg.Catalog.QuantityCap)

	num("GARAGE_PAGE_SIZE", &cfg.Garage.PageSize)
	str("GARAGE_DEFAULT_SORT", &cfg.Garage.DefaultSort)
	str("GARAGE_LOCALE", &cfg.Garage.Locale)

	flag("GARAGE_HERO_AUTOPLAY", &cfg.Hero.Autoplay)
	dur("GARAGE_HERO_INTERVAL", &cfg.Hero.Interval)

	str("GARAGE_HTTP_ADDR", &cfg.Server.HTTPAddr)
	str("GARAGE_TCP_ADDR", &cfg.Server.TCPAddr)
	str("GARAGE_GRPC_ADDR", &cfg.Server.GRPCAddr)
	str("GARAGE_MIRROR_ADDR", &cfg.Server.MirrorAddr)
	str("GARAGE_PUBLIC_URL", &cfg.Server.PublicURL)
	if v := os.Getenv("GARAGE_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}

	str("GARAGE_LOG_LEVEL", &cfg.Log.Level)
	flag("GARAGE_LOG_PRETTY", &cfg.Log.Pretty)

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
