package garage

import (
	"context"

	"garagehub/internal/catalog"
	"garagehub/internal/loader"
	"garagehub/internal/query"
	hubsync "garagehub/internal/sync"
	"garagehub/pkg/utils"
)

// App is the catalog wiring shared by the servers.
type App struct {
	Config utils.Config
	Source loader.Source
	Store  *catalog.Store
	Loader *loader.Loader
	Views  *Views
	Hub    *hubsync.Hub
}

// NewApp builds the store, loader and views from cfg. hub may be nil when
// nothing listens for reloads.
func NewApp(cfg utils.Config, hub *hubsync.Hub) *App {
	locale := cfg.Garage.Tag()
	store := catalog.NewStore(locale)
	source := loader.NewSource(cfg.Catalog.Source, cfg.Catalog.Timeout.Duration)

	var pub loader.Publisher
	if hub != nil {
		pub = hub
	}
	l := loader.New(store, source, pub, loader.Options{
		Attempts:    cfg.Catalog.Attempts,
		Backoff:     cfg.Catalog.Backoff.Duration,
		QuantityCap: cfg.Catalog.QuantityCap,
	})

	engine := query.NewEngine(query.Options{
		PageSize:    cfg.Garage.PageSize,
		DefaultSort: query.SortMode(cfg.Garage.DefaultSort),
		Locale:      locale,
	})
	return &App{
		Config: cfg,
		Source: source,
		Store:  store,
		Loader: l,
		Views:  NewViews(store, engine, SettingsFromConfig(cfg)),
		Hub:    hub,
	}
}

// Handler returns the HTTP handler of the view routes.
func (a *App) Handler() *Handler {
	return NewHandler(a.Views, a.Loader)
}

// Watcher returns a file watcher for the catalog when watching is enabled
// and the source is a local file, nil otherwise.
func (a *App) Watcher() (*loader.Watcher, error) {
	fs, ok := a.Source.(*loader.FileSource)
	if !a.Config.Catalog.Watch || !ok {
		return nil, nil
	}
	return loader.WatchLoader(a.Loader, fs.Path, loader.DefaultDebounce)
}

// Background reloads the catalog on the configured interval until ctx is
// done. Errors are recorded in the loader status.
func (a *App) Background(ctx context.Context) error {
	return a.Loader.Run(ctx, a.Config.Catalog.RefreshInterval.Duration)
}
