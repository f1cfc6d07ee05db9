package cli

import (
	"errors"
	"fmt"

	"photogrip/internal/api"
	"photogrip/internal/config"
	"photogrip/internal/eventbus"
	"photogrip/internal/guests"
	"photogrip/internal/identity"
	"photogrip/internal/logging"
	"photogrip/internal/photos"
	"photogrip/internal/share"
	"photogrip/internal/store"
	"photogrip/internal/ui/adapters"
	"photogrip/internal/ui/services/actions"
)

// App holds the services every command runs against
type App struct {
	Config   *config.Config
	Log      logging.Logger
	Bus      *eventbus.Bus
	Store    *store.Store
	Client   *api.Client
	Source   *photos.Source
	Identity *identity.GoogleTokenProvider
	Guests   *guests.Counter
}

// clipboard receives link lists when no share directory is configured
var clipboard actions.Clipboard = share.Clipboard{}

// openApp loads the configuration and builds the services
var openApp = func(opts *rootOptions) (*App, error) {
	cfg, _, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	return newApp(cfg)
}

func newApp(cfg *config.Config) (*App, error) {
	log, err := logging.Open(logging.Config{
		Enabled: cfg.Log.Enabled,
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}
	logging.SetGlobal(log)

	st, err := store.Open(cfg.CachePath)
	if err != nil {
		_ = log.Shutdown()
		return nil, err
	}

	bus := eventbus.New(log)
	client := api.New(api.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.HTTPTimeout.Duration,
		Tokens:  st,
		Logger:  log,
	})

	provider := identity.NewGoogleTokenProvider(client)
	if err := provider.Initialize(identity.Config{ClientID: cfg.GoogleClientID}); err != nil {
		bus.Close()
		_ = st.Close()
		_ = log.Shutdown()
		return nil, fmt.Errorf("identity provider: %w", err)
	}

	log.Info("photogrip starting", "api_url", cfg.APIURL, "cache", cfg.CachePath, "log_file", logging.CurrentLogFile())

	return &App{
		Config: cfg,
		Log:    log,
		Bus:    bus,
		Store:  st,
		Client: client,
		Source: photos.NewSource(photos.Options{
			API:     client,
			Cache:   st,
			Bus:     bus,
			IsAdmin: cfg.IsAdmin,
			Logger:  log,
		}),
		Identity: provider,
		Guests:   guests.NewCounter(cfg.WSURL, guests.Options{Logger: log}),
	}, nil
}

// Controller builds a bulk action controller over the app's services
func (a *App) Controller(onBusy func(actions.BusyState)) *actions.Controller {
	return actions.NewController(actions.Options{
		Source:    a.Source,
		Deleter:   a.Client,
		Fetcher:   adapters.NewBlobFetcher(a.Client),
		Sharer:    share.NewDirSharer(a.Config.ShareDir, a.Log),
		Clipboard: clipboard,
		OnBusy:    onBusy,
		Logger:    a.Log,
	})
}

// Close releases the bus, the store and the log file
func (a *App) Close() error {
	a.Bus.Close()
	return errors.Join(a.Store.Close(), a.Log.Shutdown())
}
