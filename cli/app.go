package cli

import (
	"context"

	"github.com/kochabx/vetclinic/auth"
	"github.com/kochabx/vetclinic/clientes"
	"github.com/kochabx/vetclinic/config"
	"github.com/kochabx/vetclinic/core/net/http"
	"github.com/kochabx/vetclinic/log"
	"github.com/kochabx/vetclinic/session"
	"github.com/kochabx/vetclinic/store"
)

// App wires the session manager and resource client to one configuration:
// both share the same HTTP client, hence the same base URL.
type App struct {
	Settings *config.Settings
	Logger   *log.Logger
	Store    store.Store
	Auth     *auth.Manager
	Clientes *clientes.Client
}

// NewApp opens the session store and builds the API clients
func NewApp(ctx context.Context, s *config.Settings) (*App, error) {
	logger, err := log.NewFromConfig(s.Log, log.WithComponent("vetctl"))
	if err != nil {
		return nil, err
	}

	st, err := session.Open(ctx, s.Session, logger)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	client := http.New(
		http.WithBaseURL(s.API.BaseURL),
		http.WithTimeout(s.API.Timeout),
		http.WithUserAgent(s.API.UserAgent),
		http.WithLogger(logger),
	)

	manager := auth.New(client, st, auth.WithLogger(logger))

	logger.Debug().
		Str("base_url", s.API.BaseURL).
		Str("session_driver", s.Session.Driver).
		Msg("client ready")

	return &App{
		Settings: s,
		Logger:   logger,
		Store:    st,
		Auth:     manager,
		Clientes: clientes.New(client, manager, clientes.WithLogger(logger)),
	}, nil
}

// Close releases the session store and log files
func (a *App) Close() error {
	err := a.Store.Close()
	if cerr := a.Logger.Close(); err == nil {
		err = cerr
	}
	return err
}
