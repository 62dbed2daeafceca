package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/vkuzmenko/profcli/internal/client/api"
	"github.com/vkuzmenko/profcli/internal/client/client"
	"github.com/vkuzmenko/profcli/internal/client/config"
	"github.com/vkuzmenko/profcli/internal/client/services"
	"github.com/vkuzmenko/profcli/internal/client/session"
	"github.com/vkuzmenko/profcli/internal/client/tokenstore"
	"github.com/vkuzmenko/profcli/internal/client/transport"
	"github.com/vkuzmenko/profcli/internal/logging"

	_ "modernc.org/sqlite"
)

// App is the interactive client. It owns the session state, the auth service,
// and the local database handle.
type App struct {
	config      *config.Config
	authService services.AuthService
	state       *session.State
	log         logging.Logger
	reader      *bufio.Reader
	db          *sql.DB
}

// NewApp wires the full client stack: local DB, durable token store, session
// state, authorizing transport, API gateway, and the auth service on top.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	baseURL, err := url.Parse(cfg.ServerEndpointURL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("invalid server endpoint url: %w", err)
	}

	state := session.New()
	tokens := tokenstore.NewSQLiteStore(db)

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	authorizer := transport.NewAuthorizer(httpClient, tokens, state, log)
	apiClient := api.NewHTTPClient(authorizer, *baseURL)

	as := services.NewAuthService(apiClient, tokens, state, log)

	return &App{
		config:      cfg,
		authService: as,
		state:       state,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		db:          db,
	}, nil
}

// Close releases the local database handle.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.state.Read().Authenticated
}

// Run restores the previous session, if any, and enters the command loop.
func (a *App) Run(ctx context.Context) {
	if user, err := a.authService.Restore(ctx); err != nil {
		a.log.Warn(ctx, "could not restore previous session", "error", err)
	} else if user != nil {
		fmt.Printf("Welcome back, %s!\n", displayName(user))
	}

	a.Root(ctx)
}
