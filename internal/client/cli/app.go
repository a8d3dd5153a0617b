// Package cli implements the interactive photokeeper client: a REPL over
// the state containers. It renders container state and dispatches
// operations; all logic lives in the store and api packages.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"photokeeper/internal/client/api"
	"photokeeper/internal/client/config"
	"photokeeper/internal/client/session"
	"photokeeper/internal/client/store"
	"photokeeper/internal/logging"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	sessions session.Store

	auth   *store.Auth
	images *store.Images
	users  *store.Users

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	sessions, err := session.Open(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}

	apiClient := api.New(cfg.APIBaseURL, cfg.RequestTimeout, sessions)

	images, err := store.NewImages(apiClient, log, cfg.DetailCacheTTL)
	if err != nil {
		_ = sessions.Close()
		return nil, err
	}

	return &App{
		config:   cfg,
		log:      log,
		sessions: sessions,
		auth:     store.NewAuth(apiClient, sessions, log),
		images:   images,
		users:    store.NewUsers(apiClient, log),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run restores a persisted session, then enters the command loop.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.auth.RestoreSession(ctx); err != nil {
		fmt.Fprintln(a.out, "Stored session is no longer valid, please log in again.")
	} else if a.auth.IsAuthenticated() {
		if u := a.auth.CurrentUser(); u != nil {
			fmt.Fprintf(a.out, "Welcome back, %s!\n", u.DisplayName())
		}
	}

	a.Root(ctx)
}

func (a *App) Close() {
	if err := a.sessions.Close(); err != nil {
		a.log.Error(context.Background(), "closing session store failed", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}
