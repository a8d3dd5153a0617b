package store

import (
	"context"
	"fmt"
	"sync"

	"photokeeper/internal/client/api"
	"photokeeper/internal/client/models"
	"photokeeper/internal/client/session"
	"photokeeper/internal/logging"
)

// Auth holds the session state: authentication flag, current user, and the
// status of the in-flight auth operation. Tokens live in the injected
// session.Store so they survive restarts.
type Auth struct {
	mu       sync.Mutex
	api      api.API
	sessions session.Store
	log      logging.Logger

	op            slot
	authenticated bool
	user          *models.User
}

// NewAuth builds the auth container. Call RestoreSession afterwards if a
// persisted token may exist.
func NewAuth(client api.API, sessions session.Store, log logging.Logger) *Auth {
	return &Auth{api: client, sessions: sessions, log: log}
}

// Status returns the current operation status.
func (a *Auth) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.op.status == "" {
		return StatusIdle
	}
	return a.op.status
}

// Err returns the normalized message of the last failed operation.
func (a *Auth) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.op.err
}

// IsAuthenticated reports whether a session is established.
func (a *Auth) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.authenticated
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (a *Auth) CurrentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// ClearError drops the stored error message without touching the rest of
// the session state.
func (a *Auth) ClearError() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.op.err = ""
}

// Register creates an account. On success the session stays
// unauthenticated: the user still has to log in.
func (a *Auth) Register(ctx context.Context, req api.RegisterRequest) error {
	a.begin()
	if _, err := a.api.Register(ctx, req); err != nil {
		a.failOp(err)
		return err
	}
	a.mu.Lock()
	a.op.succeed()
	a.mu.Unlock()
	return nil
}

// Login exchanges credentials for tokens, persists them, marks the session
// authenticated and triggers the implicit profile fetch. A profile-fetch
// failure does not undo a successful login unless it was a 401, in which
// case FetchProfile tears the session down itself.
func (a *Auth) Login(ctx context.Context, username, password string) error {
	a.begin()
	tokens, err := a.api.Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		a.failOp(err)
		return err
	}
	if err := a.sessions.SaveTokens(ctx, tokens.Access, tokens.Refresh); err != nil {
		err = fmt.Errorf("persist tokens: %w", err)
		a.failOp(err)
		return err
	}

	a.mu.Lock()
	a.authenticated = true
	a.op.succeed()
	a.mu.Unlock()

	if err := a.FetchProfile(ctx); err != nil {
		a.log.Warn(ctx, "profile fetch after login failed", "error", err)
	}
	return nil
}

// FetchProfile loads the current user from the backend. A 401 means the
// stored token is invalid: the token is cleared and the session degraded to
// unauthenticated, never retried.
func (a *Auth) FetchProfile(ctx context.Context) error {
	a.begin()
	user, err := a.api.Me(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			a.teardown(ctx)
		}
		a.failOp(err)
		return err
	}
	a.mu.Lock()
	a.user = user
	a.op.succeed()
	a.mu.Unlock()
	return nil
}

// UpdateProfile applies a partial profile update (email, names, or the
// old/new password pair) and replaces the stored user on success.
func (a *Auth) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) error {
	a.begin()
	user, err := a.api.UpdateMe(ctx, upd)
	if err != nil {
		a.failOp(err)
		return err
	}
	a.mu.Lock()
	a.user = user
	a.op.succeed()
	a.mu.Unlock()
	return nil
}

// Logout clears the persisted tokens and resets the session. It always
// succeeds; a storage error is logged, not surfaced, because the in-memory
// session is gone either way.
func (a *Auth) Logout(ctx context.Context) {
	if err := a.sessions.Clear(ctx); err != nil {
		a.log.Error(ctx, "clearing persisted session failed", "error", err)
	}
	a.mu.Lock()
	a.authenticated = false
	a.user = nil
	a.op.reset()
	a.mu.Unlock()
}

// RestoreSession re-establishes a session from a persisted token at
// startup. No token: stays unauthenticated, no error. A locally expired or
// backend-rejected token is cleared and the caller must re-authenticate.
func (a *Auth) RestoreSession(ctx context.Context) error {
	token, err := a.sessions.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("read persisted token: %w", err)
	}
	if token == "" {
		return nil
	}
	if session.TokenExpired(token) {
		a.log.Info(ctx, "persisted token expired, clearing session")
		a.teardown(ctx)
		return nil
	}

	a.mu.Lock()
	a.authenticated = true
	a.mu.Unlock()

	if err := a.FetchProfile(ctx); err != nil {
		// Any restore failure is fatal to the session: wipe the stale
		// token and force a fresh login.
		a.teardown(ctx)
		a.mu.Lock()
		a.op.reset()
		a.mu.Unlock()
		return fmt.Errorf("restore session: %w", err)
	}
	return nil
}

func (a *Auth) begin() {
	a.mu.Lock()
	a.op.begin()
	a.mu.Unlock()
}

func (a *Auth) failOp(err error) {
	a.mu.Lock()
	a.op.fail(err)
	a.mu.Unlock()
}

func (a *Auth) teardown(ctx context.Context) {
	if err := a.sessions.Clear(ctx); err != nil {
		a.log.Error(ctx, "clearing persisted session failed", "error", err)
	}
	a.mu.Lock()
	a.authenticated = false
	a.user = nil
	a.mu.Unlock()
}
