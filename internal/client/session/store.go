// Package session persists the client's auth tokens between runs. The
// backing store is a small sqlite key/value table in the user's state
// directory; reading it at startup decides the initial authentication
// posture.
package session

import "context"

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// Store is the durable token storage used by the auth container and, via
// AccessToken, by the API client as its token source.
//
// A missing token is reported as an empty string, not an error.
type Store interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)

	// SaveTokens stores both tokens atomically. An empty refresh token is
	// stored as-is; the backend may issue access tokens only.
	SaveTokens(ctx context.Context, access, refresh string) error

	// Clear wipes all persisted session state (logout, failed restore).
	Clear(ctx context.Context) error

	Close() error
}
