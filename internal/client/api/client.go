// Package api implements the typed REST client for the photo-gallery
// backend. It owns base-URL handling, bearer-token injection and error
// normalization; it never touches application state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"photokeeper/internal/client/models"
)

// tokenPath is the token-issuing endpoint; it is the only request sent
// without an Authorization header.
const tokenPath = "/token/"

// TokenSource supplies the current access token. An empty token means
// "not logged in" and suppresses the Authorization header.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// API is the full backend surface the state containers depend on.
// *Client is the production implementation; tests substitute fakes.
type API interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, creds Credentials) (*TokenPair, error)
	Me(ctx context.Context) (*models.User, error)
	UpdateMe(ctx context.Context, upd ProfileUpdate) (*models.User, error)

	ListImages(ctx context.Context, mine bool) ([]models.Image, error)
	GetImage(ctx context.Context, id int64) (*models.Image, error)
	UploadImage(ctx context.Context, req UploadRequest) (*models.Image, error)
	UpdateImage(ctx context.Context, id int64, upd ImageUpdate) (*models.Image, error)
	SetImageGroups(ctx context.Context, id int64, groupIDs []int64) (*models.Image, error)
	DeleteImage(ctx context.Context, id int64) error

	ListGroups(ctx context.Context) ([]models.Group, error)
	CreateGroup(ctx context.Context, name, description string) (*models.Group, error)
	UpdateGroup(ctx context.Context, id int64, name, description string) (*models.Group, error)
	DeleteGroup(ctx context.Context, id int64) error

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
}

// Client talks to the backend over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

var _ API = (*Client)(nil)

// New returns a Client for the given base URL (e.g. "http://host:8000/api").
// A zero timeout leaves the http.Client default in place.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// do issues one request and decodes a JSON response into out (when out is
// non-nil and the response has a body). Non-2xx responses are returned as
// *Error; transport failures are wrapped unchanged.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if path != tokenPath {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("read access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return newError(resp.StatusCode, raw)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// doJSON marshals in as the request body and delegates to do.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, "application/json", body, out)
}
