package api

import (
	"context"
	"net/http"

	"photokeeper/internal/client/models"
)

// RegisterRequest is the registration payload. Password2 is the backend's
// confirmation field and must equal Password.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Credentials is the login payload for the token endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is the token endpoint response. Refresh may be empty when the
// backend issues access tokens only.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// ProfileUpdate is a partial update of the current user. Nil fields are
// omitted from the PATCH body. A password change sends OldPassword and
// Password together.
type ProfileUpdate struct {
	Email       *string `json:"email,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	OldPassword *string `json:"old_password,omitempty"`
	Password    *string `json:"password,omitempty"`
}

// Register creates a new account. The session stays unauthenticated; the
// user logs in separately.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodPost, "/register/", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	var tp TokenPair
	if err := c.doJSON(ctx, http.MethodPost, tokenPath, creds, &tp); err != nil {
		return nil, err
	}
	return &tp, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/me/", "", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateMe applies a partial profile update and returns the updated user.
func (c *Client) UpdateMe(ctx context.Context, upd ProfileUpdate) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodPatch, "/me/", upd, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers fetches all users visible to the caller.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users/", "", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single user by username.
func (c *Client) GetUser(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+username+"/", "", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
