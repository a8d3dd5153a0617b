package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"photokeeper/internal/client/models"

	"github.com/stretchr/testify/require"
)

type staticTokens string

func (s staticTokens) AccessToken(ctx context.Context) (string, error) {
	return string(s), nil
}

func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, staticTokens(token))
}

func TestClient_BearerInjection(t *testing.T) {
	var gotAuth string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})
	c := newTestClient(t, h, "tok123")

	_, err := c.ListImages(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, "Bearer tok123", gotAuth)
}

func TestClient_NoBearerOnTokenEndpoint(t *testing.T) {
	var gotAuth string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/token/", r.URL.Path)
		_, _ = w.Write([]byte(`{"access": "a", "refresh": "r"}`))
	})
	c := newTestClient(t, h, "tok123")

	tp, err := c.Login(context.Background(), Credentials{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	require.Empty(t, gotAuth)
	require.Equal(t, "a", tp.Access)
	require.Equal(t, "r", tp.Refresh)
}

func TestClient_NoBearerWhenNoToken(t *testing.T) {
	var hasAuth bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	})
	c := newTestClient(t, h, "")

	_, err := c.ListImages(context.Background(), false)
	require.NoError(t, err)
	require.False(t, hasAuth)
}

func TestClient_MineQueryParam(t *testing.T) {
	var gotQuery string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})
	c := newTestClient(t, h, "t")

	_, err := c.ListImages(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, "mine=true", gotQuery)

	_, err = c.ListImages(context.Background(), false)
	require.NoError(t, err)
	require.Empty(t, gotQuery)
}

func TestClient_ErrorNormalization(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"detail", 401, `{"detail": "Invalid credentials"}`, "Invalid credentials"},
		{"message", 400, `{"message": "bad request"}`, "bad request"},
		{"field errors", 400, `{"username": ["This field is required."]}`, "username: This field is required."},
		{"detail wins over fields", 400, `{"detail": "nope", "username": ["x"]}`, "nope"},
		{"first field by key order", 400, `{"b": ["second"], "a": ["first"]}`, "a: first"},
		{"string body", 500, `"kaboom"`, "kaboom"},
		{"unparseable body", 502, `<html>`, "Bad Gateway"},
		{"empty body", 404, ``, "Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			c := newTestClient(t, h, "t")

			_, err := c.Me(context.Background())
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.Status)
			require.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	require.True(t, IsUnauthorized(&Error{Status: 401, Message: "x"}))
	require.False(t, IsUnauthorized(&Error{Status: 403, Message: "x"}))
	require.False(t, IsUnauthorized(io.EOF))
}

func TestClient_UploadImage_MultipartFields(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.Equal(t, "sunset", r.FormValue("name"))
		require.Equal(t, "over the bay", r.FormValue("description"))
		require.Equal(t, []string{"1", "3"}, r.MultipartForm.Value["groups"])

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "sunset.jpg", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, "fake-jpeg-bytes", string(data))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Image{ID: 42, Name: "sunset"})
	})
	c := newTestClient(t, h, "t")

	img, err := c.UploadImage(context.Background(), UploadRequest{
		Name:        "sunset",
		Description: "over the bay",
		Groups:      []int64{1, 3},
		FileName:    "sunset.jpg",
		File:        strings.NewReader("fake-jpeg-bytes"),
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), img.ID)
}

func TestClient_UpdateImage_PartialPatch(t *testing.T) {
	var gotBody map[string]any
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/images/5/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(models.Image{ID: 5, Name: "renamed"})
	})
	c := newTestClient(t, h, "t")

	name := "renamed"
	img, err := c.UpdateImage(context.Background(), 5, ImageUpdate{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "renamed", img.Name)

	// Only the provided field goes over the wire.
	require.Equal(t, map[string]any{"name": "renamed"}, gotBody)
}

func TestClient_SetImageGroups_SendsGroupsOnly(t *testing.T) {
	var gotBody map[string]any
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(models.Image{ID: 5, Groups: []int64{1, 2}})
	})
	c := newTestClient(t, h, "t")

	_, err := c.SetImageGroups(context.Background(), 5, []int64{1, 2})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"groups": []any{float64(1), float64(2)}}, gotBody)
}

func TestClient_DeleteImage_NoContent(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/images/9/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, h, "t")

	require.NoError(t, c.DeleteImage(context.Background(), 9))
}

func TestClient_GroupEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/groups/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode([]models.Group{{ID: 1, Name: "holiday"}})
		case http.MethodPost:
			var g models.Group
			require.NoError(t, json.NewDecoder(r.Body).Decode(&g))
			g.ID = 2
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(g)
		}
	})
	c := newTestClient(t, mux, "t")

	groups, err := c.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)

	g, err := c.CreateGroup(context.Background(), "pets", "cat pictures")
	require.NoError(t, err)
	require.Equal(t, int64(2), g.ID)
	require.Equal(t, "pets", g.Name)
}

func TestClient_TransportErrorIsNotAPIError(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second, staticTokens(""))

	_, err := c.Me(context.Background())
	require.Error(t, err)
	var apiErr *Error
	require.False(t, errors.As(err, &apiErr))
}
