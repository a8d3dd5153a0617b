package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"photokeeper/internal/client/api"
	"photokeeper/internal/client/models"
	"photokeeper/internal/logging"

	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewDefault(io.Discard, slog.LevelError)
}

func newTestImages(t *testing.T, f *fakeAPI) *Images {
	t.Helper()
	s, err := NewImages(f, testLogger(), time.Minute)
	require.NoError(t, err)
	return s
}

func img(id int64, name string, owner models.Owner, groups ...int64) models.Image {
	return models.Image{ID: id, Name: name, Owner: owner, Groups: groups}
}

// ---- fake API ----

// fakeAPI implements api.API with per-method function hooks. A nil hook
// returns zero values.
type fakeAPI struct {
	RegisterFunc       func(ctx context.Context, req api.RegisterRequest) (*models.User, error)
	LoginFunc          func(ctx context.Context, creds api.Credentials) (*api.TokenPair, error)
	MeFunc             func(ctx context.Context) (*models.User, error)
	UpdateMeFunc       func(ctx context.Context, upd api.ProfileUpdate) (*models.User, error)
	ListImagesFunc     func(ctx context.Context, mine bool) ([]models.Image, error)
	GetImageFunc       func(ctx context.Context, id int64) (*models.Image, error)
	UploadImageFunc    func(ctx context.Context, req api.UploadRequest) (*models.Image, error)
	UpdateImageFunc    func(ctx context.Context, id int64, upd api.ImageUpdate) (*models.Image, error)
	SetImageGroupsFunc func(ctx context.Context, id int64, groupIDs []int64) (*models.Image, error)
	DeleteImageFunc    func(ctx context.Context, id int64) error
	ListGroupsFunc     func(ctx context.Context) ([]models.Group, error)
	CreateGroupFunc    func(ctx context.Context, name, description string) (*models.Group, error)
	UpdateGroupFunc    func(ctx context.Context, id int64, name, description string) (*models.Group, error)
	DeleteGroupFunc    func(ctx context.Context, id int64) error
	ListUsersFunc      func(ctx context.Context) ([]models.User, error)
	GetUserFunc        func(ctx context.Context, username string) (*models.User, error)
}

var _ api.API = (*fakeAPI)(nil)

func (f *fakeAPI) Register(ctx context.Context, req api.RegisterRequest) (*models.User, error) {
	if f.RegisterFunc == nil {
		return &models.User{}, nil
	}
	return f.RegisterFunc(ctx, req)
}

func (f *fakeAPI) Login(ctx context.Context, creds api.Credentials) (*api.TokenPair, error) {
	if f.LoginFunc == nil {
		return &api.TokenPair{}, nil
	}
	return f.LoginFunc(ctx, creds)
}

func (f *fakeAPI) Me(ctx context.Context) (*models.User, error) {
	if f.MeFunc == nil {
		return &models.User{}, nil
	}
	return f.MeFunc(ctx)
}

func (f *fakeAPI) UpdateMe(ctx context.Context, upd api.ProfileUpdate) (*models.User, error) {
	if f.UpdateMeFunc == nil {
		return &models.User{}, nil
	}
	return f.UpdateMeFunc(ctx, upd)
}

func (f *fakeAPI) ListImages(ctx context.Context, mine bool) ([]models.Image, error) {
	if f.ListImagesFunc == nil {
		return nil, nil
	}
	return f.ListImagesFunc(ctx, mine)
}

func (f *fakeAPI) GetImage(ctx context.Context, id int64) (*models.Image, error) {
	if f.GetImageFunc == nil {
		return &models.Image{ID: id}, nil
	}
	return f.GetImageFunc(ctx, id)
}

func (f *fakeAPI) UploadImage(ctx context.Context, req api.UploadRequest) (*models.Image, error) {
	if f.UploadImageFunc == nil {
		return &models.Image{}, nil
	}
	return f.UploadImageFunc(ctx, req)
}

func (f *fakeAPI) UpdateImage(ctx context.Context, id int64, upd api.ImageUpdate) (*models.Image, error) {
	if f.UpdateImageFunc == nil {
		return &models.Image{ID: id}, nil
	}
	return f.UpdateImageFunc(ctx, id, upd)
}

func (f *fakeAPI) SetImageGroups(ctx context.Context, id int64, groupIDs []int64) (*models.Image, error) {
	if f.SetImageGroupsFunc == nil {
		return &models.Image{ID: id, Groups: groupIDs}, nil
	}
	return f.SetImageGroupsFunc(ctx, id, groupIDs)
}

func (f *fakeAPI) DeleteImage(ctx context.Context, id int64) error {
	if f.DeleteImageFunc == nil {
		return nil
	}
	return f.DeleteImageFunc(ctx, id)
}

func (f *fakeAPI) ListGroups(ctx context.Context) ([]models.Group, error) {
	if f.ListGroupsFunc == nil {
		return nil, nil
	}
	return f.ListGroupsFunc(ctx)
}

func (f *fakeAPI) CreateGroup(ctx context.Context, name, description string) (*models.Group, error) {
	if f.CreateGroupFunc == nil {
		return &models.Group{Name: name, Description: description}, nil
	}
	return f.CreateGroupFunc(ctx, name, description)
}

func (f *fakeAPI) UpdateGroup(ctx context.Context, id int64, name, description string) (*models.Group, error) {
	if f.UpdateGroupFunc == nil {
		return &models.Group{ID: id, Name: name, Description: description}, nil
	}
	return f.UpdateGroupFunc(ctx, id, name, description)
}

func (f *fakeAPI) DeleteGroup(ctx context.Context, id int64) error {
	if f.DeleteGroupFunc == nil {
		return nil
	}
	return f.DeleteGroupFunc(ctx, id)
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]models.User, error) {
	if f.ListUsersFunc == nil {
		return nil, nil
	}
	return f.ListUsersFunc(ctx)
}

func (f *fakeAPI) GetUser(ctx context.Context, username string) (*models.User, error) {
	if f.GetUserFunc == nil {
		return &models.User{Username: username}, nil
	}
	return f.GetUserFunc(ctx, username)
}

// ---- fake session store ----

type fakeSessions struct {
	access   string
	refresh  string
	saveErr  error
	clearErr error

	saved   int
	cleared int
}

func (f *fakeSessions) AccessToken(ctx context.Context) (string, error)  { return f.access, nil }
func (f *fakeSessions) RefreshToken(ctx context.Context) (string, error) { return f.refresh, nil }

func (f *fakeSessions) SaveTokens(ctx context.Context, access, refresh string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.access, f.refresh = access, refresh
	f.saved++
	return nil
}

func (f *fakeSessions) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.access, f.refresh = "", ""
	f.cleared++
	return nil
}

func (f *fakeSessions) Close() error { return nil }
