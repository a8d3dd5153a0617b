package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var testDBCounter int

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	testDBCounter++
	dsn := fmt.Sprintf("file:session%d?mode=memory&cache=shared", testDBCounter)
	s, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_EmptyByDefault(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	access, err := s.AccessToken(ctx)
	require.NoError(t, err)
	require.Empty(t, access)

	refresh, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	require.Empty(t, refresh)
}

func TestSQLiteStore_SaveAndRead(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveTokens(ctx, "acc1", "ref1"))

	access, err := s.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "acc1", access)

	refresh, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "ref1", refresh)
}

func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveTokens(ctx, "acc1", "ref1"))
	require.NoError(t, s.SaveTokens(ctx, "acc2", "ref2"))

	access, err := s.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "acc2", access)
}

func TestSQLiteStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveTokens(ctx, "acc1", "ref1"))
	require.NoError(t, s.Clear(ctx))

	access, err := s.AccessToken(ctx)
	require.NoError(t, err)
	require.Empty(t, access)

	refresh, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	require.Empty(t, refresh)
}
