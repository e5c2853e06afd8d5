package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndolgushev/bookstore/internal/client/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	store, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestStorage_SaveAndGetTokens(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	err := store.SaveTokens(ctx, &storage.TokenPair{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
	})
	require.NoError(t, err)

	pair, err := store.GetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-123", pair.AccessToken)
	assert.Equal(t, "refresh-456", pair.RefreshToken)
}

func TestStorage_GetTokens_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetTokens(context.Background())
	assert.ErrorIs(t, err, storage.ErrTokensNotFound)
}

// TestStorage_SaveTokens_Overwrite: повторный login перезаписывает пару
func TestStorage_SaveTokens_Overwrite(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTokens(ctx, &storage.TokenPair{
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
	}))
	require.NoError(t, store.SaveTokens(ctx, &storage.TokenPair{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
	}))

	pair, err := store.GetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-access", pair.AccessToken)
	assert.Equal(t, "new-refresh", pair.RefreshToken)
}

// TestStorage_SetAccessToken: refresh обновляет только access,
// refresh token остается прежним
func TestStorage_SetAccessToken(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTokens(ctx, &storage.TokenPair{
		AccessToken:  "old-access",
		RefreshToken: "refresh-456",
	}))

	require.NoError(t, store.SetAccessToken(ctx, "new-access"))

	pair, err := store.GetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-access", pair.AccessToken)
	assert.Equal(t, "refresh-456", pair.RefreshToken)
}

// TestStorage_SetAccessToken_NoSession: без сохраненной пары обновлять
// нечего — access token в одиночку сессией не является
func TestStorage_SetAccessToken_NoSession(t *testing.T) {
	store := newTestStorage(t)

	err := store.SetAccessToken(context.Background(), "new-access")
	assert.ErrorIs(t, err, storage.ErrTokensNotFound)
}

func TestStorage_DeleteTokens(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTokens(ctx, &storage.TokenPair{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
	}))

	require.NoError(t, store.DeleteTokens(ctx))

	_, err := store.GetTokens(ctx)
	assert.ErrorIs(t, err, storage.ErrTokensNotFound)
}

// TestStorage_DeleteTokens_Idempotent: удаление пустого хранилища не ошибка
func TestStorage_DeleteTokens_Idempotent(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.DeleteTokens(ctx))
	require.NoError(t, store.DeleteTokens(ctx))
}

// TestStorage_Persistence: пара переживает переоткрытие базы
func TestStorage_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveTokens(ctx, &storage.TokenPair{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
	}))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reopened.Close())
	}()

	pair, err := reopened.GetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-123", pair.AccessToken)
	assert.Equal(t, "refresh-456", pair.RefreshToken)
}
