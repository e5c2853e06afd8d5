package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/ndolgushev/bookstore/internal/client/storage"
)

// Фиксированные ключи в auth bucket. Те же имена, что сервер отдает в JSON.
var (
	keyAccessToken  = []byte("access_token")
	keyRefreshToken = []byte("refresh_token")
)

// Compile-time check that Storage implements TokenStorage
var _ storage.TokenStorage = (*Storage)(nil)

// SaveTokens stores both tokens, replacing whatever was there
func (s *Storage) SaveTokens(ctx context.Context, pair *storage.TokenPair) error {
	if pair == nil {
		return fmt.Errorf("token pair is nil")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Put(keyAccessToken, []byte(pair.AccessToken)); err != nil {
			return fmt.Errorf("failed to save access token: %w", err)
		}
		if err := bucket.Put(keyRefreshToken, []byte(pair.RefreshToken)); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}
		return nil
	})
}

// GetTokens retrieves the stored pair.
// Returns storage.ErrTokensNotFound if nothing is stored.
func (s *Storage) GetTokens(ctx context.Context) (*storage.TokenPair, error) {
	var pair *storage.TokenPair

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		access := bucket.Get(keyAccessToken)
		refresh := bucket.Get(keyRefreshToken)
		if access == nil && refresh == nil {
			return storage.ErrTokensNotFound
		}

		pair = &storage.TokenPair{
			AccessToken:  string(access),
			RefreshToken: string(refresh),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return pair, nil
}

// SetAccessToken replaces only the access token after a successful refresh
func (s *Storage) SetAccessToken(ctx context.Context, accessToken string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if bucket.Get(keyRefreshToken) == nil {
			// refresh без сохраненной сессии — нечего обновлять
			return storage.ErrTokensNotFound
		}

		if err := bucket.Put(keyAccessToken, []byte(accessToken)); err != nil {
			return fmt.Errorf("failed to save access token: %w", err)
		}
		return nil
	})
}

// DeleteTokens removes both tokens (logout). Deleting an empty store is not
// an error: logout must always succeed locally.
func (s *Storage) DeleteTokens(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Delete(keyAccessToken); err != nil {
			return fmt.Errorf("failed to delete access token: %w", err)
		}
		if err := bucket.Delete(keyRefreshToken); err != nil {
			return fmt.Errorf("failed to delete refresh token: %w", err)
		}
		return nil
	})
}
