package storage

import "context"

// TokenPair holds the access and refresh credentials issued by the server.
// The access token is short-lived; the refresh token outlives it and is
// exchanged for new access tokens. Absence of both means logged out.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenStorage defines the durable client-side session state.
// This is the only thing the client persists between runs.
type TokenStorage interface {
	// SaveTokens stores both tokens, replacing whatever was there
	SaveTokens(ctx context.Context, pair *TokenPair) error

	// GetTokens retrieves the stored pair.
	// Returns ErrTokensNotFound if nothing is stored.
	GetTokens(ctx context.Context) (*TokenPair, error)

	// SetAccessToken replaces only the access token after a refresh;
	// the refresh token is reused, not rotated
	SetAccessToken(ctx context.Context, accessToken string) error

	// DeleteTokens removes both tokens (logout). Idempotent: deleting
	// an empty store is not an error, logout must always succeed locally.
	DeleteTokens(ctx context.Context) error
}
