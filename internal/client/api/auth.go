package api

import (
	"context"
	"fmt"

	pkgapi "github.com/ndolgushev/bookstore/pkg/api"
)

// Login обменивает email и пароль на пару токенов и профиль пользователя
func (c *Client) Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.AuthResponse, error) {
	var resp pkgapi.AuthResponse
	if err := c.Post(ctx, "/auth/login/", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Register регистрирует нового пользователя.
// Ответ идентичен login: токены плюс профиль.
func (c *Client) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.AuthResponse, error) {
	var resp pkgapi.AuthResponse
	if err := c.Post(ctx, "/auth/register/", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Logout инвалидирует refresh token на сервере
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	req := pkgapi.LogoutRequest{Refresh: refreshToken}
	if err := c.Post(ctx, "/auth/logout/", req, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// GetProfile возвращает профиль текущего пользователя по access token
func (c *Client) GetProfile(ctx context.Context) (*pkgapi.UserProfile, error) {
	var resp pkgapi.UserProfile
	if err := c.Get(ctx, "/auth/profile/", &resp); err != nil {
		return nil, fmt.Errorf("get profile request failed: %w", err)
	}
	return &resp, nil
}

// UpdateProfile изменяет профиль текущего пользователя
func (c *Client) UpdateProfile(ctx context.Context, req pkgapi.ProfileUpdateRequest) (*pkgapi.UserProfile, error) {
	var resp pkgapi.UserProfile
	if err := c.Put(ctx, "/auth/profile/", req, &resp); err != nil {
		return nil, fmt.Errorf("update profile request failed: %w", err)
	}
	return &resp, nil
}
