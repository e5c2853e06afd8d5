package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ndolgushev/bookstore/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	isAuth, err := c.authService.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	if !isAuth {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'bookstore login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")

	expiresAt, err := c.authService.TokenExpiry(ctx)
	if err != nil {
		c.io.Printf("Warning: failed to read token expiry: %v\n", err)
		return nil
	}

	c.io.Printf("Access token expires: %s\n", expiresAt.Format(time.RFC3339))

	remaining := time.Until(expiresAt)
	if remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		// Не фатально: протухший access token обновится сам при
		// первом же запросе
		c.io.Println("Access token has expired, it will be refreshed on the next request.")
	}

	return nil
}

func (c *Cli) runProfile(ctx context.Context) error {
	session, err := c.authService.CurrentSession(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			return fmt.Errorf("not authenticated. Please run 'bookstore login' first")
		}
		return err
	}

	c.io.Println("=== Profile ===")
	c.io.Printf("ID:    %d\n", session.ID)
	c.io.Printf("Name:  %s\n", session.Name)
	c.io.Printf("Email: %s\n", session.Email)
	c.io.Printf("Role:  %s\n", session.Role)

	return nil
}
