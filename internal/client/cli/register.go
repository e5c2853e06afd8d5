package cli

import (
	"context"
	"fmt"

	"github.com/ndolgushev/bookstore/internal/client/auth"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	name, err := c.io.ReadInput("Full name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.io.ReadPassword("Password (min 8 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	c.io.Println()
	c.io.Println("Registering...")

	session, err := c.authService.Register(ctx, auth.RegisterData{
		Name:            name,
		Email:           email,
		Password:        password,
		PasswordConfirm: confirm,
	})
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("Name:  %s\n", session.Name)
	c.io.Printf("Email: %s\n", session.Email)
	c.io.Println()
	c.io.Println("You are now logged in.")

	return nil
}
