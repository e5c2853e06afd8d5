package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ndolgushev/bookstore/internal/client/auth"
	"github.com/ndolgushev/bookstore/internal/client/bookstore"
)

func (c *Cli) runBuy(ctx context.Context, args []string) error {
	bookID, err := idArg(args, "buy <book-id>")
	if err != nil {
		return err
	}

	book, err := c.apiClient.GetBook(ctx, bookID)
	if err != nil {
		return err
	}

	c.io.Printf("=== Buy: %s ===\n", book.Title)
	c.io.Printf("Price: %s\n", book.Price)
	c.io.Println()

	// Показываем способы оплаты: пользователь переводит деньги вручную
	// и вводит идентификатор транзакции
	methods, err := c.apiClient.GetPaymentMethods(ctx)
	if err != nil {
		c.io.Printf("Warning: failed to load payment methods: %v\n", err)
	} else if len(methods) > 0 {
		c.io.Println("Payment methods:")
		for _, m := range methods {
			c.io.Printf("  %s", m.Name)
			if m.Description != "" {
				c.io.Printf(" — %s", m.Description)
			}
			c.io.Println()
			for k, v := range m.AccountDetails {
				c.io.Printf("    %s: %s\n", k, v)
			}
		}
		c.io.Println()
	}

	txID, err := c.io.ReadInput("Transaction id: ")
	if err != nil {
		return fmt.Errorf("failed to read transaction id: %w", err)
	}
	name, err := c.io.ReadInput("Your name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	email, err := c.io.ReadInput("Your email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	phone, err := c.io.ReadInput("Your phone: ")
	if err != nil {
		return fmt.Errorf("failed to read phone: %w", err)
	}

	purchase, err := c.store.PurchaseBook(ctx, bookID, bookstore.PurchaseDetails{
		TransactionID: txID,
		Name:          name,
		Email:         email,
		Phone:         phone,
	})
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			return fmt.Errorf("not authenticated. Please run 'bookstore login' first")
		}
		return err
	}

	c.io.Println()
	c.io.Printf("✓ Purchase #%d submitted (status: %s)\n", purchase.ID, purchase.Status)
	c.io.Println("You will get access to the book after an admin approves the payment.")

	return nil
}

func (c *Cli) runPurchases(ctx context.Context) error {
	if err := c.store.RefreshPurchases(ctx); err != nil {
		return err
	}

	purchases := c.store.Purchases()
	if len(purchases) == 0 {
		c.io.Println("No purchases yet.")
		return nil
	}

	c.io.Printf("=== Purchases (%d) ===\n", len(purchases))
	for _, p := range purchases {
		title := fmt.Sprintf("book %d", p.Book)
		if p.BookDetails != nil {
			title = p.BookDetails.Title
		}
		c.io.Printf("%5d  %-40s  %8s  %-8s  %s\n",
			p.ID, truncate(title, 40), p.Amount, p.Status, p.CreatedAt.Format("2006-01-02"))
	}

	return nil
}

func (c *Cli) runApprove(ctx context.Context, args []string) error {
	id, err := idArg(args, "approve <purchase-id>")
	if err != nil {
		return err
	}

	// Свежий список, чтобы локальная проверка статуса работала с
	// актуальным состоянием
	if err := c.store.RefreshPurchases(ctx); err != nil {
		return err
	}

	if err := c.store.ApprovePurchase(ctx, id); err != nil {
		if errors.Is(err, bookstore.ErrPurchaseNotPending) {
			return fmt.Errorf("purchase %d has already been finalized", id)
		}
		return err
	}

	c.io.Printf("✓ Purchase %d approved\n", id)
	return nil
}

func (c *Cli) runReject(ctx context.Context, args []string) error {
	id, err := idArg(args, "reject <purchase-id>")
	if err != nil {
		return err
	}

	if err := c.store.RefreshPurchases(ctx); err != nil {
		return err
	}

	if err := c.store.RejectPurchase(ctx, id); err != nil {
		if errors.Is(err, bookstore.ErrPurchaseNotPending) {
			return fmt.Errorf("purchase %d has already been finalized", id)
		}
		return err
	}

	c.io.Printf("✓ Purchase %d rejected\n", id)
	return nil
}

func (c *Cli) runStats(ctx context.Context) error {
	stats, err := c.apiClient.GetStatistics(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== Purchase statistics ===")
	c.io.Printf("Total:    %d\n", stats.TotalPurchases)
	c.io.Printf("Approved: %d\n", stats.ApprovedPurchases)
	c.io.Printf("Pending:  %d\n", stats.PendingPurchases)
	c.io.Printf("Rejected: %d\n", stats.RejectedPurchases)
	c.io.Printf("Revenue:  %.2f\n", stats.TotalRevenue)

	return nil
}
