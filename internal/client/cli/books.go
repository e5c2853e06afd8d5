package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	pkgapi "github.com/ndolgushev/bookstore/pkg/api"
)

func (c *Cli) runBooks(ctx context.Context, args []string) error {
	params := url.Values{}
	if len(args) > 0 {
		params.Set("category", args[0])
	}

	list, err := c.apiClient.GetBooks(ctx, params)
	if err != nil {
		return err
	}

	if len(list.Results) == 0 {
		c.io.Println("No books found.")
		return nil
	}

	c.io.Printf("=== Catalog (%d) ===\n", len(list.Results))
	for _, b := range list.Results {
		c.io.Printf("%5d  %-40s  %-25s  %8s  %.1f★\n",
			b.ID, truncate(b.Title, 40), truncate(b.Author, 25), b.Price, b.AverageRating)
	}

	return nil
}

func (c *Cli) runSearch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: search <query> [category]")
	}

	category := ""
	if len(args) > 1 {
		category = args[1]
	}

	books, err := c.apiClient.SearchBooks(ctx, args[0], category)
	if err != nil {
		return err
	}

	if len(books) == 0 {
		c.io.Println("Nothing found.")
		return nil
	}

	c.io.Printf("=== Search results (%d) ===\n", len(books))
	for _, b := range books {
		c.io.Printf("%5d  %-40s  %-25s  %8s\n",
			b.ID, truncate(b.Title, 40), truncate(b.Author, 25), b.Price)
	}

	return nil
}

func (c *Cli) runBook(ctx context.Context, args []string) error {
	id, err := idArg(args, "book <id>")
	if err != nil {
		return err
	}

	book, err := c.apiClient.GetBook(ctx, id)
	if err != nil {
		return err
	}

	c.io.Printf("=== %s ===\n", book.Title)
	c.io.Printf("Author:    %s\n", book.Author)
	c.io.Printf("Category:  %s\n", book.CategoryName)
	c.io.Printf("Price:     %s\n", book.Price)
	c.io.Printf("Pages:     %d\n", book.Pages)
	c.io.Printf("Published: %s\n", book.PublishedDate)
	if len(book.Tags) > 0 {
		c.io.Printf("Tags:      %s\n", strings.Join(book.Tags, ", "))
	}
	c.io.Printf("Rating:    %.1f (%d reviews)\n", book.AverageRating, book.ReviewCount)
	c.io.Println()
	c.io.Println(book.Description)

	reviews, err := c.apiClient.GetBookReviews(ctx, id)
	if err != nil {
		// Отзывы — вторичная информация, не роняем команду
		c.io.Printf("\nWarning: failed to load reviews: %v\n", err)
		return nil
	}

	if len(reviews) > 0 {
		c.io.Println()
		c.io.Println("--- Reviews ---")
		for _, r := range reviews {
			c.io.Printf("%d/5  %s\n", r.Rating, r.Comment)
		}
	}

	return nil
}

func (c *Cli) runCategories(ctx context.Context) error {
	categories, err := c.apiClient.GetCategories(ctx)
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		c.io.Println("No categories.")
		return nil
	}

	c.io.Println("=== Categories ===")
	for _, cat := range categories {
		c.io.Printf("%5d  %s\n", cat.ID, cat.Name)
	}

	return nil
}

func (c *Cli) runLibrary(ctx context.Context) error {
	if err := c.store.RefreshOwnedBooks(ctx); err != nil {
		return err
	}

	owned := c.store.OwnedBooks()
	if len(owned) == 0 {
		c.io.Println("Your library is empty.")
		c.io.Println("Books appear here after an admin approves your purchase.")
		return nil
	}

	c.io.Printf("=== Library (%d) ===\n", len(owned))
	for _, b := range owned {
		c.io.Printf("%5d  %-40s  %s\n", b.ID, truncate(b.Title, 40), b.Author)
	}

	return nil
}

func (c *Cli) runProgress(ctx context.Context, args []string) error {
	id, err := idArg(args, "progress <book-id> [page]")
	if err != nil {
		return err
	}

	if len(args) > 1 {
		page, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid page %q: %w", args[1], err)
		}
		return c.updateProgress(ctx, id, page)
	}

	progress, err := c.apiClient.GetBookProgress(ctx, id)
	if err != nil {
		return err
	}

	c.io.Printf("Page %d, %.0f%% read\n", progress.CurrentPage, progress.ProgressPercentage)
	if len(progress.Bookmarks) > 0 {
		c.io.Printf("Bookmarks: %v\n", progress.Bookmarks)
	}

	return nil
}

func (c *Cli) updateProgress(ctx context.Context, bookID int64, page int) error {
	progress, err := c.apiClient.UpdateBookProgress(ctx, bookID, pkgapi.ProgressUpdateRequest{CurrentPage: page})
	if err != nil {
		return err
	}

	c.io.Printf("✓ Progress saved: page %d (%.0f%%)\n", progress.CurrentPage, progress.ProgressPercentage)
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
