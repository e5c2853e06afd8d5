package api

import (
	"context"
	"fmt"
	"net/url"

	pkgapi "github.com/ndolgushev/bookstore/pkg/api"
)

// GetBooks возвращает каталог. params — опциональные query-параметры
// (category, page и т.п.), nil допустим.
func (c *Client) GetBooks(ctx context.Context, params url.Values) (*pkgapi.BookList, error) {
	path := "/books/"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp pkgapi.BookList
	if err := c.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("get books request failed: %w", err)
	}
	return &resp, nil
}

// GetBook возвращает одну книгу по id
func (c *Client) GetBook(ctx context.Context, id int64) (*pkgapi.Book, error) {
	var resp pkgapi.Book
	if err := c.Get(ctx, fmt.Sprintf("/books/%d/", id), &resp); err != nil {
		return nil, fmt.Errorf("get book request failed: %w", err)
	}
	return &resp, nil
}

// CreateBook создает книгу (админская операция, права проверяет сервер)
func (c *Client) CreateBook(ctx context.Context, req pkgapi.BookCreateRequest) (*pkgapi.Book, error) {
	var resp pkgapi.Book
	if err := c.Post(ctx, "/books/", req, &resp); err != nil {
		return nil, fmt.Errorf("create book request failed: %w", err)
	}
	return &resp, nil
}

// CreateBookMultipart создает книгу с файлами (обложка, PDF) одним
// multipart-запросом. contentType и body готовит вызывающая сторона
// через multipart.Writer.
func (c *Client) CreateBookMultipart(ctx context.Context, contentType string, body []byte) (*pkgapi.Book, error) {
	var resp pkgapi.Book
	if err := c.PostMultipart(ctx, "/books/", contentType, body, &resp); err != nil {
		return nil, fmt.Errorf("upload book request failed: %w", err)
	}
	return &resp, nil
}

// UpdateBook обновляет книгу по id
func (c *Client) UpdateBook(ctx context.Context, id int64, req pkgapi.BookCreateRequest) (*pkgapi.Book, error) {
	var resp pkgapi.Book
	if err := c.Put(ctx, fmt.Sprintf("/books/%d/", id), req, &resp); err != nil {
		return nil, fmt.Errorf("update book request failed: %w", err)
	}
	return &resp, nil
}

// DeleteBook удаляет книгу по id
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	if err := c.Delete(ctx, fmt.Sprintf("/books/%d/", id)); err != nil {
		return fmt.Errorf("delete book request failed: %w", err)
	}
	return nil
}

// GetCategories возвращает список категорий
func (c *Client) GetCategories(ctx context.Context) ([]pkgapi.Category, error) {
	var resp []pkgapi.Category
	if err := c.Get(ctx, "/books/categories/", &resp); err != nil {
		return nil, fmt.Errorf("get categories request failed: %w", err)
	}
	return resp, nil
}

// CreateCategory создает категорию
func (c *Client) CreateCategory(ctx context.Context, req pkgapi.CategoryCreateRequest) (*pkgapi.Category, error) {
	var resp pkgapi.Category
	if err := c.Post(ctx, "/books/categories/", req, &resp); err != nil {
		return nil, fmt.Errorf("create category request failed: %w", err)
	}
	return &resp, nil
}

// GetBookReviews возвращает отзывы на книгу
func (c *Client) GetBookReviews(ctx context.Context, bookID int64) ([]pkgapi.Review, error) {
	var resp []pkgapi.Review
	if err := c.Get(ctx, fmt.Sprintf("/books/%d/reviews/", bookID), &resp); err != nil {
		return nil, fmt.Errorf("get reviews request failed: %w", err)
	}
	return resp, nil
}

// AddReview добавляет отзыв на книгу
func (c *Client) AddReview(ctx context.Context, bookID int64, req pkgapi.ReviewCreateRequest) (*pkgapi.Review, error) {
	var resp pkgapi.Review
	if err := c.Post(ctx, fmt.Sprintf("/books/%d/reviews/", bookID), req, &resp); err != nil {
		return nil, fmt.Errorf("add review request failed: %w", err)
	}
	return &resp, nil
}

// GetPurchasedBooks возвращает книги, доступные текущему пользователю
// для чтения: у каждой есть хотя бы одна одобренная покупка
func (c *Client) GetPurchasedBooks(ctx context.Context) ([]pkgapi.Book, error) {
	var resp pkgapi.BookList
	if err := c.Get(ctx, "/books/purchased/", &resp); err != nil {
		return nil, fmt.Errorf("get purchased books request failed: %w", err)
	}
	return resp.Results, nil
}

// SearchBooks ищет книги по строке запроса, category опциональна
func (c *Client) SearchBooks(ctx context.Context, query, category string) ([]pkgapi.Book, error) {
	params := url.Values{}
	params.Set("q", query)
	if category != "" {
		params.Set("category", category)
	}

	var resp pkgapi.BookList
	if err := c.Get(ctx, "/books/search/?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search books request failed: %w", err)
	}
	return resp.Results, nil
}

// GetReadingProgress возвращает прогресс чтения по всем книгам пользователя
func (c *Client) GetReadingProgress(ctx context.Context) ([]pkgapi.ReadingProgress, error) {
	var resp []pkgapi.ReadingProgress
	if err := c.Get(ctx, "/books/progress/", &resp); err != nil {
		return nil, fmt.Errorf("get reading progress request failed: %w", err)
	}
	return resp, nil
}

// GetBookProgress возвращает прогресс чтения одной книги
func (c *Client) GetBookProgress(ctx context.Context, bookID int64) (*pkgapi.ReadingProgress, error) {
	var resp pkgapi.ReadingProgress
	if err := c.Get(ctx, fmt.Sprintf("/books/%d/progress/", bookID), &resp); err != nil {
		return nil, fmt.Errorf("get book progress request failed: %w", err)
	}
	return &resp, nil
}

// UpdateBookProgress обновляет прогресс чтения одной книги
func (c *Client) UpdateBookProgress(ctx context.Context, bookID int64, req pkgapi.ProgressUpdateRequest) (*pkgapi.ReadingProgress, error) {
	var resp pkgapi.ReadingProgress
	if err := c.Put(ctx, fmt.Sprintf("/books/%d/progress/", bookID), req, &resp); err != nil {
		return nil, fmt.Errorf("update book progress request failed: %w", err)
	}
	return &resp, nil
}
