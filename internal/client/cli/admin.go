package cli

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pkgapi "github.com/ndolgushev/bookstore/pkg/api"
)

func (c *Cli) runAddBook(ctx context.Context) error {
	c.io.Println("=== Add book ===")
	c.io.Println()

	req, err := c.readBookForm(nil)
	if err != nil {
		return err
	}

	book, err := c.store.AddBook(ctx, *req)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("✓ Book #%d added: %s\n", book.ID, book.Title)
	return nil
}

func (c *Cli) runUpdateBook(ctx context.Context, args []string) error {
	id, err := idArg(args, "update-book <id>")
	if err != nil {
		return err
	}

	current, err := c.apiClient.GetBook(ctx, id)
	if err != nil {
		return err
	}

	c.io.Printf("=== Update book #%d: %s ===\n", id, current.Title)
	c.io.Println("Press Enter to keep the current value.")
	c.io.Println()

	req, err := c.readBookForm(current)
	if err != nil {
		return err
	}

	book, err := c.store.UpdateBook(ctx, id, *req)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("✓ Book #%d updated\n", book.ID)
	return nil
}

func (c *Cli) runDeleteBook(ctx context.Context, args []string) error {
	id, err := idArg(args, "delete-book <id>")
	if err != nil {
		return err
	}

	confirm, err := c.io.ReadInput(fmt.Sprintf("Delete book %d? (yes/no): ", id))
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if confirm != "yes" {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := c.store.DeleteBook(ctx, id); err != nil {
		return err
	}

	c.io.Printf("✓ Book %d deleted\n", id)
	return nil
}

// runUpload создает книгу с файлами одним multipart-запросом:
// метаданные как поля формы, обложка и PDF как файлы
func (c *Cli) runUpload(ctx context.Context) error {
	c.io.Println("=== Upload book ===")
	c.io.Println()

	req, err := c.readBookForm(nil)
	if err != nil {
		return err
	}

	coverPath, err := c.io.ReadInput("Cover image path: ")
	if err != nil {
		return fmt.Errorf("failed to read cover path: %w", err)
	}
	filePath, err := c.io.ReadInput("Book PDF path: ")
	if err != nil {
		return fmt.Errorf("failed to read file path: %w", err)
	}

	contentType, body, err := encodeBookForm(req, coverPath, filePath)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Uploading...")

	book, err := c.store.AddBookMultipart(ctx, contentType, body)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Book #%d uploaded: %s\n", book.ID, book.Title)
	return nil
}

// readBookForm собирает метаданные книги из промптов.
// current != nil включает режим редактирования: пустой ввод оставляет
// текущее значение.
func (c *Cli) readBookForm(current *pkgapi.Book) (*pkgapi.BookCreateRequest, error) {
	req := &pkgapi.BookCreateRequest{}
	if current != nil {
		req.Title = current.Title
		req.Author = current.Author
		req.Description = current.Description
		req.Price = current.Price
		req.Category = current.Category
		req.Tags = current.Tags
		req.Pages = current.Pages
		req.PublishedDate = current.PublishedDate
	}

	var err error
	if req.Title, err = c.promptDefault("Title", req.Title); err != nil {
		return nil, err
	}
	if req.Author, err = c.promptDefault("Author", req.Author); err != nil {
		return nil, err
	}
	if req.Description, err = c.promptDefault("Description", req.Description); err != nil {
		return nil, err
	}
	if req.Price, err = c.promptDefault("Price", req.Price); err != nil {
		return nil, err
	}

	categoryStr, err := c.promptDefault("Category id", formatID(req.Category))
	if err != nil {
		return nil, err
	}
	if req.Category, err = strconv.ParseInt(categoryStr, 10, 64); err != nil {
		return nil, fmt.Errorf("invalid category id %q: %w", categoryStr, err)
	}

	pagesStr, err := c.promptDefault("Pages", formatID(int64(req.Pages)))
	if err != nil {
		return nil, err
	}
	pages, err := strconv.Atoi(pagesStr)
	if err != nil {
		return nil, fmt.Errorf("invalid pages %q: %w", pagesStr, err)
	}
	req.Pages = pages

	if req.PublishedDate, err = c.promptDefault("Published date (YYYY-MM-DD)", req.PublishedDate); err != nil {
		return nil, err
	}

	tagsStr, err := c.promptDefault("Tags (comma-separated)", strings.Join(req.Tags, ","))
	if err != nil {
		return nil, err
	}
	req.Tags = splitTags(tagsStr)

	return req, nil
}

// promptDefault читает значение, подставляя дефолт при пустом вводе
func (c *Cli) promptDefault(label, fallback string) (string, error) {
	prompt := label + ": "
	if fallback != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, fallback)
	}

	value, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	if value == "" {
		return fallback, nil
	}
	return value, nil
}

// encodeBookForm кодирует метаданные и файлы в multipart/form-data
func encodeBookForm(req *pkgapi.BookCreateRequest, coverPath, filePath string) (contentType string, body []byte, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":          req.Title,
		"author":         req.Author,
		"description":    req.Description,
		"price":          req.Price,
		"category":       strconv.FormatInt(req.Category, 10),
		"pages":          strconv.Itoa(req.Pages),
		"published_date": req.PublishedDate,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return "", nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	for _, tag := range req.Tags {
		if err := w.WriteField("tags", tag); err != nil {
			return "", nil, fmt.Errorf("failed to write tags field: %w", err)
		}
	}

	if err := attachFile(w, "cover_image", coverPath); err != nil {
		return "", nil, err
	}
	if err := attachFile(w, "book_file", filePath); err != nil {
		return "", nil, err
	}

	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	return w.FormDataContentType(), buf.Bytes(), nil
}

func attachFile(w *multipart.Writer, field, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create form file %s: %w", field, err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to write form file %s: %w", field, err)
	}
	return nil
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
