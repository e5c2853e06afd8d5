package api

import (
	"encoding/json"
	"time"
)

// Book представляет книгу каталога.
// Денежные поля сервер сериализует строками (decimal), клиент их не трогает.
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	Price         string    `json:"price"` // decimal, например "499.00"
	CoverImage    string    `json:"cover_image"`
	BookFile      string    `json:"book_file,omitempty"` // URL PDF, пусто если файл не загружен
	Category      int64     `json:"category"`
	CategoryName  string    `json:"category_name,omitempty"`
	Tags          []string  `json:"tags"`
	Pages         int       `json:"pages"`
	PublishedDate string    `json:"published_date"` // дата без времени, "2006-01-02"
	ISBN          string    `json:"isbn,omitempty"`
	Language      string    `json:"language,omitempty"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// BookCreateRequest представляет запрос на создание/обновление книги
type BookCreateRequest struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	Price         string   `json:"price"`
	Category      int64    `json:"category"`
	Tags          []string `json:"tags,omitempty"`
	Pages         int      `json:"pages"`
	PublishedDate string   `json:"published_date"`
	CoverImage    string   `json:"cover_image,omitempty"`
}

// Category представляет категорию каталога
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryCreateRequest представляет запрос на создание категории
type CategoryCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Review представляет отзыв на книгу
type Review struct {
	ID        int64     `json:"id"`
	Book      int64     `json:"book"`
	User      int64     `json:"user"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewCreateRequest представляет запрос на добавление отзыва
type ReviewCreateRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// ReadingProgress представляет прогресс чтения книги
type ReadingProgress struct {
	Book               int64     `json:"book"`
	CurrentPage        int       `json:"current_page"`
	Bookmarks          []int     `json:"bookmarks"`
	LastRead           time.Time `json:"last_read"`
	Completed          bool      `json:"completed"`
	ProgressPercentage float64   `json:"progress_percentage"`
}

// ProgressUpdateRequest представляет запрос на обновление прогресса чтения
type ProgressUpdateRequest struct {
	CurrentPage int   `json:"current_page"`
	Bookmarks   []int `json:"bookmarks,omitempty"`
	Completed   bool  `json:"completed,omitempty"`
}

// BookList принимает оба формата списочных ответов сервера:
// голый JSON-массив и постраничный объект {"count": N, "results": [...]}
type BookList struct {
	Count   int    `json:"count"`
	Results []Book `json:"results"`
}

// UnmarshalJSON сначала пробует массив, затем постраничный объект
func (l *BookList) UnmarshalJSON(data []byte) error {
	var plain []Book
	if err := json.Unmarshal(data, &plain); err == nil {
		l.Results = plain
		l.Count = len(plain)
		return nil
	}

	type page BookList
	var p page
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	l.Count = p.Count
	l.Results = p.Results
	return nil
}
