package bookstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ndolgushev/bookstore/internal/client/api"
	"github.com/ndolgushev/bookstore/internal/client/auth"
	pkgapi "github.com/ndolgushev/bookstore/pkg/api"
)

// ErrPurchaseNotPending означает попытку approve/reject покупки,
// уже находящейся в терминальном статусе
var ErrPurchaseNotPending = errors.New("purchase is not pending")

// PurchaseDetails содержит введенные пользователем данные покупки:
// ссылку на ручной перевод и контакты для связи
type PurchaseDetails struct {
	TransactionID string
	Name          string
	Email         string
	Phone         string
}

// Service управляет жизненным циклом покупок и кэшированными
// представлениями: каталог, список покупок, купленные книги.
// Представления — производные от состояния сервера; после каждой мутации
// затронутые представления перечитываются целиком, локальных патчей нет.
type Service struct {
	apiClient *api.Client
	session   *auth.Service

	mu        sync.RWMutex
	books     []pkgapi.Book
	purchases []pkgapi.Purchase
	owned     []pkgapi.Book
}

// NewService создает новый сервис покупок
func NewService(apiClient *api.Client, session *auth.Service) *Service {
	return &Service{
		apiClient: apiClient,
		session:   session,
	}
}

// RefreshBooks перечитывает каталог с сервера
func (s *Service) RefreshBooks(ctx context.Context) error {
	list, err := s.apiClient.GetBooks(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}

	s.mu.Lock()
	s.books = list.Results
	s.mu.Unlock()
	return nil
}

// RefreshPurchases перечитывает список покупок с сервера
func (s *Service) RefreshPurchases(ctx context.Context) error {
	list, err := s.apiClient.GetPurchases(ctx)
	if err != nil {
		return fmt.Errorf("failed to load purchases: %w", err)
	}

	s.mu.Lock()
	s.purchases = list.Results
	s.mu.Unlock()
	return nil
}

// RefreshOwnedBooks перечитывает купленные книги с сервера
func (s *Service) RefreshOwnedBooks(ctx context.Context) error {
	books, err := s.apiClient.GetPurchasedBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load purchased books: %w", err)
	}

	s.mu.Lock()
	s.owned = books
	s.mu.Unlock()
	return nil
}

// Books возвращает снимок кэшированного каталога
func (s *Service) Books() []pkgapi.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]pkgapi.Book(nil), s.books...)
}

// Purchases возвращает снимок кэшированного списка покупок
func (s *Service) Purchases() []pkgapi.Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]pkgapi.Purchase(nil), s.purchases...)
}

// OwnedBooks возвращает снимок купленных книг
func (s *Service) OwnedBooks() []pkgapi.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]pkgapi.Book(nil), s.owned...)
}

// PurchaseBook создает запись о покупке со статусом pending.
// Требует активной сессии: без нее сетевой вызов не выполняется.
// Купленные книги не перечитываются — pending покупка владения не дает.
func (s *Service) PurchaseBook(ctx context.Context, bookID int64, details PurchaseDetails) (*pkgapi.Purchase, error) {
	ok, err := s.session.IsAuthenticated(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !ok {
		return nil, auth.ErrNotAuthenticated
	}

	created, err := s.apiClient.CreatePurchase(ctx, pkgapi.PurchaseCreateRequest{
		Book:          bookID,
		TransactionID: details.TransactionID,
		UserName:      details.Name,
		UserEmail:     details.Email,
		UserPhone:     details.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("purchase failed: %w", err)
	}

	if err := s.RefreshPurchases(ctx); err != nil {
		return nil, fmt.Errorf("purchase created, but refreshing purchases failed: %w", err)
	}

	return created, nil
}

// ApprovePurchase переводит покупку в approved и перечитывает оба
// затронутых представления: список покупок и купленные книги
// (approve — единственная операция, меняющая владение).
func (s *Service) ApprovePurchase(ctx context.Context, id int64) error {
	if err := s.guardPending(id); err != nil {
		return err
	}

	if _, err := s.apiClient.ApprovePurchase(ctx, id); err != nil {
		return fmt.Errorf("failed to approve purchase: %w", err)
	}

	if err := s.RefreshPurchases(ctx); err != nil {
		return err
	}
	return s.RefreshOwnedBooks(ctx)
}

// RejectPurchase переводит покупку в rejected.
// Владение не затрагивается, перечитывается только список покупок.
func (s *Service) RejectPurchase(ctx context.Context, id int64) error {
	if err := s.guardPending(id); err != nil {
		return err
	}

	if _, err := s.apiClient.RejectPurchase(ctx, id); err != nil {
		return fmt.Errorf("failed to reject purchase: %w", err)
	}

	return s.RefreshPurchases(ctx)
}

// guardPending отклоняет approve/reject локально, если покупка уже
// известна как завершенная. Неизвестные записи уходят на сервер:
// он остается источником истины.
func (s *Service) guardPending(id int64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.purchases {
		p := &s.purchases[i]
		if p.ID != id {
			continue
		}
		if p.Status.Terminal() {
			return fmt.Errorf("purchase %d is already %s: %w", id, p.Status, ErrPurchaseNotPending)
		}
		return nil
	}
	return nil
}

// AddBook создает книгу и перечитывает каталог
func (s *Service) AddBook(ctx context.Context, req pkgapi.BookCreateRequest) (*pkgapi.Book, error) {
	created, err := s.apiClient.CreateBook(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to add book: %w", err)
	}

	if err := s.RefreshBooks(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// AddBookMultipart создает книгу с файлами (обложка, PDF) и перечитывает каталог
func (s *Service) AddBookMultipart(ctx context.Context, contentType string, body []byte) (*pkgapi.Book, error) {
	created, err := s.apiClient.CreateBookMultipart(ctx, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload book: %w", err)
	}

	if err := s.RefreshBooks(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateBook обновляет книгу и перечитывает каталог
func (s *Service) UpdateBook(ctx context.Context, id int64, req pkgapi.BookCreateRequest) (*pkgapi.Book, error) {
	updated, err := s.apiClient.UpdateBook(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	if err := s.RefreshBooks(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteBook удаляет книгу и перечитывает каталог
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	if err := s.apiClient.DeleteBook(ctx, id); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	return s.RefreshBooks(ctx)
}
