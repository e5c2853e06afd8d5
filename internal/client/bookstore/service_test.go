package bookstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndolgushev/bookstore/internal/client/api"
	"github.com/ndolgushev/bookstore/internal/client/auth"
	"github.com/ndolgushev/bookstore/internal/client/storage"
	"github.com/ndolgushev/bookstore/internal/client/storage/boltdb"
	pkgapi "github.com/ndolgushev/bookstore/pkg/api"
)

// fakeStore — сервер магазина в памяти: покупки, книги, владение.
// Approve переводит покупку в approved и добавляет книгу во владение,
// reject только меняет статус.
type fakeStore struct {
	mu        sync.Mutex
	books     map[int64]pkgapi.Book
	purchases map[int64]*pkgapi.Purchase
	owned     []int64
	nextID    int64

	requests     atomic.Int32
	approveCalls atomic.Int32
	rejectCalls  atomic.Int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		books:     make(map[int64]pkgapi.Book),
		purchases: make(map[int64]*pkgapi.Purchase),
		nextID:    1,
	}
}

func (f *fakeStore) addBook(id int64, title, price string) {
	f.books[id] = pkgapi.Book{ID: id, Title: title, Price: price}
}

func (f *fakeStore) addPurchase(id, bookID int64, status pkgapi.PurchaseStatus) {
	f.purchases[id] = &pkgapi.Purchase{
		ID:     id,
		Book:   bookID,
		Amount: f.books[bookID].Price,
		Status: status,
	}
	if status == pkgapi.PurchaseApproved {
		f.owned = append(f.owned, bookID)
	}
}

func (f *fakeStore) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/purchases/", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.URL.Path == "/purchases/" && r.Method == http.MethodGet:
			list := make([]pkgapi.Purchase, 0, len(f.purchases))
			for _, p := range f.purchases {
				list = append(list, *p)
			}
			writeJSON(w, http.StatusOK, list)

		case r.URL.Path == "/purchases/" && r.Method == http.MethodPost:
			var req pkgapi.PurchaseCreateRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			book, ok := f.books[req.Book]
			if !ok {
				writeJSON(w, http.StatusNotFound, pkgapi.ErrorResponse{Error: "Book not found"})
				return
			}
			p := &pkgapi.Purchase{
				ID:            f.nextID,
				Book:          req.Book,
				Amount:        book.Price,
				TransactionID: req.TransactionID,
				Status:        pkgapi.PurchasePending,
				UserName:      req.UserName,
			}
			f.nextID++
			f.purchases[p.ID] = p
			writeJSON(w, http.StatusCreated, p)

		case strings.HasSuffix(r.URL.Path, "/approve/"):
			f.approveCalls.Add(1)
			p, ok := f.purchases[pathID(r.URL.Path)]
			if !ok {
				writeJSON(w, http.StatusNotFound, pkgapi.ErrorResponse{Error: "Purchase not found"})
				return
			}
			if p.Status != pkgapi.PurchasePending {
				writeJSON(w, http.StatusBadRequest, pkgapi.ErrorResponse{Error: "Purchase is not pending"})
				return
			}
			p.Status = pkgapi.PurchaseApproved
			f.owned = append(f.owned, p.Book)
			writeJSON(w, http.StatusOK, p)

		case strings.HasSuffix(r.URL.Path, "/reject/"):
			f.rejectCalls.Add(1)
			p, ok := f.purchases[pathID(r.URL.Path)]
			if !ok {
				writeJSON(w, http.StatusNotFound, pkgapi.ErrorResponse{Error: "Purchase not found"})
				return
			}
			if p.Status != pkgapi.PurchasePending {
				writeJSON(w, http.StatusBadRequest, pkgapi.ErrorResponse{Error: "Purchase is not pending"})
				return
			}
			p.Status = pkgapi.PurchaseRejected
			writeJSON(w, http.StatusOK, p)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	mux.HandleFunc("/books/", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.URL.Path == "/books/purchased/" {
			owned := make([]pkgapi.Book, 0, len(f.owned))
			for _, id := range f.owned {
				owned = append(owned, f.books[id])
			}
			writeJSON(w, http.StatusOK, owned)
			return
		}

		list := make([]pkgapi.Book, 0, len(f.books))
		for _, b := range f.books {
			list = append(list, b)
		}
		writeJSON(w, http.StatusOK, list)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// pathID извлекает id из пути вида /purchases/42/approve/
func pathID(path string) int64 {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return 0
	}
	id, _ := strconv.ParseInt(parts[1], 10, 64)
	return id
}

// newTestService поднимает полный клиентский стек поверх fake-сервера
func newTestService(t *testing.T, f *fakeStore, authenticated bool) *Service {
	t.Helper()

	server := httptest.NewServer(f.handler())
	t.Cleanup(server.Close)

	tokens, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "tokens.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, tokens.Close())
	})

	if authenticated {
		require.NoError(t, tokens.SaveTokens(context.Background(), &storage.TokenPair{
			AccessToken:  "access-123",
			RefreshToken: "refresh-456",
		}))
	}

	apiClient := api.NewClient(server.URL, tokens)
	return NewService(apiClient, auth.NewService(apiClient, tokens))
}

// TestService_PurchaseBook проверяет создание покупки: запись появляется
// в статусе pending, список покупок перечитан, владение не тронуто
func TestService_PurchaseBook(t *testing.T) {
	f := newFakeStore()
	f.addBook(1, "Dune", "19.99")
	svc := newTestService(t, f, true)

	purchase, err := svc.PurchaseBook(context.Background(), 1, PurchaseDetails{
		TransactionID: "tx-100",
		Name:          "Test User",
		Email:         "test@example.com",
		Phone:         "+70000000000",
	})

	require.NoError(t, err)
	assert.Equal(t, pkgapi.PurchasePending, purchase.Status)
	assert.Equal(t, "19.99", purchase.Amount)
	assert.Equal(t, "tx-100", purchase.TransactionID)

	purchases := svc.Purchases()
	require.Len(t, purchases, 1)
	assert.Equal(t, purchase.ID, purchases[0].ID)

	// Pending покупка владения не дает
	assert.Empty(t, svc.OwnedBooks())
}

// TestService_PurchaseBook_NotAuthenticated: без сессии покупка
// отклоняется локально, сервер не вызывается
func TestService_PurchaseBook_NotAuthenticated(t *testing.T) {
	f := newFakeStore()
	f.addBook(1, "Dune", "19.99")
	svc := newTestService(t, f, false)

	_, err := svc.PurchaseBook(context.Background(), 1, PurchaseDetails{TransactionID: "tx-100"})

	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	assert.Equal(t, int32(0), f.requests.Load())
}

// TestService_ApprovePurchase: approve меняет статус и делает книгу
// купленной — оба представления перечитываются
func TestService_ApprovePurchase(t *testing.T) {
	f := newFakeStore()
	f.addBook(1, "Dune", "19.99")
	f.addPurchase(10, 1, pkgapi.PurchasePending)
	svc := newTestService(t, f, true)

	require.NoError(t, svc.RefreshPurchases(context.Background()))

	err := svc.ApprovePurchase(context.Background(), 10)

	require.NoError(t, err)

	purchases := svc.Purchases()
	require.Len(t, purchases, 1)
	assert.Equal(t, pkgapi.PurchaseApproved, purchases[0].Status)

	owned := svc.OwnedBooks()
	require.Len(t, owned, 1)
	assert.Equal(t, "Dune", owned[0].Title)
}

// TestService_RejectPurchase: reject меняет статус, владение не появляется
func TestService_RejectPurchase(t *testing.T) {
	f := newFakeStore()
	f.addBook(1, "Dune", "19.99")
	f.addPurchase(10, 1, pkgapi.PurchasePending)
	svc := newTestService(t, f, true)

	require.NoError(t, svc.RefreshPurchases(context.Background()))

	err := svc.RejectPurchase(context.Background(), 10)

	require.NoError(t, err)

	purchases := svc.Purchases()
	require.Len(t, purchases, 1)
	assert.Equal(t, pkgapi.PurchaseRejected, purchases[0].Status)
	assert.Empty(t, svc.OwnedBooks())
}

// TestService_ApprovePurchase_Terminal: повторный approve отклоняется
// локально по кэшированному статусу, без сетевого вызова
func TestService_ApprovePurchase_Terminal(t *testing.T) {
	tests := []struct {
		name   string
		status pkgapi.PurchaseStatus
	}{
		{name: "already approved", status: pkgapi.PurchaseApproved},
		{name: "already rejected", status: pkgapi.PurchaseRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeStore()
			f.addBook(1, "Dune", "19.99")
			f.addPurchase(10, 1, tt.status)
			svc := newTestService(t, f, true)

			require.NoError(t, svc.RefreshPurchases(context.Background()))

			err := svc.ApprovePurchase(context.Background(), 10)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrPurchaseNotPending)
			assert.Contains(t, err.Error(), string(tt.status))
			assert.Equal(t, int32(0), f.approveCalls.Load())

			err = svc.RejectPurchase(context.Background(), 10)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrPurchaseNotPending)
			assert.Equal(t, int32(0), f.rejectCalls.Load())
		})
	}
}

// TestService_ApprovePurchase_UnknownLocally: незнакомая покупка уходит
// на сервер — он источник истины
func TestService_ApprovePurchase_UnknownLocally(t *testing.T) {
	f := newFakeStore()
	f.addBook(1, "Dune", "19.99")
	f.addPurchase(10, 1, pkgapi.PurchasePending)
	svc := newTestService(t, f, true)

	// Кэш пуст: RefreshPurchases не вызывался
	err := svc.ApprovePurchase(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, int32(1), f.approveCalls.Load())
}

// TestService_ApprovePurchase_ServerRejects: отказ сервера возвращается
// как ошибка, представления не перечитываются
func TestService_ApprovePurchase_ServerRejects(t *testing.T) {
	f := newFakeStore()
	svc := newTestService(t, f, true)

	err := svc.ApprovePurchase(context.Background(), 99)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Purchase not found")
	assert.Empty(t, svc.Purchases())
}

// TestService_Snapshots проверяет, что аксессоры возвращают копии:
// мутация снимка не влияет на кэш сервиса
func TestService_Snapshots(t *testing.T) {
	f := newFakeStore()
	f.addBook(1, "Dune", "19.99")
	f.addPurchase(10, 1, pkgapi.PurchasePending)
	svc := newTestService(t, f, true)

	require.NoError(t, svc.RefreshPurchases(context.Background()))

	snapshot := svc.Purchases()
	require.Len(t, snapshot, 1)
	snapshot[0].Status = pkgapi.PurchaseApproved

	assert.Equal(t, pkgapi.PurchasePending, svc.Purchases()[0].Status)
}

// TestService_RefreshBooks проверяет загрузку каталога
func TestService_RefreshBooks(t *testing.T) {
	f := newFakeStore()
	f.addBook(1, "Dune", "19.99")
	f.addBook(2, "Neuromancer", "14.50")
	svc := newTestService(t, f, false)

	require.NoError(t, svc.RefreshBooks(context.Background()))

	books := svc.Books()
	assert.Len(t, books, 2)
}

// TestService_FullLifecycle прогоняет полный путь покупки:
// buy -> pending -> approve -> книга в библиотеке
func TestService_FullLifecycle(t *testing.T) {
	f := newFakeStore()
	f.addBook(1, "Dune", "19.99")
	svc := newTestService(t, f, true)

	purchase, err := svc.PurchaseBook(context.Background(), 1, PurchaseDetails{
		TransactionID: "tx-1",
		Name:          "Test User",
		Email:         "test@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, svc.OwnedBooks())

	require.NoError(t, svc.ApprovePurchase(context.Background(), purchase.ID))

	owned := svc.OwnedBooks()
	require.Len(t, owned, 1)
	assert.Equal(t, "Dune", owned[0].Title)

	// Повторный approve отклоняется локально
	err = svc.ApprovePurchase(context.Background(), purchase.ID)
	assert.ErrorIs(t, err, ErrPurchaseNotPending)
}
