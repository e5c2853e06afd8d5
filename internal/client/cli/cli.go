package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ndolgushev/bookstore/internal/client/api"
	"github.com/ndolgushev/bookstore/internal/client/auth"
	"github.com/ndolgushev/bookstore/internal/client/bookstore"
	"github.com/ndolgushev/bookstore/internal/client/iocli"
)

// Cli связывает команды терминала с сервисами клиента
type Cli struct {
	io          iocli.IO
	apiClient   *api.Client
	authService *auth.Service
	store       *bookstore.Service
}

func New(io iocli.IO, apiClient *api.Client, authService *auth.Service, store *bookstore.Service) *Cli {
	return &Cli{
		io:          io,
		apiClient:   apiClient,
		authService: authService,
		store:       store,
	}
}

// Run выполняет команду. Неизвестная команда — ошибка, usage печатает main.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "profile":
		return c.runProfile(ctx)
	case "books":
		return c.runBooks(ctx, args)
	case "search":
		return c.runSearch(ctx, args)
	case "book":
		return c.runBook(ctx, args)
	case "categories":
		return c.runCategories(ctx)
	case "buy":
		return c.runBuy(ctx, args)
	case "purchases":
		return c.runPurchases(ctx)
	case "approve":
		return c.runApprove(ctx, args)
	case "reject":
		return c.runReject(ctx, args)
	case "library":
		return c.runLibrary(ctx)
	case "progress":
		return c.runProgress(ctx, args)
	case "add-book":
		return c.runAddBook(ctx)
	case "update-book":
		return c.runUpdateBook(ctx, args)
	case "delete-book":
		return c.runDeleteBook(ctx, args)
	case "upload":
		return c.runUpload(ctx)
	case "stats":
		return c.runStats(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// idArg достает обязательный числовой идентификатор из аргументов
func idArg(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", args[0], err)
	}
	return id, nil
}

func PrintUsage() {
	fmt.Println("BookStore Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  bookstore [OPTIONS] COMMAND [ARGS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version      Show version information")
	fmt.Println("  --server URL   Server URL (default: http://localhost:8000/api)")
	fmt.Println("  --db PATH      Path to local database (default: bookstore-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                Register new account")
	fmt.Println("  login                   Login to server")
	fmt.Println("  logout                  Logout and clear local session")
	fmt.Println("  status                  Show authentication status")
	fmt.Println("  profile                 Show current user profile")
	fmt.Println()
	fmt.Println("  books [category]        List catalog")
	fmt.Println("  search <query> [cat]    Search books")
	fmt.Println("  book <id>               Show book details and reviews")
	fmt.Println("  categories              List categories")
	fmt.Println()
	fmt.Println("  buy <book-id>           Purchase a book (manual transaction id)")
	fmt.Println("  purchases               List purchases")
	fmt.Println("  library                 List purchased books")
	fmt.Println("  progress <book-id> [N]  Show or set reading progress")
	fmt.Println()
	fmt.Println("Admin commands:")
	fmt.Println("  approve <purchase-id>   Approve a pending purchase")
	fmt.Println("  reject <purchase-id>    Reject a pending purchase")
	fmt.Println("  add-book                Add a book (metadata only)")
	fmt.Println("  update-book <id>        Update book metadata")
	fmt.Println("  delete-book <id>        Delete a book")
	fmt.Println("  upload                  Add a book with cover and PDF files")
	fmt.Println("  stats                   Show purchase statistics")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  bookstore login")
	fmt.Println("  bookstore books fiction")
	fmt.Println("  bookstore buy 42")
	fmt.Println("  bookstore --server https://shop.example.com/api purchases")
}
