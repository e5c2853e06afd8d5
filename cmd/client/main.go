package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ndolgushev/bookstore/internal/client/api"
	"github.com/ndolgushev/bookstore/internal/client/auth"
	"github.com/ndolgushev/bookstore/internal/client/bookstore"
	"github.com/ndolgushev/bookstore/internal/client/cli"
	"github.com/ndolgushev/bookstore/internal/client/iocli"
	"github.com/ndolgushev/bookstore/internal/client/storage/boltdb"
	"github.com/ndolgushev/bookstore/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg := config.Load()

	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", cfg.ServerURL, "Server URL")
	dbPath := flag.String("db", cfg.DBPath, "Path to local database")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	// Локальное хранилище: единственное, что клиент персистит — пара токенов
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(*serverURL, boltStorage)
	authService := auth.NewService(apiClient, boltStorage)
	storeService := bookstore.NewService(apiClient, authService)

	c := cli.New(iocli.NewStdio(), apiClient, authService, storeService)

	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		if errors.Is(err, api.ErrAuthenticationFailed) {
			// Сессия невосстановима: токены уже удалены
			fmt.Fprintln(os.Stderr, "Session expired. Please run 'bookstore login' again.")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("BookStore Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
