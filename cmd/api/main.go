package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/stockpile/backend/internal/account"
	accountStore "github.com/stockpile/backend/internal/account/store"
	"github.com/stockpile/backend/internal/auth"
	"github.com/stockpile/backend/internal/avatar"
	"github.com/stockpile/backend/internal/category"
	categoryStore "github.com/stockpile/backend/internal/category/store"
	"github.com/stockpile/backend/internal/config"
	"github.com/stockpile/backend/internal/customer"
	customerStore "github.com/stockpile/backend/internal/customer/store"
	"github.com/stockpile/backend/internal/database"
	stockpileHttp "github.com/stockpile/backend/internal/http"
	accountHandler "github.com/stockpile/backend/internal/http/account"
	authHandler "github.com/stockpile/backend/internal/http/auth"
	categoryHandler "github.com/stockpile/backend/internal/http/category"
	customerHandler "github.com/stockpile/backend/internal/http/customer"
	ledgerHandler "github.com/stockpile/backend/internal/http/ledger"
	productHandler "github.com/stockpile/backend/internal/http/product"
	"github.com/stockpile/backend/internal/http/respond"
	statsHandler "github.com/stockpile/backend/internal/http/stats"
	supplierHandler "github.com/stockpile/backend/internal/http/supplier"
	"github.com/stockpile/backend/internal/ledger"
	ledgerStore "github.com/stockpile/backend/internal/ledger/store"
	"github.com/stockpile/backend/internal/notify"
	"github.com/stockpile/backend/internal/product"
	productStore "github.com/stockpile/backend/internal/product/store"
	"github.com/stockpile/backend/internal/stats"
	statsStore "github.com/stockpile/backend/internal/stats/store"
	"github.com/stockpile/backend/internal/supplier"
	supplierStore "github.com/stockpile/backend/internal/supplier/store"
)

const avatarPruneInterval = 24 * time.Hour

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	respond.MaskInternalErrors(cfg.Production())

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.ApplySchema(context.Background(), db, cfg.SchemaFile); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	avatars, err := avatar.NewStore(cfg.Avatars.Dir, slog.Default())
	if err != nil {
		slog.Error("failed to init avatar store", "error", err)
		os.Exit(1)
	}

	notifier := notify.NewLogNotifier(slog.Default())
	tokens := auth.NewService(cfg.JWT.Secret, cfg.JWT.TTL)

	var (
		accountService  = account.NewService(accountStore.New(db))
		categoryService = category.NewService(categoryStore.New(db))
		customerService = customer.NewService(customerStore.New(db))
		supplierService = supplier.NewService(supplierStore.New(db))
		productService  = product.NewService(productStore.New(db), notifier, cfg.Stock.LowThreshold)
		ledgerService   = ledger.NewService(ledgerStore.New(db), notifier, cfg.Stock.LowThreshold, slog.Default())
		statsService    = stats.NewService(statsStore.New(db))
	)

	var (
		authH        = authHandler.NewHandler(accountService, tokens, avatars)
		accountH     = accountHandler.NewHandler(accountService, avatars)
		categoryH    = categoryHandler.NewHandler(categoryService)
		customerH    = customerHandler.NewHandler(customerService)
		supplierH    = supplierHandler.NewHandler(supplierService)
		productH     = productHandler.NewHandler(productService)
		transactionH = ledgerHandler.NewHandler(ledgerService)
		statsH       = statsHandler.NewHandler(statsService)
	)

	router := stockpileHttp.New(
		tokens,
		avatars,
		cfg.RateLimit.RequestsPerMinute,
		authH,
		accountH,
		categoryH,
		customerH,
		supplierH,
		productH,
		transactionH,
		statsH,
	)

	go pruneAvatars(accountService, avatars)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port, "env", cfg.App.Env)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// pruneAvatars periodically deletes avatar files no account references.
func pruneAvatars(accounts *account.Service, avatars *avatar.Store) {
	ticker := time.NewTicker(avatarPruneInterval)
	defer ticker.Stop()

	for range ticker.C {
		needed, err := accounts.AvatarFilesInUse(context.Background())
		if err != nil {
			slog.Error("listing avatar files in use", "error", err)
			continue
		}

		avatars.Prune(needed)
	}
}
