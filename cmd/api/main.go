package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/mjarosz/budgetmd/internal/app"
	"github.com/mjarosz/budgetmd/internal/config"
	budgetHttp "github.com/mjarosz/budgetmd/internal/http"
	reportHandler "github.com/mjarosz/budgetmd/internal/http/report"
	settingsHandler "github.com/mjarosz/budgetmd/internal/http/settingsapi"
	syncHandler "github.com/mjarosz/budgetmd/internal/http/syncdocs"
	txHandler "github.com/mjarosz/budgetmd/internal/http/transaction"
	"github.com/mjarosz/budgetmd/internal/locale"
	"github.com/mjarosz/budgetmd/internal/settings"
	"github.com/mjarosz/budgetmd/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	tag := cfg.Locale
	if tag == "" {
		tag = os.Getenv("LANG")
	}

	docs := storage.NewFileStore(afero.NewOsFs(), cfg.Vault.Dir)
	fallback := settings.Default(locale.Detect(tag))

	vault, err := app.New(docs, cfg.Vault.DataFile, fallback, slog.Default())
	if err != nil {
		slog.Error("failed to open vault", "error", err)
		os.Exit(1)
	}

	if n, err := vault.SyncFromDocuments(); err != nil {
		slog.Error("document sync failed", "error", err)
	} else if n > 0 {
		slog.Info("imported transactions from documents", "count", n)
	}

	if n, err := vault.Backfill(); err != nil {
		slog.Error("recurring backfill failed", "error", err)
	} else if n > 0 {
		slog.Info("added recurring transactions", "count", n)
	}

	var (
		transactionH = txHandler.NewHandler(vault.Store(), vault)
		reportH      = reportHandler.NewHandler(vault.Store())
		syncH        = syncHandler.NewHandler(vault)
		settingsH    = settingsHandler.NewHandler(vault)
	)

	router := budgetHttp.New(transactionH, reportH, syncH, settingsH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "vault", cfg.Vault.Dir)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
