// Package app wires the engine together: settings loading with
// markdown-config migration, the ledger store with its document
// projection, the reconciliation pass and the recurring scheduler.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mjarosz/budgetmd/internal/book"
	"github.com/mjarosz/budgetmd/internal/encoding"
	"github.com/mjarosz/budgetmd/internal/ledger"
	"github.com/mjarosz/budgetmd/internal/reconcile"
	"github.com/mjarosz/budgetmd/internal/recurring"
	"github.com/mjarosz/budgetmd/internal/settings"
	"github.com/mjarosz/budgetmd/internal/storage"
)

// App owns one vault: the documents, the persisted ledger blob and the
// configuration.
type App struct {
	docs     storage.Store
	dataFile string
	logger   *slog.Logger
	now      func() time.Time

	settings  *settings.Settings
	store     *ledger.Store
	pass      *reconcile.Pass
	scheduler *recurring.Scheduler
}

// Option configures an App.
type Option func(*App)

// WithNow overrides the clock handed to the store and the scheduler.
func WithNow(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New loads the vault. The markdown config file takes priority over
// the fallback settings; when it is missing the fallback is written
// out so the configuration lives next to the documents from then on.
// A config file that cannot be parsed is logged and ignored rather
// than blocking startup.
func New(docs storage.Store, dataFile string, fallback *settings.Settings, logger *slog.Logger, opts ...Option) (*App, error) {
	a := &App{
		docs:     docs,
		dataFile: dataFile,
		logger:   logger,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.settings = a.loadSettings(fallback)

	a.store = ledger.NewStore(a.settings, ledger.WithNow(a.now))
	a.store.SetWriter(book.NewWriter(a.store, docs, a.settings))

	a.pass = reconcile.NewPass(a.store, docs, a.settings, logger)
	a.scheduler = recurring.NewScheduler(a.store, a.settings, logger, recurring.WithNow(a.now))

	if err := a.loadData(); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *App) loadSettings(fallback *settings.Settings) *settings.Settings {
	path := settings.ConfigPath(fallback.BudgetFolder)

	exists, err := a.docs.Exists(path)
	if err != nil {
		a.logger.Warn("failed to probe config file, using defaults", "path", path, "error", err)

		return fallback
	}

	if !exists {
		if err := a.writeConfig(path, fallback); err != nil {
			a.logger.Warn("failed to migrate settings to config file", "path", path, "error", err)
		} else {
			a.logger.Info("settings migrated to config file", "path", path)
		}

		return fallback
	}

	raw, err := a.docs.Read(path)
	if err != nil {
		a.logger.Warn("failed to read config file, using defaults", "path", path, "error", err)

		return fallback
	}

	content, err := encoding.Decode(raw)
	if err != nil {
		a.logger.Warn("failed to decode config file, using defaults", "path", path, "error", err)

		return fallback
	}

	loaded, err := settings.Parse(content)
	if err != nil {
		a.logger.Warn("failed to parse config file, using defaults", "path", path, "error", err)

		return fallback
	}

	if err := loaded.Validate(); err != nil {
		a.logger.Warn("config file is invalid, using defaults", "path", path, "error", err)

		return fallback
	}

	return loaded
}

func (a *App) writeConfig(path string, set *settings.Settings) error {
	if err := a.docs.EnsureDir(storage.Dir(path)); err != nil {
		return err
	}

	return a.docs.Write(path, []byte(settings.Generate(set)))
}

func (a *App) loadData() error {
	exists, err := a.docs.Exists(a.dataFile)
	if err != nil {
		return fmt.Errorf("failed to probe data file %s: %w", a.dataFile, err)
	}

	if !exists {
		return nil
	}

	blob, err := a.docs.Read(a.dataFile)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", a.dataFile, err)
	}

	return a.store.LoadData(blob)
}

// Store exposes the ledger for handlers and commands.
func (a *App) Store() *ledger.Store {
	return a.store
}

// Settings exposes the active configuration.
func (a *App) Settings() *settings.Settings {
	return a.settings
}

// SaveData persists the ledger blob next to the documents.
func (a *App) SaveData() error {
	blob, err := a.store.DataForSave()
	if err != nil {
		return err
	}

	if err := a.docs.Write(a.dataFile, blob); err != nil {
		return fmt.Errorf("failed to write data file %s: %w", a.dataFile, err)
	}

	return nil
}

// SaveSettings writes the active configuration to the config file.
func (a *App) SaveSettings() error {
	return a.writeConfig(settings.ConfigPath(a.settings.BudgetFolder), a.settings)
}

// UpdateSettings validates and applies a new configuration, then
// persists it. The settings value is shared with the store, the
// writer and the passes, so the change takes effect everywhere at
// once.
func (a *App) UpdateSettings(next *settings.Settings) error {
	if err := next.Validate(); err != nil {
		return err
	}

	*a.settings = *next

	return a.SaveSettings()
}

// SyncFromDocuments runs the reconciliation pass and persists the
// ledger when anything was imported.
func (a *App) SyncFromDocuments() (int, error) {
	n, err := a.pass.Run()
	if err != nil {
		return 0, err
	}

	if n > 0 {
		if err := a.SaveData(); err != nil {
			return n, err
		}
	}

	return n, nil
}

// Backfill materializes due recurring transactions and persists both
// the ledger and the updated rule bookkeeping.
func (a *App) Backfill() (int, error) {
	added, changed := a.scheduler.Run()

	if changed {
		if err := a.SaveSettings(); err != nil {
			return added, err
		}
	}

	if added > 0 {
		if err := a.SaveData(); err != nil {
			return added, err
		}
	}

	return added, nil
}
