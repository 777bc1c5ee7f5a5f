// Package reconcile imports hand-edited document rows back into the
// ledger. Documents are scanned for transaction tables, and rows the
// ledger does not already hold a close match for are imported without
// triggering document regeneration.
package reconcile

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mjarosz/budgetmd/internal/book"
	"github.com/mjarosz/budgetmd/internal/encoding"
	"github.com/mjarosz/budgetmd/internal/ledger"
	"github.com/mjarosz/budgetmd/internal/settings"
	"github.com/mjarosz/budgetmd/internal/storage"
)

// Ledger is the slice of the store the pass needs: duplicate probing
// and regeneration-free inserts.
type Ledger interface {
	HasSimilar(date string, typ ledger.Type, category string, amount float64) bool
	Import(c ledger.Candidate) (*ledger.Transaction, error)
}

// Pass walks the budget folder once and imports unknown rows.
type Pass struct {
	store    Ledger
	docs     storage.Store
	parser   *book.Parser
	settings *settings.Settings
	logger   *slog.Logger
}

func NewPass(store Ledger, docs storage.Store, set *settings.Settings, logger *slog.Logger) *Pass {
	return &Pass{
		store:    store,
		docs:     docs,
		parser:   book.NewParser(set),
		settings: set,
		logger:   logger,
	}
}

// Run scans every markdown document under the budget folder and
// returns the number of imported transactions. A document that cannot
// be read or decoded is logged and skipped; only a failure to list the
// folder aborts the pass.
func (p *Pass) Run() (int, error) {
	paths, err := p.docs.List(p.settings.BudgetFolder)
	if err != nil {
		return 0, fmt.Errorf("failed to list budget folder %s: %w", p.settings.BudgetFolder, err)
	}

	imported := 0

	for _, path := range paths {
		if !strings.HasSuffix(path, ".md") || strings.HasSuffix(path, settings.ConfigFileName) {
			continue
		}

		n, err := p.runFile(path)
		if err != nil {
			p.logger.Warn("skipping document", "path", path, "error", err)

			continue
		}

		imported += n
	}

	return imported, nil
}

func (p *Pass) runFile(path string) (int, error) {
	raw, err := p.docs.Read(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read document: %w", err)
	}

	content, err := encoding.Decode(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to decode document: %w", err)
	}

	imported := 0

	for _, c := range p.parser.Parse(content) {
		if p.store.HasSimilar(c.Date, c.Type, c.Category, c.Amount) {
			continue
		}

		if _, err := p.store.Import(c); err != nil {
			p.logger.Warn("failed to import row", "path", path, "date", c.Date, "error", err)

			continue
		}

		imported++
	}

	return imported, nil
}
