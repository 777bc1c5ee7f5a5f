package book

import (
	"fmt"

	"github.com/mjarosz/budgetmd/internal/ledger"
	"github.com/mjarosz/budgetmd/internal/settings"
	"github.com/mjarosz/budgetmd/internal/storage"
)

// TransactionSource provides the transactions a month document is
// rendered from.
type TransactionSource interface {
	TransactionsForMonth(year, month int) []ledger.Transaction
}

// Writer regenerates the document projection of a month on disk.
type Writer struct {
	src      TransactionSource
	docs     storage.Store
	gen      *Generator
	settings *settings.Settings
}

func NewWriter(src TransactionSource, docs storage.Store, set *settings.Settings) *Writer {
	return &Writer{
		src:      src,
		docs:     docs,
		gen:      NewGenerator(set),
		settings: set,
	}
}

// WriteMonth renders the month from the source of truth and writes the
// document, creating the year directory when needed.
func (w *Writer) WriteMonth(year, month int) error {
	path := DocumentPath(w.settings.BudgetFolder, w.settings.Locale, year, month)

	if err := w.docs.EnsureDir(storage.Dir(path)); err != nil {
		return fmt.Errorf("failed to create month directory: %w", err)
	}

	content := w.gen.Render(year, month, w.src.TransactionsForMonth(year, month))

	if err := w.docs.Write(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write month document %s: %w", path, err)
	}

	return nil
}
