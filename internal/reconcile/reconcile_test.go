package reconcile_test

import (
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjarosz/budgetmd/internal/ledger"
	"github.com/mjarosz/budgetmd/internal/locale"
	"github.com/mjarosz/budgetmd/internal/reconcile"
	"github.com/mjarosz/budgetmd/internal/settings"
	"github.com/mjarosz/budgetmd/internal/storage"
)

const marchDocument = `# 📊 Budget: March 2024

## 📝 Transactions

| Date | Type | Category | Description | Amount |
|:-----|:---:|:---------|:------------|-------:|
| 2024-03-15 | 🔴 | 🍕 Food | Groceries | -42.50 USD |
| 2024-03-01 | 💚 | 💰 Salary | Pay | +3000.00 USD |
`

func newPass(t *testing.T, files map[string]string) (*ledger.Store, *reconcile.Pass) {
	t.Helper()

	set := settings.Default(locale.EN)
	store := ledger.NewStore(set)

	docs := storage.NewFileStore(afero.NewMemMapFs(), "/vault")
	for path, content := range files {
		require.NoError(t, docs.EnsureDir(storage.Dir(path)))
		require.NoError(t, docs.Write(path, []byte(content)))
	}

	return store, reconcile.NewPass(store, docs, set, slog.Default())
}

func TestPass_Run(t *testing.T) {
	store, pass := newPass(t, map[string]string{
		"Budget/2024/03-March.md": marchDocument,
	})

	n, err := pass.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, store.Len())

	// Everything matched, so a second pass imports nothing.
	n, err = pass.Run()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 2, store.Len())
}

func TestPass_Run_SkipsKnownTransactions(t *testing.T) {
	store, pass := newPass(t, map[string]string{
		"Budget/2024/03-March.md": marchDocument,
	})

	_, err := store.Add(ledger.Candidate{
		Date:        "2024-03-15",
		Amount:      42.5,
		Type:        ledger.TypeExpense,
		Category:    "food",
		Description: "already here",
	})
	require.NoError(t, err)

	n, err := pass.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, store.Len())
}

func TestPass_Run_IgnoresNonDocuments(t *testing.T) {
	store, pass := newPass(t, map[string]string{
		"Budget/_config.md":   "---\nlocale: en\n---\n",
		"Budget/notes.txt":    "not markdown",
		"Budget/2024/plan.md": "# Plans\n\nNo tables here.\n",
	})

	n, err := pass.Run()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, store.Len())
}

func TestPass_Run_EmptyVault(t *testing.T) {
	_, pass := newPass(t, nil)

	n, err := pass.Run()
	require.NoError(t, err)
	assert.Zero(t, n)
}
