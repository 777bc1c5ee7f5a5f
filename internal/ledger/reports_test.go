package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjarosz/budgetmd/internal/ledger"
	"github.com/mjarosz/budgetmd/internal/locale"
	"github.com/mjarosz/budgetmd/internal/settings"
)

func seedStore(t *testing.T, now string, candidates []ledger.Candidate) *ledger.Store {
	t.Helper()

	store := ledger.NewStore(settings.Default(locale.EN), ledger.WithNow(fixedNow(t, now)))
	for _, c := range candidates {
		_, err := store.Add(c)
		require.NoError(t, err)
	}

	return store
}

func TestSummarize(t *testing.T) {
	txns := []ledger.Transaction{
		{Date: "2024-03-01", Amount: 3000, Type: ledger.TypeIncome, Category: "salary"},
		{Date: "2024-03-05", Amount: 120, Type: ledger.TypeExpense, Category: "food"},
		{Date: "2024-03-10", Amount: 80, Type: ledger.TypeExpense, Category: "food"},
		{Date: "2024-03-12", Amount: 500, Type: ledger.TypeInvestment, Category: "investment"},
		{Date: "2024-03-15", Amount: 999, Type: ledger.TypeExpense, Category: "shopping", ExcludeFromStats: true},
	}

	t.Run("excluded transactions are skipped", func(t *testing.T) {
		summary := ledger.Summarize(2024, 3, txns, false)

		assert.Equal(t, 3000.0, summary.TotalIncome)
		assert.Equal(t, 200.0, summary.TotalExpense)
		assert.Equal(t, 2800.0, summary.Balance)
		assert.Equal(t, 4, summary.TransactionCount)
		assert.Equal(t, 200.0, summary.ByCategory["food"])
		assert.NotContains(t, summary.ByCategory, "shopping")
	})

	t.Run("includeExcluded counts everything", func(t *testing.T) {
		summary := ledger.Summarize(2024, 3, txns, true)

		assert.Equal(t, 1199.0, summary.TotalExpense)
		assert.Equal(t, 5, summary.TransactionCount)
		assert.Equal(t, 999.0, summary.ByCategory["shopping"])
	})

	t.Run("investments stay out of the totals", func(t *testing.T) {
		summary := ledger.Summarize(2024, 3, txns, false)

		assert.Equal(t, 500.0, summary.ByCategory["investment"])
		assert.Equal(t, 3000.0-200.0, summary.Balance)
	})

	t.Run("empty month", func(t *testing.T) {
		summary := ledger.Summarize(2024, 4, nil, false)

		assert.Zero(t, summary.TotalIncome)
		assert.Zero(t, summary.TotalExpense)
		assert.Zero(t, summary.TransactionCount)
		assert.Empty(t, summary.ByCategory)
	})
}

func TestStore_CategoryBreakdown(t *testing.T) {
	store := seedStore(t, "2024-03-20T12:00:00Z", []ledger.Candidate{
		{Date: "2024-03-01", Amount: 3000, Type: ledger.TypeIncome, Category: "salary"},
		{Date: "2024-03-05", Amount: 120, Type: ledger.TypeExpense, Category: "food"},
		{Date: "2024-03-10", Amount: 300, Type: ledger.TypeExpense, Category: "bills"},
		{Date: "2024-03-12", Amount: 40, Type: ledger.TypeExpense, Category: "transport"},
	})

	rows := store.CategoryBreakdown(2024, 3)
	require.Len(t, rows, 3)

	assert.Equal(t, "bills", rows[0].Category)
	assert.Equal(t, 300.0, rows[0].Amount)
	assert.Equal(t, "food", rows[1].Category)
	assert.Equal(t, "transport", rows[2].Category)
	assert.Equal(t, "🍕", rows[1].Icon)
}

func TestStore_HierarchicalCategoryBreakdown(t *testing.T) {
	set := settings.Default(locale.EN)
	set.Categories = append(set.Categories, settings.Category{
		ID:       "restaurants",
		Name:     "Restaurants",
		Icon:     "🍽️",
		Type:     settings.CategoryExpense,
		Color:    "#FF6B6B",
		ParentID: "food",
	})

	store := ledger.NewStore(set, ledger.WithNow(fixedNow(t, "2024-03-20T12:00:00Z")))
	for _, c := range []ledger.Candidate{
		{Date: "2024-03-05", Amount: 120, Type: ledger.TypeExpense, Category: "food"},
		{Date: "2024-03-08", Amount: 60, Type: ledger.TypeExpense, Category: "restaurants"},
		{Date: "2024-03-10", Amount: 100, Type: ledger.TypeExpense, Category: "bills"},
	} {
		_, err := store.Add(c)
		require.NoError(t, err)
	}

	rows := store.HierarchicalCategoryBreakdown(2024, 3)
	require.Len(t, rows, 2)

	assert.Equal(t, "food", rows[0].Category)
	assert.Equal(t, 180.0, rows[0].Amount)
	require.Len(t, rows[0].Children, 1)
	assert.Equal(t, "restaurants", rows[0].Children[0].Category)
	assert.Equal(t, 60.0, rows[0].Children[0].Amount)

	assert.Equal(t, "bills", rows[1].Category)
	assert.Empty(t, rows[1].Children)
}

func TestStore_Trends(t *testing.T) {
	store := seedStore(t, "2024-03-20T12:00:00Z", []ledger.Candidate{
		{Date: "2024-01-10", Amount: 1000, Type: ledger.TypeIncome, Category: "salary"},
		{Date: "2024-01-15", Amount: 400, Type: ledger.TypeExpense, Category: "food"},
		{Date: "2024-03-10", Amount: 1200, Type: ledger.TypeIncome, Category: "salary"},
	})

	points := store.Trends(3)
	require.Len(t, points, 3)

	assert.Equal(t, 1, points[0].Month)
	assert.Equal(t, 600.0, points[0].Balance)

	assert.Equal(t, 2, points[1].Month)
	assert.Zero(t, points[1].Income)

	assert.Equal(t, 3, points[2].Month)
	assert.Equal(t, 1200.0, points[2].Income)
}

func TestStore_CategoryTrends(t *testing.T) {
	store := seedStore(t, "2024-03-20T12:00:00Z", []ledger.Candidate{
		{Date: "2024-02-10", Amount: 100, Type: ledger.TypeExpense, Category: "food"},
		{Date: "2024-03-10", Amount: 150, Type: ledger.TypeExpense, Category: "food"},
		{Date: "2024-03-12", Amount: 300, Type: ledger.TypeExpense, Category: "bills"},
		{Date: "2024-03-15", Amount: 50, Type: ledger.TypeExpense, Category: "shopping", ExcludeFromStats: true},
	})

	trends := store.CategoryTrends(2)
	require.Len(t, trends, 2)

	assert.Equal(t, "bills", trends[0].Category)
	assert.Equal(t, 300.0, trends[0].Total)

	assert.Equal(t, "food", trends[1].Category)
	assert.Equal(t, 250.0, trends[1].Total)
	require.Len(t, trends[1].Months, 2)
	assert.Equal(t, 2, trends[1].Months[0].Month)
	assert.Equal(t, 100.0, trends[1].Months[0].Amount)
	assert.Equal(t, 150.0, trends[1].Months[1].Amount)
}

func TestStore_YearlySummary(t *testing.T) {
	store := seedStore(t, "2024-06-20T12:00:00Z", []ledger.Candidate{
		{Date: "2024-01-10", Amount: 1000, Type: ledger.TypeIncome, Category: "salary"},
		{Date: "2024-01-15", Amount: 400, Type: ledger.TypeExpense, Category: "food"},
		{Date: "2024-02-10", Amount: 1000, Type: ledger.TypeIncome, Category: "salary"},
		{Date: "2024-02-15", Amount: 100, Type: ledger.TypeExpense, Category: "bills"},
		{Date: "2023-12-31", Amount: 999, Type: ledger.TypeExpense, Category: "shopping"},
	})

	summary := store.YearlySummary(2024)
	require.Len(t, summary.Months, 12)

	assert.Equal(t, 2000.0, summary.TotalIncome)
	assert.Equal(t, 500.0, summary.TotalExpense)
	assert.Equal(t, 1500.0, summary.Balance)
	assert.InDelta(t, 75.0, summary.SavingsRate, 0.001)

	empty := store.YearlySummary(2020)
	assert.Zero(t, empty.SavingsRate)
}

func TestStore_AverageSpending(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		store := seedStore(t, "2024-03-20T12:00:00Z", nil)

		assert.Zero(t, store.AverageSpending().Daily)
	})

	t.Run("span floors at one day and one month", func(t *testing.T) {
		store := seedStore(t, "2024-03-15T06:00:00Z", []ledger.Candidate{
			{Date: "2024-03-15", Amount: 90, Type: ledger.TypeExpense, Category: "food"},
		})

		avg := store.AverageSpending()
		assert.Equal(t, 90.0, avg.Daily)
		assert.Equal(t, 630.0, avg.Weekly)
		assert.Equal(t, 90.0, avg.Monthly)
	})

	t.Run("top categories sorted by monthly average", func(t *testing.T) {
		store := seedStore(t, "2024-03-20T12:00:00Z", []ledger.Candidate{
			{Date: "2024-03-18", Amount: 10, Type: ledger.TypeExpense, Category: "transport"},
			{Date: "2024-03-19", Amount: 200, Type: ledger.TypeExpense, Category: "bills"},
			{Date: "2024-03-19", Amount: 50, Type: ledger.TypeExpense, Category: "food"},
		})

		avg := store.AverageSpending()
		require.Len(t, avg.TopCategories, 3)
		assert.Equal(t, "bills", avg.TopCategories[0].Category)
		assert.Equal(t, "food", avg.TopCategories[1].Category)
		assert.Equal(t, "transport", avg.TopCategories[2].Category)
	})
}

func TestStore_BudgetStatuses(t *testing.T) {
	set := settings.Default(locale.EN)
	for i := range set.Categories {
		switch set.Categories[i].ID {
		case "food":
			set.Categories[i].BudgetLimit = 500
		case "transport":
			set.Categories[i].BudgetLimit = 100
		case "bills":
			set.Categories[i].BudgetLimit = 200
		}
	}

	store := ledger.NewStore(set, ledger.WithNow(fixedNow(t, "2024-03-20T12:00:00Z")))
	for _, c := range []ledger.Candidate{
		{Date: "2024-03-05", Amount: 100, Type: ledger.TypeExpense, Category: "food"},
		{Date: "2024-03-08", Amount: 85, Type: ledger.TypeExpense, Category: "transport"},
		{Date: "2024-03-10", Amount: 250, Type: ledger.TypeExpense, Category: "bills"},
	} {
		_, err := store.Add(c)
		require.NoError(t, err)
	}

	statuses := store.BudgetStatuses(2024, 3)
	require.Len(t, statuses, 3)

	byID := map[string]ledger.BudgetStatus{}
	for _, st := range statuses {
		byID[st.Category] = st
	}

	assert.Equal(t, ledger.BudgetOK, byID["food"].Level)
	assert.InDelta(t, 20.0, byID["food"].Percent, 0.001)

	assert.Equal(t, ledger.BudgetWarning, byID["transport"].Level)
	assert.Equal(t, ledger.BudgetExceeded, byID["bills"].Level)
	assert.InDelta(t, 125.0, byID["bills"].Percent, 0.001)
}

func TestStore_CurrentMonthSummary(t *testing.T) {
	store := seedStore(t, "2024-03-20T12:00:00Z", []ledger.Candidate{
		{Date: "2024-03-10", Amount: 500, Type: ledger.TypeIncome, Category: "salary"},
		{Date: "2024-02-10", Amount: 999, Type: ledger.TypeIncome, Category: "salary"},
	})

	summary := store.CurrentMonthSummary()
	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, 3, summary.Month)
	assert.Equal(t, 500.0, summary.TotalIncome)
}
