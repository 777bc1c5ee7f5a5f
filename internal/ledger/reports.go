package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/mjarosz/budgetmd/internal/settings"
)

// MonthlySummary aggregates one calendar month. Investment
// transactions count toward ByCategory but never toward
// TotalIncome/TotalExpense.
type MonthlySummary struct {
	Year             int                `json:"year"`
	Month            int                `json:"month"`
	TotalIncome      float64            `json:"totalIncome"`
	TotalExpense     float64            `json:"totalExpense"`
	Balance          float64            `json:"balance"`
	ByCategory       map[string]float64 `json:"byCategory"`
	TransactionCount int                `json:"transactionCount"`
}

// Summarize aggregates the given transactions for (year, month).
// Exported as a pure function so the document generator can derive the
// same numbers from the same input.
func Summarize(year, month int, txns []Transaction, includeExcluded bool) MonthlySummary {
	summary := MonthlySummary{
		Year:       year,
		Month:      month,
		ByCategory: map[string]float64{},
	}

	for _, t := range txns {
		if t.ExcludeFromStats && !includeExcluded {
			continue
		}

		summary.TransactionCount++
		summary.ByCategory[t.Category] += t.Amount

		switch t.Type {
		case TypeIncome:
			summary.TotalIncome += t.Amount
		case TypeExpense:
			summary.TotalExpense += t.Amount
		case TypeInvestment:
			// Tracked per category only.
		}
	}

	summary.Balance = summary.TotalIncome - summary.TotalExpense

	return summary
}

// MonthlySummary aggregates a month of the store's transactions.
func (s *Store) MonthlySummary(year, month int, includeExcluded bool) MonthlySummary {
	return Summarize(year, month, s.TransactionsForMonth(year, month), includeExcluded)
}

// CurrentMonthSummary is MonthlySummary for the clock's current month.
func (s *Store) CurrentMonthSummary() MonthlySummary {
	now := s.now()

	return s.MonthlySummary(now.Year(), int(now.Month()), false)
}

// CategoryAmount is one row of a category breakdown.
type CategoryAmount struct {
	Category string           `json:"category"`
	Name     string           `json:"name"`
	Amount   float64          `json:"amount"`
	Color    string           `json:"color"`
	Icon     string           `json:"icon"`
	Children []CategoryAmount `json:"children,omitempty"`
}

func sortByAmountDesc(rows []CategoryAmount) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount > rows[j].Amount
	})
}

// CategoryBreakdown returns per-category totals for expense-capable
// categories, largest first. Categories no longer present in the
// configuration are omitted. Iteration follows configuration order so
// ties resolve deterministically.
func (s *Store) CategoryBreakdown(year, month int) []CategoryAmount {
	summary := s.MonthlySummary(year, month, false)

	var rows []CategoryAmount

	for _, cat := range s.settings.Categories {
		amount := summary.ByCategory[cat.ID]
		if amount <= 0 || cat.Type == settings.CategoryIncome {
			continue
		}

		rows = append(rows, CategoryAmount{
			Category: cat.ID,
			Name:     cat.Name,
			Amount:   amount,
			Color:    cat.Color,
			Icon:     cat.Icon,
		})
	}

	sortByAmountDesc(rows)

	return rows
}

// HierarchicalCategoryBreakdown rolls subcategory totals up into their
// parents. Each parent row carries its nonzero children, both levels
// sorted largest first.
func (s *Store) HierarchicalCategoryBreakdown(year, month int) []CategoryAmount {
	summary := s.MonthlySummary(year, month, false)

	var rows []CategoryAmount

	for _, cat := range s.settings.Categories {
		if cat.ParentID != "" || cat.Type == settings.CategoryIncome {
			continue
		}

		row := CategoryAmount{
			Category: cat.ID,
			Name:     cat.Name,
			Amount:   summary.ByCategory[cat.ID],
			Color:    cat.Color,
			Icon:     cat.Icon,
		}

		for _, sub := range s.settings.Subcategories(cat.ID) {
			amount := summary.ByCategory[sub.ID]
			if amount <= 0 {
				continue
			}

			row.Amount += amount
			row.Children = append(row.Children, CategoryAmount{
				Category: sub.ID,
				Name:     sub.Name,
				Amount:   amount,
				Color:    sub.Color,
				Icon:     sub.Icon,
			})
		}

		if row.Amount <= 0 {
			continue
		}

		sortByAmountDesc(row.Children)
		rows = append(rows, row)
	}

	sortByAmountDesc(rows)

	return rows
}

// TrendPoint is one month of a trend series.
type TrendPoint struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// Trends returns the last n months including the current one, oldest
// first.
func (s *Store) Trends(n int) []TrendPoint {
	now := s.now()
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := make([]TrendPoint, 0, n)

	for i := n - 1; i >= 0; i-- {
		m := base.AddDate(0, -i, 0)
		summary := s.MonthlySummary(m.Year(), int(m.Month()), false)
		out = append(out, TrendPoint{
			Year:    summary.Year,
			Month:   summary.Month,
			Income:  summary.TotalIncome,
			Expense: summary.TotalExpense,
			Balance: summary.Balance,
		})
	}

	return out
}

// MonthAmount is one month of a per-category series.
type MonthAmount struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

// CategoryTrend is a per-category expense series over a window of
// months. Subcategory spend is rolled into its parent's series.
type CategoryTrend struct {
	Category string        `json:"category"`
	Name     string        `json:"name"`
	Color    string        `json:"color"`
	Icon     string        `json:"icon"`
	Total    float64       `json:"total"`
	Months   []MonthAmount `json:"months"`
}

// CategoryTrends returns the expense series of every top-level
// expense-capable category over the last n months, oldest first,
// skipping categories with no spend at all, sorted by total descending.
func (s *Store) CategoryTrends(n int) []CategoryTrend {
	now := s.now()
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var out []CategoryTrend

	for _, cat := range s.settings.Categories {
		if cat.ParentID != "" || cat.Type == settings.CategoryIncome {
			continue
		}

		ids := map[string]bool{cat.ID: true}
		for _, sub := range s.settings.Subcategories(cat.ID) {
			ids[sub.ID] = true
		}

		trend := CategoryTrend{
			Category: cat.ID,
			Name:     cat.Name,
			Color:    cat.Color,
			Icon:     cat.Icon,
			Months:   make([]MonthAmount, 0, n),
		}

		for i := n - 1; i >= 0; i-- {
			m := base.AddDate(0, -i, 0)
			prefix := MonthPrefix(m.Year(), int(m.Month()))

			var amount float64

			for _, t := range s.transactions {
				if t.Type != TypeExpense || t.ExcludeFromStats {
					continue
				}

				if ids[t.Category] && strings.HasPrefix(t.Date, prefix) {
					amount += t.Amount
				}
			}

			trend.Total += amount
			trend.Months = append(trend.Months, MonthAmount{
				Year:   m.Year(),
				Month:  int(m.Month()),
				Amount: amount,
			})
		}

		if trend.Total > 0 {
			out = append(out, trend)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})

	return out
}

// YearlySummary is a 12-month breakdown plus annual totals.
type YearlySummary struct {
	Year         int              `json:"year"`
	Months       []MonthlySummary `json:"months"`
	TotalIncome  float64          `json:"totalIncome"`
	TotalExpense float64          `json:"totalExpense"`
	Balance      float64          `json:"balance"`
	SavingsRate  float64          `json:"savingsRate"`
}

// YearlySummary aggregates a full calendar year. SavingsRate is the
// balance as a percentage of income, 0 when there was no income.
func (s *Store) YearlySummary(year int) YearlySummary {
	out := YearlySummary{Year: year, Months: make([]MonthlySummary, 0, 12)}

	for month := 1; month <= 12; month++ {
		summary := s.MonthlySummary(year, month, false)
		out.Months = append(out.Months, summary)
		out.TotalIncome += summary.TotalIncome
		out.TotalExpense += summary.TotalExpense
	}

	out.Balance = out.TotalIncome - out.TotalExpense

	if out.TotalIncome > 0 {
		out.SavingsRate = out.Balance / out.TotalIncome * 100
	}

	return out
}

// CategoryAverage is one entry of the top-spending list.
type CategoryAverage struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Monthly  float64 `json:"monthly"`
}

// SpendingAverages summarizes expense magnitude over the whole
// recorded span.
type SpendingAverages struct {
	Daily         float64           `json:"daily"`
	Weekly        float64           `json:"weekly"`
	Monthly       float64           `json:"monthly"`
	TopCategories []CategoryAverage `json:"topCategories"`
}

const daysPerMonth = 30.44

// AverageSpending computes daily/weekly/monthly expense averages over
// the span from the earliest recorded expense to now. Spans are floored
// at one day and one month so a fresh ledger never divides by zero.
func (s *Store) AverageSpending() SpendingAverages {
	var (
		first      string
		total      float64
		byCategory = map[string]float64{}
	)

	for _, t := range s.transactions {
		if t.Type != TypeExpense || t.ExcludeFromStats {
			continue
		}

		if first == "" || t.Date < first {
			first = t.Date
		}

		total += t.Amount
		byCategory[t.Category] += t.Amount
	}

	if first == "" {
		return SpendingAverages{}
	}

	start, _ := time.Parse(DateLayout, first)

	days := s.now().Sub(start).Hours() / 24
	if days < 1 {
		days = 1
	}

	months := days / daysPerMonth
	if months < 1 {
		months = 1
	}

	out := SpendingAverages{
		Daily:   total / days,
		Weekly:  total / days * 7,
		Monthly: total / months,
	}

	for _, cat := range s.settings.Categories {
		amount := byCategory[cat.ID]
		if amount <= 0 {
			continue
		}

		out.TopCategories = append(out.TopCategories, CategoryAverage{
			Category: cat.ID,
			Name:     cat.Name,
			Monthly:  amount / months,
		})
	}

	sort.SliceStable(out.TopCategories, func(i, j int) bool {
		return out.TopCategories[i].Monthly > out.TopCategories[j].Monthly
	})

	if len(out.TopCategories) > 5 {
		out.TopCategories = out.TopCategories[:5]
	}

	return out
}

// Budget threshold percentages.
const (
	budgetWarning  = 80
	budgetExceeded = 100
)

// BudgetLevel grades spend against a category's monthly limit.
type BudgetLevel string

const (
	BudgetOK       BudgetLevel = "ok"
	BudgetWarning  BudgetLevel = "warning"
	BudgetExceeded BudgetLevel = "exceeded"
)

// BudgetStatus reports one category's spend against its limit.
type BudgetStatus struct {
	Category string      `json:"category"`
	Name     string      `json:"name"`
	Limit    float64     `json:"limit"`
	Spent    float64     `json:"spent"`
	Percent  float64     `json:"percent"`
	Level    BudgetLevel `json:"level"`
}

// BudgetStatuses reports spend against every configured budget limit
// for a month.
func (s *Store) BudgetStatuses(year, month int) []BudgetStatus {
	summary := s.MonthlySummary(year, month, false)

	var out []BudgetStatus

	for _, cat := range s.settings.Categories {
		if cat.BudgetLimit <= 0 {
			continue
		}

		spent := summary.ByCategory[cat.ID]
		percent := spent / cat.BudgetLimit * 100

		level := BudgetOK

		switch {
		case percent >= budgetExceeded:
			level = BudgetExceeded
		case percent >= budgetWarning:
			level = BudgetWarning
		}

		out = append(out, BudgetStatus{
			Category: cat.ID,
			Name:     cat.Name,
			Limit:    cat.BudgetLimit,
			Spent:    spent,
			Percent:  percent,
			Level:    level,
		})
	}

	return out
}
