// Package settings holds the ledger configuration object and its
// document codec. The configuration is persisted as a `_config.md`
// document with YAML frontmatter so it travels with the budget folder.
package settings

import (
	"fmt"

	"github.com/mjarosz/budgetmd/internal/locale"
)

// CategoryType says which side of the ledger a category applies to.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
	CategoryBoth    CategoryType = "both"
)

// Category is a classification bucket for transactions. A category may
// nest one level under a parent; deeper nesting is rejected.
type Category struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Icon        string       `yaml:"icon" json:"icon"`
	Type        CategoryType `yaml:"type" json:"type"`
	Color       string       `yaml:"color" json:"color"`
	ParentID    string       `yaml:"parentId,omitempty" json:"parentId,omitempty"`
	BudgetLimit float64      `yaml:"budgetLimit,omitempty" json:"budgetLimit,omitempty"`
}

// Recurring is a template from which the scheduler materializes one
// transaction per month.
type Recurring struct {
	ID            string  `yaml:"id" json:"id"`
	Name          string  `yaml:"name" json:"name"`
	Amount        float64 `yaml:"amount" json:"amount"`
	Type          string  `yaml:"type" json:"type"`
	Category      string  `yaml:"category" json:"category"`
	DayOfMonth    int     `yaml:"dayOfMonth" json:"dayOfMonth"`
	IsActive      bool    `yaml:"isActive" json:"isActive"`
	CreatedAt     string  `yaml:"createdAt,omitempty" json:"createdAt,omitempty"`
	LastProcessed string  `yaml:"lastProcessed,omitempty" json:"lastProcessed,omitempty"`
}

// Settings is the full configuration object.
type Settings struct {
	Locale                 locale.Locale `yaml:"locale" json:"locale"`
	DefaultCurrency        string        `yaml:"defaultCurrency" json:"defaultCurrency"`
	BudgetFolder           string        `yaml:"budgetFolder" json:"budgetFolder"`
	ShowBalanceInStatusBar bool          `yaml:"showBalanceInStatusBar" json:"showBalanceInStatusBar"`
	DateFormat             string        `yaml:"dateFormat" json:"dateFormat"`
	Currencies             []string      `yaml:"currencies" json:"currencies"`
	Categories             []Category    `yaml:"categories" json:"categories"`
	RecurringTransactions  []Recurring   `yaml:"recurringTransactions" json:"recurringTransactions"`
}

// Category looks up a category by id. Returns nil when absent, which
// callers treat as a dangling legacy reference.
func (s *Settings) Category(id string) *Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}

	return nil
}

// Subcategories returns the categories nesting directly under parentID,
// in configuration order.
func (s *Settings) Subcategories(parentID string) []Category {
	var out []Category

	for _, c := range s.Categories {
		if c.ParentID == parentID && c.ParentID != "" {
			out = append(out, c)
		}
	}

	return out
}

// Validate checks the category invariants: parent references must
// resolve, parents must be top-level, and budget limits only make
// sense on expense-capable categories.
func (s *Settings) Validate() error {
	for _, c := range s.Categories {
		if c.ParentID == "" {
			continue
		}

		parent := s.Category(c.ParentID)
		if parent == nil {
			return fmt.Errorf("category %q: parent %q does not exist", c.ID, c.ParentID)
		}

		if parent.ParentID != "" {
			return fmt.Errorf("category %q: parent %q is itself a subcategory", c.ID, c.ParentID)
		}
	}

	for _, c := range s.Categories {
		if c.BudgetLimit > 0 && c.Type == CategoryIncome {
			return fmt.Errorf("category %q: budget limit on an income category", c.ID)
		}
	}

	for _, r := range s.RecurringTransactions {
		if r.DayOfMonth < 1 || r.DayOfMonth > 28 {
			return fmt.Errorf("recurring %q: dayOfMonth %d out of range 1-28", r.ID, r.DayOfMonth)
		}
	}

	return nil
}

// Default returns the out-of-the-box settings for a locale, matching
// the stock category set.
func Default(l locale.Locale) *Settings {
	names := locale.CategoryNames(l)

	expense := []struct {
		id, icon, color string
	}{
		{"food", "🍕", "#e74c3c"},
		{"transport", "🚗", "#3498db"},
		{"entertainment", "🎬", "#9b59b6"},
		{"shopping", "🛒", "#e67e22"},
		{"bills", "📄", "#1abc9c"},
		{"health", "💊", "#2ecc71"},
		{"education", "📚", "#f39c12"},
		{"other-expense", "📦", "#95a5a6"},
	}

	income := []struct {
		id, icon, color string
	}{
		{"salary", "💰", "#27ae60"},
		{"freelance", "💻", "#2980b9"},
		{"investment", "📈", "#8e44ad"},
		{"gift", "🎁", "#e91e63"},
		{"other-income", "✨", "#00bcd4"},
	}

	cats := make([]Category, 0, len(expense)+len(income))
	for _, c := range expense {
		cats = append(cats, Category{ID: c.id, Name: names[c.id], Icon: c.icon, Type: CategoryExpense, Color: c.color})
	}

	for _, c := range income {
		cats = append(cats, Category{ID: c.id, Name: names[c.id], Icon: c.icon, Type: CategoryIncome, Color: c.color})
	}

	return &Settings{
		Locale:                 l,
		DefaultCurrency:        "USD",
		BudgetFolder:           "Budget",
		ShowBalanceInStatusBar: true,
		DateFormat:             "YYYY-MM-DD",
		Currencies:             []string{"USD", "EUR", "GBP", "PLN"},
		Categories:             cats,
		RecurringTransactions:  []Recurring{},
	}
}
