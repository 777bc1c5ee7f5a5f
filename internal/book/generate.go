package book

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mjarosz/budgetmd/internal/ledger"
	"github.com/mjarosz/budgetmd/internal/locale"
	"github.com/mjarosz/budgetmd/internal/money"
	"github.com/mjarosz/budgetmd/internal/settings"
)

// Type glyphs used in the document's type column.
const (
	markIncome     = "💚"
	markExpense    = "🔴"
	markInvestment = "📈"

	markExcluded = "🚫"

	emptyDescription = "-"
)

// Generator renders month documents.
type Generator struct {
	settings *settings.Settings
}

func NewGenerator(set *settings.Settings) *Generator {
	return &Generator{settings: set}
}

// Render produces the full markdown document for one month. Output is
// deterministic: rendering the same transactions twice is
// byte-identical, so regeneration never churns files that did not
// change.
func (g *Generator) Render(year, month int, txns []ledger.Transaction) string {
	labels := locale.For(g.settings.Locale)
	summary := ledger.Summarize(year, month, txns, false)

	var b strings.Builder

	fmt.Fprintf(&b, "# %s %s %d\n\n", labels.MonthTitle, locale.MonthName(g.settings.Locale, month), year)

	fmt.Fprintf(&b, "## %s\n\n", labels.Summary)
	fmt.Fprintf(&b, "| %s | %s | %s |\n", labels.Incomes, labels.Expenses, labels.Balance)
	b.WriteString("|----------:|-----------:|----------:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s |\n\n",
		money.FormatSigned(summary.TotalIncome, g.settings.DefaultCurrency),
		money.Format(-summary.TotalExpense, g.settings.DefaultCurrency),
		money.FormatSigned(summary.Balance, g.settings.DefaultCurrency),
	)

	if len(txns) == 0 {
		fmt.Fprintf(&b, "> %s\n", labels.NoTransactions)

		return b.String()
	}

	sorted := make([]ledger.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	fmt.Fprintf(&b, "## %s\n\n", labels.Transactions)
	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
		labels.Date, labels.Type, labels.Category, labels.Description, labels.Amount)
	b.WriteString("|:-----------|:----:|:---------------|:------------|-----------:|\n")

	for _, t := range sorted {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			t.Date, typeMark(t.Type), g.categoryCell(t.Category), descriptionCell(t), amountCell(t))
	}

	return b.String()
}

func typeMark(t ledger.Type) string {
	switch t {
	case ledger.TypeIncome:
		return markIncome
	case ledger.TypeInvestment:
		return markInvestment
	default:
		return markExpense
	}
}

// categoryCell renders "icon name" for configured categories and falls
// back to the raw id so unknown categories survive a round trip.
func (g *Generator) categoryCell(id string) string {
	cat := g.settings.Category(id)
	if cat == nil {
		return id
	}

	if cat.Icon == "" {
		return cat.Name
	}

	return cat.Icon + " " + cat.Name
}

func descriptionCell(t ledger.Transaction) string {
	desc := t.Description
	if desc == "" {
		desc = emptyDescription
	}

	if t.ExcludeFromStats {
		desc += " " + markExcluded
	}

	return desc
}

// amountCell renders the signed amount: income positive, everything
// else negative. The parser reads the sign back from this column.
func amountCell(t ledger.Transaction) string {
	if t.Type == ledger.TypeIncome {
		return money.FormatSigned(t.Amount, t.Currency)
	}

	return money.Format(-t.Amount, t.Currency)
}
