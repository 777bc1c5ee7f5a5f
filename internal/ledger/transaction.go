package ledger

import (
	"fmt"
	"time"
)

// Type classifies a transaction. Investments are tracked per category
// but stay out of the income/expense totals.
type Type string

const (
	TypeIncome     Type = "income"
	TypeExpense    Type = "expense"
	TypeInvestment Type = "investment"
)

// DateLayout is the calendar-date form used everywhere: in the store,
// in documents, and in the persisted blob.
const DateLayout = "2006-01-02"

// Transaction is a single financial event. Amount is always a positive
// magnitude; the sign is implied by Type.
type Transaction struct {
	ID               string  `json:"id"`
	Date             string  `json:"date"`
	Amount           float64 `json:"amount"`
	Type             Type    `json:"type"`
	Category         string  `json:"category"`
	Description      string  `json:"description"`
	Currency         string  `json:"currency"`
	ExcludeFromStats bool    `json:"excludeFromStats,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// Candidate carries the fields of a transaction before the store
// assigns identity and timestamps.
type Candidate struct {
	Date             string  `json:"date"`
	Amount           float64 `json:"amount"`
	Type             Type    `json:"type"`
	Category         string  `json:"category"`
	Description      string  `json:"description"`
	Currency         string  `json:"currency"`
	ExcludeFromStats bool    `json:"excludeFromStats,omitempty"`
}

func (c Candidate) validate() error {
	if c.Amount <= 0 {
		return fmt.Errorf("ledger: amount must be positive, got %v", c.Amount)
	}

	if _, err := time.Parse(DateLayout, c.Date); err != nil {
		return fmt.Errorf("ledger: invalid date %q", c.Date)
	}

	switch c.Type {
	case TypeIncome, TypeExpense, TypeInvestment:
	default:
		return fmt.Errorf("ledger: unknown transaction type %q", c.Type)
	}

	return nil
}

// monthOf extracts the (year, month) pair from an ISO date string.
// Date validity is checked at the store boundary, so this only needs
// the prefix.
func monthOf(date string) (int, int) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, 0
	}

	return t.Year(), int(t.Month())
}

// MonthPrefix returns the "YYYY-MM-" prefix shared by every date in a
// month. ISO date strings compare lexicographically, which the store's
// filters rely on.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}
