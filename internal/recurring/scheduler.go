// Package recurring materializes scheduled transactions. Each run
// walks every month since a rule was last processed and adds the
// missed occurrences, so a ledger that sat idle for months catches up
// in one pass.
package recurring

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mjarosz/budgetmd/internal/ledger"
	"github.com/mjarosz/budgetmd/internal/settings"
)

// Marker prefixed to the description of generated transactions.
const Marker = "🔄"

// Adder is the ledger surface the scheduler needs.
type Adder interface {
	Add(c ledger.Candidate) (*ledger.Transaction, error)
}

// Scheduler backfills recurring transactions into the ledger.
type Scheduler struct {
	store    Adder
	settings *settings.Settings
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithNow overrides the scheduler's clock.
func WithNow(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func NewScheduler(store Adder, set *settings.Settings, logger *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:    store,
		settings: set,
		logger:   logger,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run processes every active rule and returns the number of added
// transactions. It mutates LastProcessed (and CreatedAt for rules that
// never carried one) in place; changed reports whether the settings
// need saving.
func (s *Scheduler) Run() (added int, changed bool) {
	now := s.now()
	today := now.Format(ledger.DateLayout)
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := range s.settings.RecurringTransactions {
		rule := &s.settings.RecurringTransactions[i]
		if !rule.IsActive {
			continue
		}

		if rule.LastProcessed == "" && rule.CreatedAt == "" {
			// A rule without any date anchor gets stamped now and
			// picked up on the next run.
			rule.CreatedAt = today
			changed = true

			continue
		}

		start, err := s.startMonth(rule)
		if err != nil {
			s.logger.Warn("skipping recurring rule with malformed dates",
				"rule", rule.Name, "error", err)

			continue
		}

		for process := start.AddDate(0, 1, 0); !process.After(currentMonth); process = process.AddDate(0, 1, 0) {
			if process.Equal(currentMonth) && now.Day() < rule.DayOfMonth {
				break
			}

			date := fmt.Sprintf("%04d-%02d-%02d", process.Year(), int(process.Month()), rule.DayOfMonth)

			tx, err := s.store.Add(ledger.Candidate{
				Date:        date,
				Amount:      rule.Amount,
				Type:        ledger.Type(rule.Type),
				Category:    rule.Category,
				Description: Marker + " " + rule.Name,
				Currency:    s.settings.DefaultCurrency,
			})
			if tx == nil {
				s.logger.Warn("failed to add recurring transaction",
					"rule", rule.Name, "date", date, "error", err)

				break
			}

			if err != nil {
				s.logger.Warn("recurring transaction added but document write failed",
					"rule", rule.Name, "date", date, "error", err)
			}

			rule.LastProcessed = date
			added++
			changed = true

			s.logger.Info("added recurring transaction", "rule", rule.Name, "date", date)
		}
	}

	return added, changed
}

// startMonth returns the first day of the month the walk starts from:
// the LastProcessed month, or the month before CreatedAt so creation
// month itself gets processed.
func (s *Scheduler) startMonth(rule *settings.Recurring) (time.Time, error) {
	anchor := rule.LastProcessed
	shift := 0

	if anchor == "" {
		anchor = rule.CreatedAt
		shift = -1
	}

	t, err := time.Parse(ledger.DateLayout, anchor)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid anchor date %q: %w", anchor, err)
	}

	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, shift, 0), nil
}
