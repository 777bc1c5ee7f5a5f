// Package ledger holds the authoritative in-memory transaction
// collection. The month documents on disk are a projection derived
// from this store; every mutation here triggers a rewrite of the
// affected month's document through the MonthWriter.
package ledger

import (
	"errors"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mjarosz/budgetmd/internal/settings"
)

// ErrNotFound marks lookups for ids the store does not hold.
var ErrNotFound = errors.New("ledger: transaction not found")

// MonthWriter regenerates the document projection of one month.
type MonthWriter interface {
	WriteMonth(year, month int) error
}

// Store owns the transaction collection. It is written by a single
// logical actor (see the command wiring), so it carries no locking.
type Store struct {
	settings     *settings.Settings
	writer       MonthWriter
	now          func() time.Time
	transactions []Transaction
}

// Option configures a Store.
type Option func(*Store)

// WithNow overrides the store's clock, used by tests and anything that
// needs deterministic "current month" behavior.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(set *settings.Settings, opts ...Option) *Store {
	s := &Store{
		settings: set,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetWriter wires the document projection. The writer needs the store
// to read month contents, so it is attached after construction.
func (s *Store) SetWriter(w MonthWriter) {
	s.writer = w
}

// UpdateSettings swaps the configuration the store consults for
// default currency and category metadata.
func (s *Store) UpdateSettings(set *settings.Settings) {
	s.settings = set
}

// Add validates the candidate, assigns identity and timestamps, stores
// it and regenerates the month document. When the document write fails
// the in-memory insert has already happened; the returned transaction
// is non-nil alongside the error and the document catches up on the
// next regeneration.
func (s *Store) Add(c Candidate) (*Transaction, error) {
	tx, err := s.insert(c)
	if err != nil {
		return nil, err
	}

	return tx, s.writeMonth(tx.Date)
}

// Import stores a candidate without touching the month documents. The
// reconciliation pass uses it: the document being read is the source of
// the data, so regenerating it would be a feedback loop.
func (s *Store) Import(c Candidate) (*Transaction, error) {
	return s.insert(c)
}

func (s *Store) insert(c Candidate) (*Transaction, error) {
	if c.Currency == "" {
		c.Currency = s.settings.DefaultCurrency
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	now := s.now().Format(time.RFC3339)
	tx := Transaction{
		ID:               uuid.NewString(),
		Date:             c.Date,
		Amount:           c.Amount,
		Type:             c.Type,
		Category:         c.Category,
		Description:      c.Description,
		Currency:         c.Currency,
		ExcludeFromStats: c.ExcludeFromStats,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	s.transactions = append(s.transactions, tx)
	out := tx

	return &out, nil
}

// Patch carries partial updates; nil fields are left untouched.
type Patch struct {
	Date             *string  `json:"date,omitempty"`
	Amount           *float64 `json:"amount,omitempty"`
	Type             *Type    `json:"type,omitempty"`
	Category         *string  `json:"category,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Currency         *string  `json:"currency,omitempty"`
	ExcludeFromStats *bool    `json:"excludeFromStats,omitempty"`
}

// Update merges the patch over the stored record and refreshes
// UpdatedAt. The merge happens on a copy and is validated as a whole
// before anything is stored, so a rejected patch leaves the record
// untouched. When the date moves across a month boundary both the old
// and the new month documents are regenerated, otherwise a stale row
// would linger in the old month's file.
func (s *Store) Update(id string, p Patch) (*Transaction, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	merged := s.transactions[idx]
	oldDate := merged.Date

	if p.Date != nil {
		merged.Date = *p.Date
	}

	if p.Amount != nil {
		merged.Amount = *p.Amount
	}

	if p.Type != nil {
		merged.Type = *p.Type
	}

	if p.Category != nil {
		merged.Category = *p.Category
	}

	if p.Description != nil {
		merged.Description = *p.Description
	}

	if p.Currency != nil {
		merged.Currency = *p.Currency
	}

	if p.ExcludeFromStats != nil {
		merged.ExcludeFromStats = *p.ExcludeFromStats
	}

	candidate := Candidate{
		Date:             merged.Date,
		Amount:           merged.Amount,
		Type:             merged.Type,
		Category:         merged.Category,
		Description:      merged.Description,
		Currency:         merged.Currency,
		ExcludeFromStats: merged.ExcludeFromStats,
	}
	if err := candidate.validate(); err != nil {
		return nil, err
	}

	merged.UpdatedAt = s.now().Format(time.RFC3339)
	s.transactions[idx] = merged

	err := s.writeMonth(merged.Date)

	oldYear, oldMonth := monthOf(oldDate)
	newYear, newMonth := monthOf(merged.Date)

	if oldYear != newYear || oldMonth != newMonth {
		err = errors.Join(err, s.writeMonth(oldDate))
	}

	out := merged

	return &out, err
}

// Delete removes the record and regenerates its month. Reports false
// when the id is unknown.
func (s *Store) Delete(id string) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	date := s.transactions[idx].Date
	s.transactions = slices.Delete(s.transactions, idx, idx+1)

	return true, s.writeMonth(date)
}

// Get returns a copy of the transaction with the given id.
func (s *Store) Get(id string) (*Transaction, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	out := s.transactions[idx]

	return &out, nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			return i
		}
	}

	return -1
}

func (s *Store) writeMonth(date string) error {
	if s.writer == nil {
		return nil
	}

	year, month := monthOf(date)

	return s.writer.WriteMonth(year, month)
}

// Filter selects transactions. Zero values mean "no constraint"; Type
// also accepts the literal "all".
type Filter struct {
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Category string `json:"category,omitempty"`
	Type     Type   `json:"type,omitempty"`
	Search   string `json:"search,omitempty"`
}

func (f Filter) matches(t Transaction) bool {
	if f.From != "" && t.Date < f.From {
		return false
	}

	if f.To != "" && t.Date > f.To {
		return false
	}

	if f.Category != "" && t.Category != f.Category {
		return false
	}

	if f.Type != "" && f.Type != "all" && t.Type != f.Type {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Description), needle) &&
			!strings.Contains(strings.ToLower(t.Category), needle) {
			return false
		}
	}

	return true
}

// List returns the transactions matching the filter in insertion order.
func (s *Store) List(f Filter) []Transaction {
	var out []Transaction

	for _, t := range s.transactions {
		if f.matches(t) {
			out = append(out, t)
		}
	}

	return out
}

// TransactionsForMonth returns the month's transactions in insertion
// order.
func (s *Store) TransactionsForMonth(year, month int) []Transaction {
	prefix := MonthPrefix(year, month)

	var out []Transaction

	for _, t := range s.transactions {
		if strings.HasPrefix(t.Date, prefix) {
			out = append(out, t)
		}
	}

	return out
}

// Recent returns the newest transactions, date-descending, capped at
// limit.
func (s *Store) Recent(limit int) []Transaction {
	out := make([]Transaction, len(s.transactions))
	copy(out, s.transactions)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// HasSimilar reports whether a transaction with the same date, type and
// category exists within an absolute amount tolerance of 0.01. This is
// the duplicate test the reconciliation pass relies on; descriptions
// are not part of the key.
func (s *Store) HasSimilar(date string, typ Type, category string, amount float64) bool {
	for _, t := range s.transactions {
		if t.Date == date && t.Type == typ && t.Category == category &&
			math.Abs(t.Amount-amount) < 0.01 {
			return true
		}
	}

	return false
}

// Len reports the number of stored transactions.
func (s *Store) Len() int {
	return len(s.transactions)
}
