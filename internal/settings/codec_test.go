package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjarosz/budgetmd/internal/locale"
	"github.com/mjarosz/budgetmd/internal/settings"
)

func sampleSettings() *settings.Settings {
	s := settings.Default(locale.EN)
	s.RecurringTransactions = []settings.Recurring{{
		ID:         "rent",
		Name:       "Rent",
		Amount:     1200.5,
		Type:       "expense",
		Category:   "bills",
		DayOfMonth: 10,
		IsActive:   true,
		CreatedAt:  "2024-01-15",
	}}

	return s
}

func TestGenerateParse_RoundTrip(t *testing.T) {
	original := sampleSettings()

	first := settings.Generate(original)

	parsed, err := settings.Parse(first)
	require.NoError(t, err)

	assert.Equal(t, original.Locale, parsed.Locale)
	assert.Equal(t, original.DefaultCurrency, parsed.DefaultCurrency)
	assert.Equal(t, original.Currencies, parsed.Currencies)
	assert.Equal(t, original.Categories, parsed.Categories)
	assert.Equal(t, original.RecurringTransactions, parsed.RecurringTransactions)

	// Regenerating from the parsed settings is byte-stable.
	assert.Equal(t, first, settings.Generate(parsed))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		check   func(t *testing.T, s *settings.Settings)
	}{
		{
			name: "minimal frontmatter",
			content: "---\nlocale: pl\ndefaultCurrency: PLN\nbudgetFolder: Budżet\n---\n\nNotes below.\n",
			check: func(t *testing.T, s *settings.Settings) {
				assert.Equal(t, locale.PL, s.Locale)
				assert.Equal(t, "PLN", s.DefaultCurrency)
				assert.Equal(t, "Budżet", s.BudgetFolder)
			},
		},
		{
			name:    "body after fence is ignored",
			content: "---\nlocale: en\n---\n\n# 💰 Budget Configuration\n\nlocale: pl\n",
			check: func(t *testing.T, s *settings.Settings) {
				assert.Equal(t, locale.EN, s.Locale)
			},
		},
		{
			name:    "byte order mark before the fence",
			content: "\ufeff---\nlocale: pl\n---\n",
			check: func(t *testing.T, s *settings.Settings) {
				assert.Equal(t, locale.PL, s.Locale)
			},
		},
		{
			name:    "no frontmatter",
			content: "just a markdown note\n",
			wantErr: settings.ErrNoFrontmatter,
		},
		{
			name:    "unterminated frontmatter",
			content: "---\nlocale: en\n",
			wantErr: settings.ErrNoFrontmatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := settings.Parse(tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := settings.Parse("---\nlocale: [unclosed\n---\n")
	assert.Error(t, err)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *settings.Settings)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(s *settings.Settings) {}},
		{
			name: "unknown parent",
			mutate: func(s *settings.Settings) {
				s.Categories[0].ParentID = "nope"
			},
			wantErr: true,
		},
		{
			name: "nested parent",
			mutate: func(s *settings.Settings) {
				s.Categories = append(s.Categories,
					settings.Category{ID: "a", Name: "A", Type: settings.CategoryExpense, ParentID: "food"},
					settings.Category{ID: "b", Name: "B", Type: settings.CategoryExpense, ParentID: "a"},
				)
			},
			wantErr: true,
		},
		{
			name: "budget limit on income category",
			mutate: func(s *settings.Settings) {
				for i := range s.Categories {
					if s.Categories[i].ID == "salary" {
						s.Categories[i].BudgetLimit = 100
					}
				}
			},
			wantErr: true,
		},
		{
			name: "day of month out of range",
			mutate: func(s *settings.Settings) {
				s.RecurringTransactions = []settings.Recurring{{
					ID: "r", Name: "R", Amount: 1, Type: "expense",
					Category: "bills", DayOfMonth: 29, IsActive: true,
				}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settings.Default(locale.EN)
			tt.mutate(s)

			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
