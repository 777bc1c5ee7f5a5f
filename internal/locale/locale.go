// Package locale holds the static translation tables used when rendering
// and parsing month documents. Only the labels that end up inside
// generated files live here; everything UI-facing stays with the callers.
package locale

// Locale identifies a supported language.
type Locale string

const (
	EN Locale = "en"
	PL Locale = "pl"
)

// Labels are the strings embedded in generated month documents.
type Labels struct {
	MonthTitle     string
	Summary        string
	Transactions   string
	NoTransactions string

	Date        string
	Type        string
	Category    string
	Description string
	Amount      string

	Incomes  string
	Expenses string
	Balance  string

	Months [12]string
}

var labels = map[Locale]Labels{
	EN: {
		MonthTitle:     "📊 Budget:",
		Summary:        "📈 Summary",
		Transactions:   "📝 Transactions",
		NoTransactions: `No transactions this month. Use the "Add Transaction" command to add your first one!`,

		Date:        "Date",
		Type:        "Type",
		Category:    "Category",
		Description: "Description",
		Amount:      "Amount",

		Incomes:  "💚 Income",
		Expenses: "🔴 Expenses",
		Balance:  "📊 Balance",

		Months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
	},
	PL: {
		MonthTitle:     "📊 Budżet:",
		Summary:        "📈 Podsumowanie",
		Transactions:   "📝 Transakcje",
		NoTransactions: `Brak transakcji w tym miesiącu. Użyj komendy "Dodaj transakcję" aby dodać pierwszą!`,

		Date:        "Data",
		Type:        "Typ",
		Category:    "Kategoria",
		Description: "Opis",
		Amount:      "Kwota",

		Incomes:  "💚 Przychody",
		Expenses: "🔴 Wydatki",
		Balance:  "📊 Bilans",

		Months: [12]string{
			"Styczeń", "Luty", "Marzec", "Kwiecień", "Maj", "Czerwiec",
			"Lipiec", "Sierpień", "Wrzesień", "Październik", "Listopad", "Grudzień",
		},
	},
}

// For returns the label set for a locale, falling back to English for
// anything unknown.
func For(l Locale) Labels {
	if lb, ok := labels[l]; ok {
		return lb
	}

	return labels[EN]
}

// MonthName returns the localized name for a 1-based month number.
func MonthName(l Locale, month int) string {
	if month < 1 || month > 12 {
		return "Unknown"
	}

	return For(l).Months[month-1]
}

// DateHeaders lists every spelling of the date column header across
// supported locales. The document parser accepts any of them so a file
// written under one locale still parses after switching languages.
func DateHeaders() []string {
	headers := make([]string, 0, len(labels))
	for _, lb := range labels {
		headers = append(headers, lb.Date)
	}

	return headers
}

// CategoryNames maps the built-in category ids to their translated
// display names.
func CategoryNames(l Locale) map[string]string {
	switch l {
	case PL:
		return map[string]string{
			"food":          "Jedzenie",
			"transport":     "Transport",
			"entertainment": "Rozrywka",
			"shopping":      "Zakupy",
			"bills":         "Rachunki",
			"health":        "Zdrowie",
			"education":     "Edukacja",
			"other-expense": "Inne wydatki",
			"salary":        "Wynagrodzenie",
			"freelance":     "Freelance",
			"investment":    "Inwestycje",
			"gift":          "Prezent",
			"other-income":  "Inne przychody",
		}
	default:
		return map[string]string{
			"food":          "Food",
			"transport":     "Transport",
			"entertainment": "Entertainment",
			"shopping":      "Shopping",
			"bills":         "Bills",
			"health":        "Health",
			"education":     "Education",
			"other-expense": "Other expenses",
			"salary":        "Salary",
			"freelance":     "Freelance",
			"investment":    "Investments",
			"gift":          "Gift",
			"other-income":  "Other income",
		}
	}
}

// Detect maps a language tag (e.g. from $LANG or a config value) to a
// supported locale, defaulting to English.
func Detect(tag string) Locale {
	if len(tag) >= 2 && tag[:2] == "pl" {
		return PL
	}

	return EN
}
