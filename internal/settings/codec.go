package settings

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the settings document inside the budget folder.
const ConfigFileName = "_config.md"

// ConfigPath returns the settings document path for a budget folder.
func ConfigPath(folder string) string {
	return folder + "/" + ConfigFileName
}

// ErrNoFrontmatter is returned when a document carries no parseable
// frontmatter block. Callers fall back to their current settings.
var ErrNoFrontmatter = fmt.Errorf("settings: no frontmatter block")

// Parse reads settings back out of a config document. Anything after
// the closing frontmatter fence is ignored. A missing or unparseable
// block is an error; it never panics on malformed input.
func Parse(content string) (*Settings, error) {
	block, ok := frontmatter(content)
	if !ok {
		return nil, ErrNoFrontmatter
	}

	var s Settings
	if err := yaml.Unmarshal([]byte(block), &s); err != nil {
		return nil, fmt.Errorf("settings: parse frontmatter: %w", err)
	}

	return &s, nil
}

// frontmatter extracts the text between the leading "---" fence and the
// next one.
func frontmatter(content string) (string, bool) {
	content = strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(content, "---\n") {
		return "", false
	}

	rest := content[len("---\n"):]

	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", false
	}

	return rest[:end], true
}

// Generate renders the canonical config document. Key order, quoting
// and comments are fixed so that generate → parse → generate is
// byte-stable.
func Generate(s *Settings) string {
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString("# Budget Tracker Configuration\n")
	b.WriteString("# This file syncs your settings across devices\n\n")

	fmt.Fprintf(&b, "locale: %s\n", s.Locale)
	fmt.Fprintf(&b, "defaultCurrency: %s\n", s.DefaultCurrency)
	fmt.Fprintf(&b, "budgetFolder: %s\n", s.BudgetFolder)
	fmt.Fprintf(&b, "showBalanceInStatusBar: %s\n", formatBool(s.ShowBalanceInStatusBar))
	fmt.Fprintf(&b, "dateFormat: %s\n", s.DateFormat)

	quoted := make([]string, len(s.Currencies))
	for i, c := range s.Currencies {
		quoted[i] = quote(c)
	}

	fmt.Fprintf(&b, "currencies: [%s]\n", strings.Join(quoted, ", "))
	b.WriteString("\n")

	b.WriteString("categories:\n")

	for _, cat := range s.Categories {
		fmt.Fprintf(&b, "  - id: %s\n", cat.ID)
		fmt.Fprintf(&b, "    name: %s\n", quote(cat.Name))
		fmt.Fprintf(&b, "    icon: %s\n", quote(cat.Icon))
		fmt.Fprintf(&b, "    type: %s\n", cat.Type)
		fmt.Fprintf(&b, "    color: %s\n", quote(cat.Color))

		if cat.ParentID != "" {
			fmt.Fprintf(&b, "    parentId: %s\n", cat.ParentID)
		}

		if cat.BudgetLimit > 0 {
			fmt.Fprintf(&b, "    budgetLimit: %s\n", formatNumber(cat.BudgetLimit))
		}
	}

	b.WriteString("\n")
	b.WriteString("recurringTransactions:\n")

	if len(s.RecurringTransactions) == 0 {
		b.WriteString("  # No recurring transactions configured\n")
	}

	for _, rec := range s.RecurringTransactions {
		fmt.Fprintf(&b, "  - id: %s\n", rec.ID)
		fmt.Fprintf(&b, "    name: %s\n", quote(rec.Name))
		fmt.Fprintf(&b, "    amount: %s\n", formatNumber(rec.Amount))
		fmt.Fprintf(&b, "    type: %s\n", rec.Type)
		fmt.Fprintf(&b, "    category: %s\n", rec.Category)
		fmt.Fprintf(&b, "    dayOfMonth: %d\n", rec.DayOfMonth)
		fmt.Fprintf(&b, "    isActive: %s\n", formatBool(rec.IsActive))

		if rec.CreatedAt != "" {
			fmt.Fprintf(&b, "    createdAt: %s\n", quote(rec.CreatedAt))
		}

		if rec.LastProcessed != "" {
			fmt.Fprintf(&b, "    lastProcessed: %s\n", quote(rec.LastProcessed))
		}
	}

	b.WriteString("---\n\n")
	b.WriteString("# 💰 Budget Configuration\n\n")
	b.WriteString("> [!NOTE]\n")
	b.WriteString("> This file stores your Budget Tracker settings.\n")
	b.WriteString("> It syncs across devices via your sync method (WebDAV, Syncthing, etc.)\n\n")
	b.WriteString("Do not edit manually unless you know what you're doing.\n")

	return b.String()
}
