package book

import (
	"regexp"
	"strings"

	"github.com/mjarosz/budgetmd/internal/settings"
)

const fallbackCategory = "other-expense"

var slugRe = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// ResolveCategory maps a category cell back to a configured category
// id. It tries subcategory names first, then top-level names, then
// icons, and finally slugifies the cell so hand-written categories
// still land on a stable id. An empty result falls back to
// "other-expense".
func ResolveCategory(set *settings.Settings, cell string) string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return fallbackCategory
	}

	lower := strings.ToLower(cell)

	for _, cat := range set.Categories {
		if cat.ParentID != "" && strings.Contains(lower, strings.ToLower(cat.Name)) {
			return cat.ID
		}
	}

	for _, cat := range set.Categories {
		if cat.ParentID == "" && strings.Contains(lower, strings.ToLower(cat.Name)) {
			return cat.ID
		}
	}

	for _, cat := range set.Categories {
		if cat.Icon != "" && strings.Contains(cell, cat.Icon) {
			return cat.ID
		}
	}

	slug := strings.ToLower(slugRe.ReplaceAllString(cell, ""))
	if slug == "" {
		return fallbackCategory
	}

	return slug
}
