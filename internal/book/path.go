// Package book renders and reads the markdown month documents. Each
// document is a full projection of one month's transactions; rendering
// the same month twice yields byte-identical output.
package book

import (
	"fmt"

	"github.com/mjarosz/budgetmd/internal/locale"
)

// DocumentPath returns the slash-separated path of a month document
// under the budget folder, e.g. "Budget/2024/03-March.md".
func DocumentPath(folder string, l locale.Locale, year, month int) string {
	return fmt.Sprintf("%s/%d/%02d-%s.md", folder, year, month, locale.MonthName(l, month))
}
