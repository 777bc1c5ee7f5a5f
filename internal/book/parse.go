package book

import (
	"strings"
	"time"

	"github.com/mjarosz/budgetmd/internal/ledger"
	"github.com/mjarosz/budgetmd/internal/locale"
	"github.com/mjarosz/budgetmd/internal/money"
	"github.com/mjarosz/budgetmd/internal/settings"
)

// Parser reads transaction rows back out of month documents. Prose,
// headings and other tables are skipped, and malformed rows are
// dropped rather than failing the document.
type Parser struct {
	settings *settings.Settings
}

func NewParser(set *settings.Settings) *Parser {
	return &Parser{settings: set}
}

// Parse extracts transaction candidates from a document. It scans for
// a table whose first header cell is a known date label, in any
// supported language, so documents survive being opened under a
// different locale than they were written in.
func (p *Parser) Parse(content string) []ledger.Candidate {
	lines := strings.Split(content, "\n")

	var out []ledger.Candidate

	inTable := false

	for _, line := range lines {
		cells := splitRow(line)

		if !inTable {
			if isTransactionHeader(cells) {
				inTable = true
			}

			continue
		}

		if len(cells) == 0 {
			inTable = false

			continue
		}

		if isSeparatorRow(cells) {
			continue
		}

		if c, ok := p.parseRow(cells); ok {
			out = append(out, c)
		}
	}

	return out
}

// splitRow breaks a markdown table row into trimmed cells, dropping
// empty ones; a row missing a cell then fails the width check instead
// of shifting columns. Non-table lines yield nil.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "|") {
		return nil
	}

	line = strings.Trim(line, "|")

	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		cells = append(cells, part)
	}

	return cells
}

func isTransactionHeader(cells []string) bool {
	if len(cells) < 5 {
		return false
	}

	for _, label := range locale.DateHeaders() {
		if strings.EqualFold(cells[0], label) {
			return true
		}
	}

	return false
}

func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		if strings.Trim(cell, ":-") != "" {
			return false
		}
	}

	return true
}

func (p *Parser) parseRow(cells []string) (ledger.Candidate, bool) {
	if len(cells) < 5 {
		return ledger.Candidate{}, false
	}

	date := cells[0]
	if _, err := time.Parse(ledger.DateLayout, date); err != nil {
		return ledger.Candidate{}, false
	}

	typ := ledger.TypeExpense

	switch {
	case strings.Contains(cells[1], markIncome):
		typ = ledger.TypeIncome
	case strings.Contains(cells[1], markInvestment):
		typ = ledger.TypeInvestment
	}

	amountCell := cells[len(cells)-1]

	amount, ok := money.ParseCell(amountCell)
	if !ok {
		return ledger.Candidate{}, false
	}

	// Generated expense rows carry a leading minus; the sign belongs
	// to the type, not the magnitude. A negative income amount stays
	// negative and gets dropped below.
	if typ != ledger.TypeIncome && amount < 0 {
		amount = -amount
	}

	if amount <= 0 {
		return ledger.Candidate{}, false
	}

	desc := cells[3]
	excluded := false

	if strings.Contains(desc, markExcluded) {
		excluded = true
		desc = strings.TrimSpace(strings.ReplaceAll(desc, markExcluded, ""))
	}

	if desc == emptyDescription {
		desc = ""
	}

	return ledger.Candidate{
		Date:             date,
		Amount:           amount,
		Type:             typ,
		Category:         ResolveCategory(p.settings, cells[2]),
		Description:      desc,
		Currency:         money.Currency(amountCell, p.settings.DefaultCurrency),
		ExcludeFromStats: excluded,
	}, true
}
