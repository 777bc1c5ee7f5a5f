package settings

import "strconv"

// Scalar formatting for the generated config document. The generator
// hand-writes its YAML so that key order and quoting never drift
// between round trips; these helpers are the single place deciding how
// a scalar is spelled.

func quote(s string) string {
	return strconv.Quote(s)
}

// formatNumber renders a number the shortest way that survives a parse
// round trip: "50", "50.5", "1234.56".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}
