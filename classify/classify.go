// Package classify assigns a domain category to a raw table based on its
// header row. The rules are deliberately over-inclusive: broad substring
// matches buy high recall at the cost of occasional false positives, which
// downstream consumers tolerate.
package classify

import (
	"strings"

	"github.com/brunobiangulo/fundsheet/document"
)

// rule pairs a header predicate with the category and label it yields.
type rule struct {
	match    func(header string) bool
	category document.Category
	label    string
}

// rules are evaluated in order, first match wins. Order is load-bearing:
// a header containing both "risk" and "allocation" must classify as
// allocation because the allocation rule is tried first.
var rules = []rule{
	{
		match: func(h string) bool {
			return strings.Contains(h, "scheme performance") ||
				(strings.Contains(h, "performance") && strings.Contains(h, "scheme")) ||
				strings.Contains(h, "ptp") ||
				strings.Contains(h, "last 1 year") ||
				strings.Contains(h, "since inception")
		},
		category: document.SchemePerformance,
		label:    "Performance Data",
	},
	{
		match:    containsAny("sip", "if you had invested"),
		category: document.SchemePerformance,
		label:    "SIP Performance",
	},
	{
		match: func(h string) bool {
			return holdingsHeader(h) && containsAny("debt", "credit rating")(h)
		},
		category: document.DebtPortfolio,
		label:    "Debt Holdings",
	},
	{
		match:    holdingsHeader,
		category: document.Portfolio,
		label:    "Holdings",
	},
	{
		match:    containsAny("sector allocation", "group allocation", "market capitalisation", "allocation"),
		category: document.Allocation,
		label:    "Allocation Data",
	},
	{
		match:    containsAny("riskometer", "risk profile", "std. dev", "beta", "sharpe", "treynor", "risk"),
		category: document.Risk,
		label:    "Risk Metrics",
	},
	{
		match:    containsAny("macro", "economic", "indicators", "gdp", "inflation"),
		category: document.Macro,
		label:    "Economic Indicators",
	},
}

// holdingsHeader matches portfolio/holdings tables. The "%" token also
// matches headers that merely contain a percent sign; kept as-is for
// recall over precision.
var holdingsHeader = containsAny(
	"company", "issuer", "instrument", "name", "sector", "%", "weight", "net assets",
)

func containsAny(keys ...string) func(string) bool {
	return func(h string) bool {
		for _, k := range keys {
			if strings.Contains(h, k) {
				return true
			}
		}
		return false
	}
}

// Classify assigns a category and human-readable label to a raw table.
// It is a pure function of the header row (row 0), case-insensitively;
// non-header rows never influence the result. An empty table, or one no
// rule matches, yields ("", "").
func Classify(table [][]string) (document.Category, string) {
	if len(table) == 0 {
		return "", ""
	}

	cells := make([]string, len(table[0]))
	for i, c := range table[0] {
		cells[i] = strings.ToLower(c)
	}
	header := strings.Join(cells, " ")

	for _, r := range rules {
		if r.match(header) {
			return r.category, r.label
		}
	}
	return "", ""
}
