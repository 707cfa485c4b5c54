// Package report renders a structured factsheet document into downstream
// artifacts: a PDF summary with tables and a top-holdings chart, and an
// XLSX workbook with one sheet per table category.
package report

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/brunobiangulo/fundsheet/document"
)

var numberRe = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// ParseNumeric extracts the first number from a noisy table cell such as
// "12.34%", "1,234.5 Cr" or "(0.45)". Cells that hold no parseable number
// report ok=false and are simply skipped by callers; a malformed capture
// never aborts rendering.
func ParseNumeric(cell string) (float64, bool) {
	s := strings.ReplaceAll(cell, ",", "")
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Holding is one (name, percent) pair pulled from a holdings table.
type Holding struct {
	Name    string
	Percent float64
}

// TopHoldings extracts up to limit holdings from a portfolio table,
// largest weight first. The first column is taken as the name and the
// last column as the weight; rows whose weight does not parse to a
// positive number are skipped, duplicates keep their first occurrence.
func TopHoldings(t *document.Table, limit int) []Holding {
	if t == nil || len(t.TableData) < 2 {
		return nil
	}

	seen := make(map[string]bool)
	var holdings []Holding
	for _, row := range t.TableData[1:] {
		if len(row) < 2 {
			continue
		}
		pct, ok := ParseNumeric(row[len(row)-1])
		if !ok || pct <= 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		holdings = append(holdings, Holding{Name: name, Percent: pct})
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].Percent > holdings[j].Percent
	})
	if limit > 0 && len(holdings) > limit {
		holdings = holdings[:limit]
	}
	return holdings
}

// firstTable returns the first table recorded for a category, or nil.
func firstTable(doc *document.Document, cat document.Category) *document.Table {
	if tables := doc.Sections[cat]; len(tables) > 0 {
		return tables[0]
	}
	return nil
}
