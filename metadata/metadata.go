// Package metadata extracts document-level factsheet fields (fund name,
// AUM, benchmarks, manager, launch date) from noisy page text. A single
// Scanner is fed every page in document order; each field is populated by
// the first line that matches its rule and never overwritten after that.
package metadata

import (
	"regexp"
	"strings"

	"github.com/brunobiangulo/fundsheet/document"
)

// skipMarkers disqualify a line from all rules: boilerplate disclaimers,
// page footers and AMC branding lines that otherwise false-positive.
var skipMarkers = []string{"disclaimer", "page |", "mutual fund:"}

var (
	// "HDFC TOP 100 FUND", "AXIS BLUECHIP SCHEME ..."
	fundNameRe = regexp.MustCompile(`^[A-Z][A-Z\s]+(FUND|SCHEME)`)
	// "1,234.56 Cr", "870 crore", "12.3 billion"
	aumRe = regexp.MustCompile(`(?i)[\d,\.]+\s*(cr|crore|lakh|million|billion)`)
	// "1 Jan 2010", "01 january 10", "1-1-2010", "01/01/10"
	launchDateRe = regexp.MustCompile(`(?i)\d{1,2}\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{2,4}|\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`)
)

// Scanner accumulates a metadata record over a forward pass of all page
// text. Feeding the same lines again is a no-op: fields never regress
// from a found value back to the sentinel.
type Scanner struct {
	rec document.Metadata
}

// NewScanner returns a Scanner with every field at the N/A sentinel.
func NewScanner() *Scanner {
	return &Scanner{rec: document.NewMetadata()}
}

// ScanPage feeds one page's text to the scanner, line by line in order.
func (s *Scanner) ScanPage(text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.ScanLine(line)
	}
}

// ScanLine evaluates every field rule against one line. Rules are
// independent: a single line may populate more than one field.
func (s *Scanner) ScanLine(line string) {
	low := strings.ToLower(line)
	for _, m := range skipMarkers {
		if strings.Contains(low, m) {
			return
		}
	}

	if s.rec.FundName == document.NotAvailable && fundNameRe.MatchString(line) {
		s.rec.FundName = line
	}

	if s.rec.AUM == document.NotAvailable &&
		(strings.Contains(low, "aum") || strings.Contains(low, "assets under management")) {
		if m := aumRe.FindString(line); m != "" {
			s.rec.AUM = m
		}
	}

	if strings.Contains(low, "benchmark") {
		name := afterColon(line)
		if strings.Contains(low, "additional") {
			if s.rec.AdditionalBenchmark == document.NotAvailable {
				s.rec.AdditionalBenchmark = name
			}
		} else if s.rec.Benchmark == document.NotAvailable {
			s.rec.Benchmark = name
		}
	}

	if s.rec.FundManager == document.NotAvailable && strings.Contains(low, "fund manager") {
		s.rec.FundManager = afterColon(line)
	}

	if s.rec.LaunchDate == document.NotAvailable &&
		(strings.Contains(low, "launch") || strings.Contains(low, "inception")) {
		if m := launchDateRe.FindString(line); m != "" {
			s.rec.LaunchDate = m
		}
	}
}

// Result returns the accumulated metadata record.
func (s *Scanner) Result() document.Metadata {
	return s.rec
}

// afterColon returns the trimmed text after the first colon, or the whole
// trimmed line when there is none.
func afterColon(line string) string {
	if i := strings.Index(line, ":"); i >= 0 {
		return strings.TrimSpace(line[i+1:])
	}
	return strings.TrimSpace(line)
}
