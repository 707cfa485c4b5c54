package segment

import (
	"reflect"
	"testing"

	"github.com/brunobiangulo/fundsheet/document"
)

// ---------------------------------------------------------------------------
// Segment tests
// ---------------------------------------------------------------------------

func TestSegmentScenarios(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []document.Paragraph
	}{
		{
			name: "no headings discards all text",
			text: "hello\nworld",
			want: nil,
		},
		{
			name: "section then subsection",
			text: "SUMMARY\nAlpha line\nBenchmark: X\nBeta line",
			want: []document.Paragraph{
				{Section: "SUMMARY", Text: "Alpha line"},
				{Section: "SUMMARY", SubSection: "Benchmark: X", Text: "Beta line"},
			},
		},
		{
			name: "markdown heading",
			text: "# Fund Overview\nbody text here",
			want: []document.Paragraph{
				{Section: "Fund Overview", Text: "body text here"},
			},
		},
		{
			name: "new section resets subsection",
			text: "FIRST\nExit Load: nil\nalpha\nSECOND\nbeta",
			want: []document.Paragraph{
				{Section: "FIRST", SubSection: "Exit Load: nil", Text: "alpha"},
				{Section: "SECOND", Text: "beta"},
			},
		},
		{
			name: "pre-heading text discarded, rest kept",
			text: "orphan line\nSUMMARY\nkept line",
			want: []document.Paragraph{
				{Section: "SUMMARY", Text: "kept line"},
			},
		},
		{
			name: "buffered lines joined and whitespace collapsed",
			text: "SUMMARY\n  alpha   beta  \n gamma ",
			want: []document.Paragraph{
				{Section: "SUMMARY", Text: "alpha beta gamma"},
			},
		},
		{
			name: "blank lines ignored",
			text: "SUMMARY\n\n\nalpha\n\nbeta",
			want: []document.Paragraph{
				{Section: "SUMMARY", Text: "alpha beta"},
			},
		},
		{
			name: "upper-case line with colon is a main heading",
			text: "RISK FACTORS:\nbody",
			want: []document.Paragraph{
				{Section: "RISK FACTORS:", Text: "body"},
			},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segmenter{}.Segment(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSegmentEmitOrphans(t *testing.T) {
	text := "orphan one\norphan two\nSUMMARY\nkept"

	got := Segmenter{EmitOrphans: true}.Segment(text)
	want := []document.Paragraph{
		{Section: "", Text: "orphan one orphan two"},
		{Section: "SUMMARY", Text: "kept"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segment with EmitOrphans = %+v, want %+v", got, want)
	}

	// Without headings at all, orphan text still comes through.
	got = Segmenter{EmitOrphans: true}.Segment("hello\nworld")
	want = []document.Paragraph{{Section: "", Text: "hello world"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segment orphans only = %+v, want %+v", got, want)
	}
}

func TestSegmentDeterministic(t *testing.T) {
	text := "OVERVIEW\nalpha\nBenchmark: Nifty 50\nbeta\nPERFORMANCE\ngamma"
	first := Segmenter{}.Segment(text)
	for i := 0; i < 5; i++ {
		if got := (Segmenter{}).Segment(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

// ---------------------------------------------------------------------------
// Heading detection tests
// ---------------------------------------------------------------------------

func TestIsMainHeading(t *testing.T) {
	long := make([]byte, 130)
	for i := range long {
		long[i] = 'A'
	}

	tests := []struct {
		name string
		line string
		want bool
	}{
		{"all_caps", "PORTFOLIO SUMMARY", true},
		{"all_caps_with_digits", "TOP 10 HOLDINGS", true},
		{"markdown", "# Overview", true},
		{"markdown_lowercase_after_hash", "# overview", false},
		{"mixed_case", "Portfolio Summary", false},
		{"digits_only", "2024", false},
		{"too_long_all_caps", string(long), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isMainHeading(tt.line); got != tt.want {
				t.Errorf("isMainHeading(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsSubsectionHeading(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"simple", "Benchmark: Nifty 50 TRI", true},
		{"multi_word", "Fund Manager: Jane Doe", true},
		{"no_colon", "Benchmark Nifty 50", false},
		{"leading_digit", "1. Overview:", false},
		{"colon_immediately", "B: value", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSubsectionHeading(tt.line); got != tt.want {
				t.Errorf("isSubsectionHeading(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
