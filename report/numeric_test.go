package report

import (
	"reflect"
	"testing"

	"github.com/brunobiangulo/fundsheet/document"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		cell   string
		want   float64
		wantOK bool
	}{
		{"12.34%", 12.34, true},
		{"1,234.5 Cr", 1234.5, true},
		{"9.1", 9.1, true},
		{"-0.45", -0.45, true},
		{".75", 0.75, true},
		{"Rs. 870", 870, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"---", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, ok := ParseNumeric(tt.cell)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseNumeric(%q) = (%v, %v), want (%v, %v)",
					tt.cell, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTopHoldings(t *testing.T) {
	tbl := &document.Table{
		Page:     2,
		Category: document.Portfolio,
		TableData: [][]string{
			{"Company", "Sector", "% to Net Assets"},
			{"Infosys", "IT", "7.2%"},
			{"HDFC Bank", "Financials", "9.1%"},
			{"Infosys", "IT", "3.0%"}, // duplicate keeps first
			{"Cash", "", "N/A"},       // unparseable weight skipped
			{"Reliance", "Energy", "8.4%"},
			{"Written off", "", "-1.2"}, // non-positive skipped
		},
	}

	got := TopHoldings(tbl, 10)
	want := []Holding{
		{Name: "HDFC Bank", Percent: 9.1},
		{Name: "Reliance", Percent: 8.4},
		{Name: "Infosys", Percent: 7.2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopHoldings = %+v, want %+v", got, want)
	}
}

func TestTopHoldingsLimit(t *testing.T) {
	tbl := &document.Table{TableData: [][]string{
		{"Company", "%"},
		{"A", "5"},
		{"B", "4"},
		{"C", "3"},
	}}

	got := TopHoldings(tbl, 2)
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "B" {
		t.Errorf("TopHoldings limit 2 = %+v", got)
	}
}

func TestTopHoldingsDegenerate(t *testing.T) {
	if got := TopHoldings(nil, 10); got != nil {
		t.Errorf("nil table = %+v", got)
	}
	headerOnly := &document.Table{TableData: [][]string{{"Company", "%"}}}
	if got := TopHoldings(headerOnly, 10); got != nil {
		t.Errorf("header-only table = %+v", got)
	}
}
