package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/brunobiangulo/fundsheet/document"
)

// pdfSection pairs a category with the heading used in the report.
type pdfSection struct {
	category document.Category
	heading  string
}

// reportSections fixes the order sections appear in the summary report.
var reportSections = []pdfSection{
	{document.Portfolio, "Top Holdings"},
	{document.DebtPortfolio, "Debt Holdings"},
	{document.Allocation, "Allocation"},
	{document.SchemePerformance, "Scheme Performance"},
	{document.Risk, "Risk Metrics"},
	{document.Macro, "Macro-Economic Indicators"},
}

// maxTableRows caps how many data rows of each table make the report.
const maxTableRows = 20

// WritePDF renders a one-stop summary report of the structured document:
// title, metadata grid, the first table of each populated category, and a
// horizontal bar chart of the top holdings.
func WritePDF(doc *document.Document, outPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 14, 12)
	pdf.SetAutoPageBreak(true, 16)
	pdf.AddPage()

	writeTitle(pdf, reportTitle(doc))
	writeMetadata(pdf, doc.Metadata)

	if holdings := TopHoldings(firstTable(doc, document.Portfolio), 10); len(holdings) > 0 {
		writeHeading(pdf, "Top 10 Holdings")
		writeHoldingsChart(pdf, holdings)
	}

	for _, sec := range reportSections {
		t := firstTable(doc, sec.category)
		if t == nil {
			continue
		}
		writeHeading(pdf, fmt.Sprintf("%s (page %d)", sec.heading, t.Page))
		writeTable(pdf, t.TableData)
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// reportTitle picks the fund name, falling back to the first cell of the
// first performance table when metadata extraction came up empty.
func reportTitle(doc *document.Document) string {
	if doc.Metadata.FundName != document.NotAvailable && doc.Metadata.FundName != "" {
		return doc.Metadata.FundName
	}
	if t := firstTable(doc, document.SchemePerformance); t != nil &&
		len(t.TableData) > 0 && len(t.TableData[0]) > 0 && t.TableData[0][0] != "" {
		return t.TableData[0][0]
	}
	return "Fund Factsheet"
}

func writeTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 9, title, "", "C", false)
	pdf.Ln(4)
}

func writeHeading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(40, 40, 100)
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(1)
}

// writeMetadata lays the six metadata fields out as a two-column grid.
func writeMetadata(pdf *fpdf.Fpdf, m document.Metadata) {
	rows := [][2]string{
		{"Fund Name", m.FundName},
		{"AUM", m.AUM},
		{"Benchmark", m.Benchmark},
		{"Additional Benchmark", m.AdditionalBenchmark},
		{"Fund Manager", m.FundManager},
		{"Launch Date", m.LaunchDate},
	}

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(55, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

// writeTable renders a ruled table, header row shaded, long tables capped.
func writeTable(pdf *fpdf.Fpdf, data [][]string) {
	if len(data) == 0 || len(data[0]) == 0 {
		return
	}

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(data[0]))

	rows := data
	if len(rows) > maxTableRows+1 {
		rows = rows[:maxTableRows+1]
	}

	for i, row := range rows {
		if i == 0 {
			pdf.SetFont("Arial", "B", 8)
			pdf.SetFillColor(230, 230, 240)
		} else {
			pdf.SetFont("Arial", "", 8)
			pdf.SetFillColor(255, 255, 255)
		}
		for _, cell := range row {
			pdf.CellFormat(colW, 6, truncate(cell, 40), "1", 0, "L", i == 0, 0, "")
		}
		// Rows narrower than the header leave the remaining width blank.
		for j := len(row); j < len(data[0]); j++ {
			pdf.CellFormat(colW, 6, "", "1", 0, "L", i == 0, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(5)
}

// writeHoldingsChart draws a horizontal bar chart with fpdf primitives,
// largest holding on top.
func writeHoldingsChart(pdf *fpdf.Fpdf, holdings []Holding) {
	const (
		labelW = 70.0
		barH   = 6.0
		gap    = 2.0
	)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	maxBarW := pageW - left - right - labelW - 22

	maxPct := holdings[0].Percent
	for _, h := range holdings {
		if h.Percent > maxPct {
			maxPct = h.Percent
		}
	}

	pdf.SetFont("Arial", "", 8)
	for _, h := range holdings {
		pdf.CellFormat(labelW, barH, truncate(h.Name, 45), "", 0, "R", false, 0, "")
		x, y := pdf.GetXY()
		pdf.SetFillColor(80, 120, 190)
		pdf.Rect(x+1, y+0.5, maxBarW*(h.Percent/maxPct), barH-1, "F")
		pdf.SetXY(x+2+maxBarW*(h.Percent/maxPct), y)
		pdf.CellFormat(20, barH, fmt.Sprintf("%.2f%%", h.Percent), "", 0, "L", false, 0, "")
		pdf.SetY(y + barH + gap)
		pdf.SetX(left)
	}
	pdf.Ln(5)
}

// truncate shortens a cell so it fits a fixed-width column.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "..."
}
