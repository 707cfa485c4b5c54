package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/brunobiangulo/fundsheet/document"
)

// WriteXLSX exports the structured document as a workbook: a Metadata
// sheet plus one sheet per populated table category, with every table in
// that category stacked and labelled by source page.
func WriteXLSX(doc *document.Document, outPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Metadata"); err != nil {
		return fmt.Errorf("creating metadata sheet: %w", err)
	}
	if err := writeMetadataSheet(f, doc.Metadata); err != nil {
		return err
	}

	for _, cat := range document.Categories {
		tables := doc.Sections[cat]
		if len(tables) == 0 {
			continue
		}
		if _, err := f.NewSheet(string(cat)); err != nil {
			return fmt.Errorf("creating sheet %s: %w", cat, err)
		}
		if err := writeCategorySheet(f, string(cat), tables); err != nil {
			return err
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeMetadataSheet(f *excelize.File, m document.Metadata) error {
	rows := [][]string{
		{"Field", "Value"},
		{"Fund Name", m.FundName},
		{"AUM", m.AUM},
		{"Benchmark", m.Benchmark},
		{"Additional Benchmark", m.AdditionalBenchmark},
		{"Fund Manager", m.FundManager},
		{"Launch Date", m.LaunchDate},
	}
	return writeRows(f, "Metadata", 1, rows)
}

func writeCategorySheet(f *excelize.File, sheet string, tables []*document.Table) error {
	row := 1
	for _, t := range tables {
		label := t.Label
		if label == "" {
			label = string(t.Category)
		}
		header := [][]string{{fmt.Sprintf("%s (page %d)", label, t.Page)}}
		if err := writeRows(f, sheet, row, header); err != nil {
			return err
		}
		if err := writeRows(f, sheet, row+1, t.TableData); err != nil {
			return err
		}
		// Blank row between stacked tables.
		row += len(t.TableData) + 2
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, startRow int, rows [][]string) error {
	for i, cells := range rows {
		for j, v := range cells {
			axis, err := excelize.CoordinatesToCellName(j+1, startRow+i)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, axis, v); err != nil {
				return fmt.Errorf("writing %s!%s: %w", sheet, axis, err)
			}
		}
	}
	return nil
}
