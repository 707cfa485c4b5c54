package extract

import (
	"regexp"
	"strings"
)

// cellSplitRe separates table cells: a tab, or a run of two or more
// spaces. Single spaces stay inside a cell so multi-word values survive.
var cellSplitRe = regexp.MustCompile(`\t+| {2,}`)

// minTableRows is the smallest run of columnar lines accepted as a table.
const minTableRows = 2

// DetectTables scans extracted page text for runs of column-aligned lines
// and returns them as cleaned cell grids. Cells are trimmed and rows with
// no non-empty cell are dropped, matching what the rest of the pipeline
// expects from the extraction collaborator.
func DetectTables(text string) [][][]string {
	var tables [][][]string
	var current [][]string

	flush := func() {
		if len(current) >= minTableRows {
			tables = append(tables, current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		cells := splitRow(line)
		if len(cells) >= 2 {
			current = append(current, cells)
		} else {
			flush()
		}
	}
	flush()

	return tables
}

// splitRow splits one line into trimmed cells, or returns nil when the
// line has no columnar structure or no content at all.
func splitRow(line string) []string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return nil
	}

	parts := cellSplitRe.Split(strings.TrimLeft(line, " \t"), -1)
	cells := make([]string, 0, len(parts))
	nonEmpty := false
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			nonEmpty = true
		}
		cells = append(cells, p)
	}
	if !nonEmpty {
		return nil
	}
	return cells
}
