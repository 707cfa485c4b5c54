// Package segment splits a page's plain text into section/subsection-tagged
// paragraph records by walking lines through a small heading state machine.
package segment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/brunobiangulo/fundsheet/document"
)

// maxHeadingLen bounds how long a line may be and still count as a heading.
const maxHeadingLen = 120

var (
	// Markdown-style heading with an initial capital: "# Heading"
	markdownHeadingRe = regexp.MustCompile(`^#\s+[A-Z]`)
	// Subsection lead-in: "Benchmark: ...", "Exit Load: ..."
	subsectionRe = regexp.MustCompile(`^[A-Za-z][A-Za-z\s]+:`)
)

// Segmenter converts page text into paragraph records. The zero value
// reproduces the legacy behavior of discarding text that appears before
// the first detected heading; set EmitOrphans to keep that text under an
// empty section instead.
type Segmenter struct {
	EmitOrphans bool
}

// context is the per-call accumulation state. It is never shared across
// pages; every Segment call starts fresh.
type context struct {
	section    string
	sectionSet bool
	subsection string
	buffer     []string
}

// Segment walks the page text line by line and returns the paragraph
// records in emission order. Segmentation is a pure function of the input:
// identical text always yields identical records.
func (s Segmenter) Segment(text string) []document.Paragraph {
	var out []document.Paragraph
	ctx := &context{}

	flush := func() {
		if len(ctx.buffer) == 0 {
			return
		}
		if !ctx.sectionSet && !s.EmitOrphans {
			ctx.buffer = nil
			return
		}
		out = append(out, document.Paragraph{
			Section:    ctx.section,
			SubSection: ctx.subsection,
			Text:       strings.Join(ctx.buffer, " "),
		})
		ctx.buffer = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case isMainHeading(line):
			flush()
			ctx.section = strings.TrimSpace(strings.ReplaceAll(line, "#", ""))
			ctx.sectionSet = true
			ctx.subsection = ""
		case isSubsectionHeading(line):
			flush()
			ctx.subsection = line
		default:
			ctx.buffer = append(ctx.buffer, collapseSpaces(line))
		}
	}
	flush()

	return out
}

// isMainHeading reports whether a line is a main section heading: fully
// upper-case and short, or a markdown-style heading. Checked before the
// subsection pattern, so a line matching both is a main heading.
func isMainHeading(line string) bool {
	if len(line) < maxHeadingLen && isUpperLine(line) {
		return true
	}
	return markdownHeadingRe.MatchString(line)
}

// isSubsectionHeading reports whether a line starts a subsection, e.g.
// "Benchmark: Nifty 50 TRI". The full line, trailing content included,
// becomes the subsection tag.
func isSubsectionHeading(line string) bool {
	return len(line) < maxHeadingLen && subsectionRe.MatchString(line)
}

// isUpperLine reports whether line contains at least one cased rune and
// no lower-case runes, i.e. "SUMMARY 2024" but not "Summary" or "12/24".
func isUpperLine(line string) bool {
	cased := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// collapseSpaces squeezes runs of whitespace inside a line into single
// spaces, normalizing ragged extraction output.
func collapseSpaces(line string) string {
	return strings.Join(strings.Fields(line), " ")
}
