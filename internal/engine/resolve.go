package engine

import (
	"strings"

	"github.com/xonecas/tagline/internal/tags"
)

// Resolve finds the innermost symbol enclosing caretLine, or nil when no
// symbol encloses it.
//
// The nearest candidate is the greatest start line <= caretLine. It is then
// validated against every live line strictly between its start and the
// caret: blank lines and lines whose first non-whitespace text begins with
// commentPrefix are skipped; any other line whose expanded indentation falls
// below the candidate's indent column means the caret has structurally left
// the symbol's body. An invalidated candidate yields nil — there is no
// fallback to a shallower ancestor tag.
func Resolve(table *tags.Table, caretLine int, liveLines []string, commentPrefix string) *tags.Tag {
	if table == nil {
		return nil
	}

	best := 0
	for _, ln := range table.Lines {
		if ln > caretLine {
			break // sequence is ascending
		}
		best = ln
	}
	if best == 0 {
		return nil
	}
	cand := table.ByLine[best]

	for ln := best + 1; ln < caretLine; ln++ {
		if ln < 1 || ln > len(liveLines) {
			continue
		}
		col, rest := lineIndent(liveLines[ln-1])
		if rest == "" {
			continue // blank line
		}
		if commentPrefix != "" && strings.HasPrefix(rest, commentPrefix) {
			continue
		}
		if col < cand.IndentCol {
			return nil
		}
	}
	return &cand
}

// lineIndent returns the expanded column of a line's first non-whitespace
// character and the line's remainder from that character on. Tab counts as
// tags.TabStop columns, any other whitespace as one — the same rule the
// extractors use for header columns.
func lineIndent(line string) (col int, rest string) {
	for i, r := range line {
		switch r {
		case '\t':
			col += tags.TabStop
		case ' ', '\v', '\f', '\r':
			col++
		default:
			return col, line[i:]
		}
	}
	return col, ""
}
