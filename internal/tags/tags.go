// Package tags provides the symbol-table model for the status indicator:
// extraction of tags from a buffer (external ctags process or the built-in
// tree-sitter fallback) and label rendering for resolved symbols.
package tags

import (
	"context"
	"fmt"
	"sort"
)

// TabStop is the column width of a tab when expanding indentation.
const TabStop = 8

// Tag is one symbol emitted by the extraction tool.
type Tag struct {
	Name      string
	Kind      string // tool category ("class", "function", "member"), opaque
	StartLine int    // 1-indexed line of the defining header
	IndentCol int    // expanded column of the header token, nesting baseline
	Owner     string // enclosing symbol name, empty for top-level
}

// Label returns the qualified display name: "Owner.name()" when the tag has
// an owner, plain "name" otherwise.
func (t Tag) Label() string {
	if t.Owner != "" {
		return t.Owner + "." + t.Name + "()"
	}
	return t.Name
}

// FormatStatus renders the status-line text for a resolved tag.
// A nil tag (nothing enclosing) renders as the empty string.
func FormatStatus(t *Tag) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("[in %s (%s)]", t.Label(), t.Kind)
}

// Table is an immutable per-buffer symbol table. Lines holds the start lines
// in ascending order, in 1:1 correspondence with the ByLine keys. Tables are
// replaced wholesale on refresh, never mutated.
type Table struct {
	Lines  []int
	ByLine map[int]Tag
}

// NewTable builds a table from raw tags. Duplicate start lines keep the
// later tag; the line sequence is sorted ascending regardless of the order
// the tool emitted.
func NewTable(raw []Tag) *Table {
	byLine := make(map[int]Tag, len(raw))
	for _, t := range raw {
		byLine[t.StartLine] = t
	}
	lines := make([]int, 0, len(byLine))
	for ln := range byLine {
		lines = append(lines, ln)
	}
	sort.Ints(lines)
	return &Table{Lines: lines, ByLine: byLine}
}

// Len returns the number of tags in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Lines)
}

// Extractor produces a symbol table from a buffer's current lines.
type Extractor interface {
	Extract(ctx context.Context, lines []string) (*Table, error)
}
