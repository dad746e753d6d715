package engine

import (
	"testing"

	"github.com/xonecas/tagline/internal/tags"
)

// tableAt builds a table with one anonymous tag per start line.
func tableAt(lines ...int) *tags.Table {
	raw := make([]tags.Tag, len(lines))
	for i, ln := range lines {
		raw[i] = tags.Tag{Name: "sym", Kind: "function", StartLine: ln}
	}
	return tags.NewTable(raw)
}

func TestResolve_NearestCandidate(t *testing.T) {
	table := tableAt(5, 10, 20)
	lines := make([]string, 30) // all blank, continuity never breaks

	tests := []struct {
		caret int
		want  int // expected start line, 0 = none
	}{
		{15, 10},
		{3, 0},
		{20, 20}, // equal counts as enclosing
		{5, 5},
		{25, 20},
	}
	for _, tt := range tests {
		got := Resolve(table, tt.caret, lines, "#")
		switch {
		case tt.want == 0 && got != nil:
			t.Errorf("caret %d: got %+v, want none", tt.caret, got)
		case tt.want != 0 && (got == nil || got.StartLine != tt.want):
			t.Errorf("caret %d: got %+v, want start line %d", tt.caret, got, tt.want)
		}
	}
}

func TestResolve_DedentInvalidates(t *testing.T) {
	table := tags.NewTable([]tags.Tag{
		{Name: "run", Kind: "function", StartLine: 10, IndentCol: 4},
	})
	lines := make([]string, 20)
	lines[9] = "  def run(self):"
	lines[10] = "    body()"
	lines[11] = "x = 1" // column 0, structurally outside the symbol

	if got := Resolve(table, 15, lines, "#"); got != nil {
		t.Errorf("got %+v, want none after dedent", got)
	}
}

func TestResolve_NoAncestorFallback(t *testing.T) {
	// A shallower class tag exists above, but an invalidated nearest
	// candidate resolves to none rather than falling back to it.
	table := tags.NewTable([]tags.Tag{
		{Name: "Server", Kind: "class", StartLine: 1, IndentCol: 2},
		{Name: "run", Kind: "member", StartLine: 10, IndentCol: 6, Owner: "Server"},
	})
	lines := make([]string, 20)
	lines[0] = "class Server:"
	lines[9] = "    def run(self):"
	lines[11] = "import os" // dedent below run's column

	if got := Resolve(table, 15, lines, "#"); got != nil {
		t.Errorf("got %+v, want none (no fallback to Server)", got)
	}
}

func TestResolve_BlankAndCommentImmunity(t *testing.T) {
	table := tags.NewTable([]tags.Tag{
		{Name: "run", Kind: "function", StartLine: 10, IndentCol: 4},
	})

	tests := []struct {
		name   string
		line12 string
	}{
		{"blank", ""},
		{"whitespace only", "   \t"},
		{"comment at column 0", "# temporary note"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := make([]string, 20)
			lines[9] = "  def run(self):"
			lines[10] = "    body()"
			lines[11] = tt.line12

			got := Resolve(table, 15, lines, "#")
			if got == nil || got.StartLine != 10 {
				t.Errorf("got %+v, want the line-10 symbol", got)
			}
		})
	}
}

func TestResolve_TabIndentedBodyLine(t *testing.T) {
	table := tags.NewTable([]tags.Tag{
		{Name: "run", Kind: "function", StartLine: 10, IndentCol: 6},
	})
	lines := make([]string, 20)
	lines[9] = "    def run(self):"
	lines[11] = "\tbody()" // tab expands to 8 >= 6, continuity holds

	got := Resolve(table, 15, lines, "#")
	if got == nil || got.StartLine != 10 {
		t.Errorf("got %+v, want the line-10 symbol", got)
	}
}

func TestResolve_EmptyAndNilTable(t *testing.T) {
	if got := Resolve(tags.NewTable(nil), 5, []string{"x"}, "#"); got != nil {
		t.Errorf("empty table: got %+v, want none", got)
	}
	if got := Resolve(nil, 5, []string{"x"}, "#"); got != nil {
		t.Errorf("nil table: got %+v, want none", got)
	}
}

func TestLineIndent(t *testing.T) {
	tests := []struct {
		line     string
		wantCol  int
		wantRest string
	}{
		{"x = 1", 0, "x = 1"},
		{"    x = 1", 4, "x = 1"},
		{"\tx = 1", 8, "x = 1"},
		{"\t  x = 1", 10, "x = 1"},
		{"   ", 3, ""},
		{"", 0, ""},
	}
	for _, tt := range tests {
		col, rest := lineIndent(tt.line)
		if col != tt.wantCol || rest != tt.wantRest {
			t.Errorf("lineIndent(%q) = (%d, %q), want (%d, %q)",
				tt.line, col, rest, tt.wantCol, tt.wantRest)
		}
	}
}
