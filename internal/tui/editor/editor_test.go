package editor

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestExpandTabs(t *testing.T) {
	cases := []struct {
		in   string
		want int // visual width (all chars are ASCII, so rune count = display width)
	}{
		{"\thello", 8 + 5},       // 1 tab (8 spaces) + "hello"
		{"\t\thello", 8 + 8 + 5}, // 2 tabs + "hello"
		{"ab\tc", 2 + 6 + 1},     // "ab" then tab to col 8, then "c"
		{"no tabs", 7},
	}
	for _, tc := range cases {
		got := expandTabs(tc.in)
		w := len([]rune(got))
		if w != tc.want {
			t.Errorf("expandTabs(%q) width=%d, want %d (got %q)", tc.in, w, tc.want, got)
		}
	}
}

func TestRevisionBumps(t *testing.T) {
	ed := New()
	if ed.Revision() != 0 {
		t.Fatalf("fresh revision = %d, want 0", ed.Revision())
	}

	ed.SetValue("def main():\n    pass")
	afterLoad := ed.Revision()
	if afterLoad == 0 {
		t.Error("SetValue did not bump the revision")
	}

	ed.insertRune('x')
	afterInsert := ed.Revision()
	if afterInsert <= afterLoad {
		t.Errorf("insert: revision %d -> %d, want increase", afterLoad, afterInsert)
	}

	ed.deleteBack()
	if ed.Revision() <= afterInsert {
		t.Error("delete did not bump the revision")
	}

	ed.insertNewline()
	if ed.Revision() <= afterInsert+1 {
		t.Error("newline did not bump the revision")
	}
}

func TestRevisionStableAcrossReads(t *testing.T) {
	ed := New()
	ed.SetValue("x = 1")
	rev := ed.Revision()

	_ = ed.Value()
	_ = ed.Lines()
	_ = ed.CaretLine()
	_ = ed.CaretCol()

	if ed.Revision() != rev {
		t.Errorf("reads changed revision %d -> %d", rev, ed.Revision())
	}
}

func TestSetValueRoundtrip(t *testing.T) {
	ed := New()
	content := "class Server:\n    def start(self):\n        pass"
	ed.SetValue(content)

	if got := ed.Value(); got != content {
		t.Errorf("Value() = %q, want %q", got, content)
	}
	lines := ed.Lines()
	if len(lines) != 3 || lines[1] != "    def start(self):" {
		t.Errorf("Lines() = %q", lines)
	}
	if ed.CaretLine() != 1 || ed.CaretCol() != 1 {
		t.Errorf("caret = %d:%d after SetValue, want 1:1", ed.CaretLine(), ed.CaretCol())
	}
}

func TestReadOnlyBlocksEdits(t *testing.T) {
	ed := New()
	ed.SetValue("x = 1")
	ed.ReadOnly = true
	rev := ed.Revision()

	ed.InsertText("y")
	ed.deleteBack()
	ed.insertNewline()

	if ed.Value() != "x = 1" {
		t.Errorf("buffer changed while read-only: %q", ed.Value())
	}
	if ed.Revision() != rev {
		t.Errorf("revision changed while read-only: %d -> %d", rev, ed.Revision())
	}
}

func TestViewWidthInvariant(t *testing.T) {
	ed := New()
	ed.ShowLineNumbers = true
	ed.BgColor = lipgloss.Color("#000000")
	ed.LineNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1c1c1c"))

	ed.SetWidth(40)
	ed.SetHeight(5)
	ed.SetValue("\tdef run(self):\n\t\treturn self.done\nshort")
	ed.Focus()

	view := ed.View()
	for i, line := range strings.Split(view, "\n") {
		if w := lipgloss.Width(line); w != 40 {
			t.Errorf("line %d: width=%d (want 40)", i, w)
		}
	}
}
