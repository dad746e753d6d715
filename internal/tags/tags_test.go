package tags

import "testing"

func TestNewTable_SortAndOverwrite(t *testing.T) {
	table := NewTable([]Tag{
		{Name: "late", StartLine: 40},
		{Name: "first", StartLine: 10},
		{Name: "dup_a", StartLine: 25},
		{Name: "dup_b", StartLine: 25}, // later record wins
	})

	want := []int{10, 25, 40}
	if len(table.Lines) != len(want) {
		t.Fatalf("lines = %v, want %v", table.Lines, want)
	}
	for i := range want {
		if table.Lines[i] != want[i] {
			t.Fatalf("lines = %v, want %v", table.Lines, want)
		}
	}
	if len(table.ByLine) != len(table.Lines) {
		t.Errorf("map has %d entries, line sequence has %d", len(table.ByLine), len(table.Lines))
	}
	if got := table.ByLine[25].Name; got != "dup_b" {
		t.Errorf("duplicate start line kept %q, want dup_b", got)
	}
}

func TestTableLen_Nil(t *testing.T) {
	var table *Table
	if table.Len() != 0 {
		t.Errorf("nil table Len = %d, want 0", table.Len())
	}
}

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		name string
		tag  *Tag
		want string
	}{
		{"owned", &Tag{Name: "bar", Kind: "function", Owner: "Foo"}, "[in Foo.bar() (function)]"},
		{"top level", &Tag{Name: "bar", Kind: "function"}, "[in bar (function)]"},
		{"class", &Tag{Name: "Server", Kind: "class"}, "[in Server (class)]"},
		{"none", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatStatus(tt.tag); got != tt.want {
				t.Errorf("FormatStatus = %q, want %q", got, tt.want)
			}
		})
	}
}
