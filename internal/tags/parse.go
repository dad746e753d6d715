package tags

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// The tool's output grammar, one tag per line:
//
//	<name>\t<file>\t/^<pattern>$/;"\t<kind>\tline:<n>[\t<ownerKind>:<owner>]
//
// Lines starting with "!" are tool metadata. A line that does not match the
// layout is skipped with a warning; it never aborts the extraction. All
// knowledge of the format lives in this file.

// Parse reads tool output and returns the resulting table plus the number of
// malformed lines that were skipped.
func Parse(r io.Reader) (*Table, int) {
	var (
		raw  []Tag
		bad  int
		scan = bufio.NewScanner(r)
	)
	scan.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scan.Scan() {
		line := scan.Text()
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		t, err := parseLine(line)
		if err != nil {
			bad++
			log.Warn().Err(err).Str("line", line).Msg("tags: skipping malformed tool output")
			continue
		}
		raw = append(raw, t)
	}
	return NewTable(raw), bad
}

// parseLine parses a single tag line into a Tag.
func parseLine(line string) (Tag, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 5 {
		return Tag{}, fmt.Errorf("want at least 5 fields, got %d", len(fields))
	}

	t := Tag{
		Name:      fields[0],
		Kind:      fields[3],
		IndentCol: patternIndent(fields[2]),
	}

	numStr, ok := strings.CutPrefix(fields[4], "line:")
	if !ok {
		return Tag{}, fmt.Errorf("field 5 %q has no line: prefix", fields[4])
	}
	n, err := strconv.Atoi(numStr)
	if err != nil {
		return Tag{}, fmt.Errorf("bad line number %q: %w", numStr, err)
	}
	t.StartLine = n

	// Optional scope field: "<ownerKind>:<owner>"; only the owner name is kept.
	if len(fields) >= 6 {
		if _, owner, ok := strings.Cut(fields[5], ":"); ok {
			t.Owner = owner
		}
	}
	return t, nil
}

// patternIndent recovers the header indentation column from the tool's match
// pattern ("/^<source line>$/;\""). The first two characters are the slash
// and the ^ anchor; the walk starts at the third character and the column
// accumulator starts at 2 to keep the tool's baseline. Tab counts as
// TabStop columns, any other whitespace as one.
func patternIndent(pattern string) int {
	col := 2
	runes := []rune(pattern)
	if len(runes) < 3 {
		return col
	}
	for _, r := range runes[2:] {
		switch r {
		case '\t':
			col += TabStop
		case ' ', '\v', '\f':
			col++
		default:
			return col
		}
	}
	return col
}
