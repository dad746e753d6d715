package editor

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the visible window of the buffer. Lines are never wrapped;
// anything past the text width is truncated.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	tw := m.textWidth()
	bg := m.bgForRender()
	lineNumSty := m.LineNumStyle.Background(bg.GetBackground())
	hasSyntax := m.Language != "" && m.SyntaxTheme != ""

	var b strings.Builder

	for vi := 0; vi < m.height; vi++ {
		if vi > 0 {
			b.WriteByte('\n')
		}

		bufRow := m.scroll + vi
		if bufRow >= len(m.lines) {
			// End-of-buffer: fill entire row with bg
			b.WriteString(bg.Render(strings.Repeat(" ", m.width)))
			continue
		}

		lineStr := expandTabs(string(m.lines[bufRow]))

		// -- Gutter ----------------------------------------------------------
		if m.ShowLineNumbers {
			digits := m.gutterWidth - 1
			num := fmt.Sprintf("%*d ", digits, bufRow+1)
			b.WriteString(lineNumSty.Render(num))
		}

		// -- Text content ----------------------------------------------------
		var rendered string
		switch {
		case m.focus && bufRow == m.row:
			rendered = m.renderCursorLine(lineStr)
		case hasSyntax:
			rendered = m.hl.render(lineStr, m.Language, m.SyntaxTheme, m.bgHexForHighlight())
		default:
			rendered = bg.Render(lineStr)
		}

		rw := lipgloss.Width(rendered)
		if rw > tw {
			rendered = ansi.Truncate(rendered, tw, "")
			rw = lipgloss.Width(rendered)
		}
		b.WriteString(rendered)
		if rw < tw {
			b.WriteString(bg.Render(strings.Repeat(" ", tw-rw)))
		}
	}

	return b.String()
}

// renderCursorLine renders the cursor's line with the cursor glyph spliced in.
// Uses ansi.Cut on the full-line highlight so syntax coloring is never broken
// around the cursor.
func (m Model) renderCursorLine(lineStr string) string {
	bg := m.bgForRender()
	runes := []rune(lineStr)

	// Cursor column in expanded-tab space.
	col := len([]rune(expandTabs(string(m.lines[m.row][:m.col]))))
	if col > len(runes) {
		col = len(runes)
	}

	cursorChar := " "
	if col < len(runes) {
		cursorChar = string(runes[col])
	}

	hasSyntax := m.Language != "" && m.SyntaxTheme != ""
	var before, after string

	if hasSyntax {
		fullHL := m.hl.render(lineStr, m.Language, m.SyntaxTheme, m.bgHexForHighlight())
		before = ansi.Cut(fullHL, 0, col)
		after = ansi.Cut(fullHL, col+1, len(runes))
	} else {
		highlighted := bg.Render(lineStr)
		before = ansi.Truncate(highlighted, col, "")
		after = ansi.TruncateLeft(highlighted, col+1, "")
	}

	m.cursor.SetChar(cursorChar)
	m.cursor.TextStyle = bg
	cursorView := m.cursor.View()

	return before + cursorView + after
}

// bgForRender returns the background style. Extracts from syntax theme if
// available, falls back to BgColor.
func (m Model) bgForRender() lipgloss.Style {
	if m.Language != "" && m.SyntaxTheme != "" {
		if hex := themeBackground(m.SyntaxTheme); hex != "" {
			return lipgloss.NewStyle().Background(lipgloss.Color(hex))
		}
	}
	return lipgloss.NewStyle().Background(m.BgColor)
}

// bgHexForHighlight picks the background hex the highlighter should paint:
// the theme's own background when it has one, otherwise the component's.
func (m Model) bgHexForHighlight() string {
	if hex := themeBackground(m.SyntaxTheme); hex != "" {
		return hex
	}
	if m.BgColor == nil {
		return ""
	}
	r, g, b, _ := m.BgColor.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
