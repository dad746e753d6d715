package tui

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
)

// renderStatusBar writes the status separator and bar.
func (m Model) renderStatusBar(b *strings.Builder, bgFill lipgloss.Style) {
	b.WriteString(m.styles.Border.Render(strings.Repeat("─", m.width)))
	b.WriteByte('\n')

	// -- Left segments --
	name := m.fileName
	if m.dirty() {
		name += "*"
	}
	left := m.styles.StatusText.Render(" " + name)

	// -- Right segments --
	var rightParts []string

	if m.statusLabel != "" {
		label := m.statusLabel
		if m.statusStale {
			rightParts = append(rightParts, m.styles.Error.Render("✗"))
		}
		rightParts = append(rightParts, m.styles.StatusLabel.Render(label))
	} else if m.statusStale {
		rightParts = append(rightParts, m.styles.Error.Render("✗"))
	}

	pos := strconv.Itoa(m.editor.CaretLine()) + ":" + strconv.Itoa(m.editor.CaretCol())
	rightParts = append(rightParts, m.styles.StatusText.Render(pos))

	right := strings.Join(rightParts, m.styles.StatusText.Render(" "))

	// -- Compose: left + gap + right + trailing space --
	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := m.width - leftW - rightW - 1
	if gap < 0 {
		gap = 0
	}
	b.WriteString(left)
	b.WriteString(bgFill.Render(strings.Repeat(" ", gap)))
	b.WriteString(right)
	b.WriteString(bgFill.Render(" "))
}
