package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	return v
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.editor.View())
	b.WriteByte('\n')
	m.renderStatusBar(&b, m.styles.BgFill)
	return b.String()
}
