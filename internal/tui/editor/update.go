package editor

import tea "charm.land/bubbletea/v2"

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	if key, ok := msg.(tea.KeyPressMsg); ok && m.focus {
		if m.handleKey(key.Keystroke(), key.Text) {
			m.clampCursor()
			m.clampScroll()
			cmds = append(cmds, m.cursor.Blink())
		}
	}

	// Forward to cursor for blink handling
	var cmd tea.Cmd
	m.cursor, cmd = m.cursor.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey applies one keystroke to the buffer or cursor. text carries the
// printable input, if any. Returns true when something changed and the
// caller should re-clamp and restart the cursor blink.
func (m *Model) handleKey(key, text string) bool {
	switch key {
	case "up", "down", "left", "right",
		"home", "ctrl+a", "end", "ctrl+e",
		"pgup", "pgdown", "ctrl+home", "ctrl+end":
		m.moveCursor(key)
		return true
	case "backspace", "ctrl+h":
		m.deleteBack()
		return true
	case "delete", "ctrl+d":
		m.deleteForward()
		return true
	case "enter":
		m.insertNewline()
		return true
	case "tab":
		m.tabIndent()
		return true
	}
	if m.ReadOnly || text == "" {
		return false
	}
	for _, r := range text {
		m.insertRune(r)
	}
	return true
}

// moveCursor applies one navigation keystroke. Horizontal moves wrap across
// line boundaries; vertical moves are clamped afterwards.
func (m *Model) moveCursor(key string) {
	switch key {
	case "up":
		m.row--
	case "down":
		m.row++
	case "left":
		if m.col > 0 {
			m.col--
		} else if m.row > 0 {
			m.row--
			m.col = len(m.currentLine())
		}
	case "right":
		if m.col < len(m.currentLine()) {
			m.col++
		} else if m.row < len(m.lines)-1 {
			m.row++
			m.col = 0
		}
	case "home", "ctrl+a":
		m.col = 0
	case "end", "ctrl+e":
		m.col = len(m.currentLine())
	case "pgup":
		m.row -= m.height
	case "pgdown":
		m.row += m.height
	case "ctrl+home":
		m.row, m.col = 0, 0
	case "ctrl+end":
		m.row = len(m.lines) - 1
		m.col = len(m.currentLine())
	}
	m.clampCursor()
}
