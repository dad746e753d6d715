package tui

import (
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor.SetWidth(m.width)
		m.editor.SetHeight(m.height - statusRows)

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		m.lastKeyAt = time.Now()
		switch msg.Keystroke() {
		case "ctrl+c":
			m.engine.OnBufferClose(m.bufferID)
			return m, tea.Quit
		case "ctrl+s":
			return m, m.saveFile()
		}

	// -- Idle poll -----------------------------------------------------------
	case tickMsg:
		if m.needsRefresh() && time.Since(m.lastKeyAt) >= m.cfg.UI.IdleDelayOrDefault() {
			// Mark in-flight so one slow refresh isn't re-issued every tick.
			m.shownRev = m.editor.Revision()
			m.shownLine = m.editor.CaretLine()
			return m, tea.Batch(m.refreshStatus(), idleTick())
		}
		return m, idleTick()

	// -- Status refresh result -----------------------------------------------
	case statusMsg:
		if msg.status.Err != nil {
			// Keep the previous label, flag it as possibly outdated, and
			// clear the shown markers so the next idle tick retries.
			m.statusStale = true
			m.shownRev = -1
			m.shownLine = 0
			return m, nil
		}
		m.statusLabel = msg.status.Label
		m.statusStale = false
		m.shownRev = msg.rev
		m.shownLine = msg.line
		return m, nil

	case savedMsg:
		if msg.err == nil {
			m.savedRev = msg.rev
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// needsRefresh reports whether the buffer or caret moved since the shown
// status was computed.
func (m Model) needsRefresh() bool {
	return m.editor.Revision() != m.shownRev || m.editor.CaretLine() != m.shownLine
}

// saveFile writes the buffer back to disk.
func (m Model) saveFile() tea.Cmd {
	path := m.filePath
	content := m.editor.Value()
	rev := m.editor.Revision()
	return func() tea.Msg {
		err := os.WriteFile(path, []byte(content), 0644)
		return savedMsg{rev: rev, err: err}
	}
}
