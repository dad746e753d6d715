package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/tagline/internal/engine"
)

// ---------------------------------------------------------------------------
// ELM messages
// ---------------------------------------------------------------------------

// tickMsg drives the idle poll loop.
type tickMsg time.Time

// statusMsg carries the result of one symbol status refresh, stamped with the
// buffer state it was computed from.
type statusMsg struct {
	status engine.Status
	rev    int64
	line   int
}

// savedMsg reports the outcome of a ctrl+s write.
type savedMsg struct {
	rev int64
	err error
}

// ---------------------------------------------------------------------------
// ELM commands
// ---------------------------------------------------------------------------

// idleTick fires a tickMsg every 100ms; Update decides whether the keystroke
// quiet interval has elapsed.
func idleTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshStatus resolves the symbol for the current buffer state off the UI
// loop. Extraction can block on the external tool, so it never runs inline
// in Update.
func (m Model) refreshStatus() tea.Cmd {
	eng := m.engine
	snap := m.snapshot()
	return func() tea.Msg {
		st := eng.OnTrigger(context.Background(), snap)
		return statusMsg{status: st, rev: snap.Rev, line: snap.CaretLine}
	}
}
