// Package tui hosts the editor pane and the symbol status bar.
package tui

import (
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/xonecas/tagline/internal/config"
	"github.com/xonecas/tagline/internal/engine"
	"github.com/xonecas/tagline/internal/tui/editor"
)

// statusRows is the separator line plus the status bar.
const statusRows = 2

// Model is the application model.
type Model struct {
	width  int
	height int

	editor editor.Model
	engine *engine.Engine
	cfg    *config.Config
	styles styles

	filePath string // absolute path of the open file
	fileName string // base name shown in the status bar
	bufferID string

	// Symbol status state
	statusLabel string // last successfully resolved label
	statusStale bool   // last refresh failed, label may be outdated

	// Idle tracking: the status only refreshes after a quiet interval.
	lastKeyAt time.Time
	shownRev  int64 // revision the current label was computed for
	shownLine int   // caret line the current label was computed for

	savedRev int64 // revision at last save, for the dirty marker
}

// New creates the application model for one open file.
func New(cfg *config.Config, eng *engine.Engine, filePath, content string) Model {
	ed := editor.New()
	ed.ShowLineNumbers = true
	ed.Language = cfg.Language.Name
	if ed.Language == "" {
		ed.Language = "python"
	}
	ed.SyntaxTheme = cfg.UI.SyntaxThemeOrDefault()
	ed.BgColor = ColorBg
	ed.LineNumStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	ed.CursorStyle = lipgloss.NewStyle().Foreground(ColorHighlight)
	ed.SetValue(content)
	ed.Focus()

	return Model{
		editor:    ed,
		engine:    eng,
		cfg:       cfg,
		styles:    newStyles(),
		filePath:  filePath,
		fileName:  filepath.Base(filePath),
		bufferID:  filePath,
		lastKeyAt: time.Now(),
		savedRev:  ed.Revision(),
		shownRev:  -1,
	}
}

// Init starts the idle tick loop and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(idleTick(), m.refreshStatus())
}

// snapshot captures the current buffer state for a status refresh.
func (m Model) snapshot() engine.BufferSnapshot {
	return engine.BufferSnapshot{
		ID:        m.bufferID,
		Rev:       m.editor.Revision(),
		Name:      m.fileName,
		Lines:     m.editor.Lines(),
		CaretLine: m.editor.CaretLine(),
		CaretCol:  m.editor.CaretCol(),
	}
}

func (m Model) dirty() bool {
	return m.editor.Revision() != m.savedRev
}
