package editor

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightCap bounds the line cache. A buffer rarely holds more distinct
// lines than this, so reaching the cap means churn and the map is dropped
// wholesale instead of tracking entry ages.
const highlightCap = 2000

// highlighter caches per-line ANSI renders for one buffer. The editor hosts
// a single file in a single language, so entries are keyed by line text
// alone; the whole cache is flushed when the language, theme or background
// changes.
type highlighter struct {
	mu    sync.Mutex
	lang  string
	theme string
	bgHex string
	bgSeq string
	lexer chroma.Lexer
	lines map[string]string
}

func newHighlighter() *highlighter {
	return &highlighter{lines: make(map[string]string)}
}

// render returns the ANSI-highlighted form of one line, served from cache
// when the line was rendered before under the same configuration. Unknown
// languages return the text untouched.
func (h *highlighter) render(text, lang, theme, bgHex string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if lang != h.lang || theme != h.theme || bgHex != h.bgHex {
		h.lang, h.theme, h.bgHex = lang, theme, bgHex
		h.bgSeq = bgEscape(bgHex)
		h.lexer = nil
		if lex := lexers.Get(lang); lex != nil {
			h.lexer = chroma.Coalesce(lex)
		}
		h.lines = make(map[string]string)
	}
	if h.lexer == nil {
		return text
	}
	if v, ok := h.lines[text]; ok {
		return v
	}

	out := h.highlight(text)
	if len(h.lines) >= highlightCap {
		h.lines = make(map[string]string)
	}
	h.lines[text] = out
	return out
}

func (h *highlighter) highlight(text string) string {
	sty := styles.Get(h.theme)
	fmtr := formatters.Get("terminal16m")
	if fmtr == nil {
		fmtr = formatters.Fallback
	}
	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var buf strings.Builder
	if err := fmtr.Format(&buf, sty, it); err != nil {
		return text
	}
	raw := strings.TrimRight(buf.String(), "\n")

	// Chroma's terminal16m formatter skips bg on tokens that inherit from
	// the Background entry, and every \x1b[0m reset clears bg; re-arm the
	// background after each reset so it stays active across the line.
	return h.bgSeq + strings.ReplaceAll(raw, "\x1b[0m", "\x1b[0m"+h.bgSeq)
}

// bgEscape converts "#rrggbb" to an ANSI 24-bit background escape sequence.
func bgEscape(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	r, errR := strconv.ParseUint(hex[1:3], 16, 8)
	g, errG := strconv.ParseUint(hex[3:5], 16, 8)
	b, errB := strconv.ParseUint(hex[5:7], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return ""
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

// themeBackground extracts the background hex color from a Chroma style,
// "" when the theme sets none.
func themeBackground(theme string) string {
	sty := styles.Get(theme)
	if sty == nil {
		return ""
	}
	bg := sty.Get(chroma.Background).Background
	if !bg.IsSet() {
		return ""
	}
	return bg.String() // "#rrggbb"
}
