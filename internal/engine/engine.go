package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/tagline/internal/tags"
)

// BufferSnapshot is the host-facing input for one trigger: the buffer's
// identity, its monotonically increasing revision counter, its full text and
// the caret position.
type BufferSnapshot struct {
	ID        string
	Rev       int64
	Name      string   // file name, used for the supported-language gate
	Lines     []string // full buffer text, one entry per line
	CaretLine int      // 1-indexed
	CaretCol  int      // 1-indexed
}

// Status is the outcome of one trigger. On Err the caller keeps its previous
// label; the engine never lets a fault escape into the host's event loop.
type Status struct {
	Label string
	Err   error
}

// Engine owns the cache and extractor and serves idle / buffer-active
// triggers.
type Engine struct {
	cache         *Cache
	extractor     tags.Extractor
	commentPrefix string
	extensions    map[string]bool
}

// New creates an engine. extensions lists the file extensions of the
// supported language (lowercase, with leading dot).
func New(extractor tags.Extractor, commentPrefix string, extensions []string) *Engine {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}
	return &Engine{
		cache:         NewCache(),
		extractor:     extractor,
		commentPrefix: commentPrefix,
		extensions:    exts,
	}
}

// Supported reports whether the file belongs to the supported language.
func (e *Engine) Supported(name string) bool {
	return e.extensions[strings.ToLower(filepath.Ext(name))]
}

// OnTrigger serves an idle-elapsed or buffer-became-active event: get or
// rebuild the buffer's table, resolve the caret, format the label. Runs to
// completion synchronously; repeated triggers on an unchanged buffer are a
// cache hit and cost nothing.
func (e *Engine) OnTrigger(ctx context.Context, snap BufferSnapshot) (st Status) {
	defer func() {
		// The host's event loop must survive any internal fault.
		if r := recover(); r != nil {
			st = Status{Err: fmt.Errorf("engine: resolution panicked: %v", r)}
			log.Error().Interface("panic", r).Str("buffer", snap.ID).Msg("engine: trigger recovered")
		}
	}()

	if !e.Supported(snap.Name) {
		return Status{}
	}

	table, err := e.cache.GetOrRefresh(snap.ID, snap.Rev, func() (*tags.Table, error) {
		return e.extractor.Extract(ctx, snap.Lines)
	})
	if err != nil {
		log.Error().Err(err).Str("buffer", snap.ID).Msg("engine: extraction failed, keeping previous label")
		return Status{Err: err}
	}

	tag := Resolve(table, snap.CaretLine, snap.Lines, e.commentPrefix)
	return Status{Label: tags.FormatStatus(tag)}
}

// OnBufferClose evicts the buffer's cache entry. No resolution happens.
func (e *Engine) OnBufferClose(bufferID string) {
	e.cache.Evict(bufferID)
}
