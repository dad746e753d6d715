package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/xonecas/tagline/internal/tags"
)

// fakeExtractor serves canned tables and counts calls.
type fakeExtractor struct {
	table *tags.Table
	err   error
	calls int
}

func (f *fakeExtractor) Extract(_ context.Context, _ []string) (*tags.Table, error) {
	f.calls++
	return f.table, f.err
}

func pySnapshot(rev int64, caretLine int) BufferSnapshot {
	return BufferSnapshot{
		ID:   "buf-1",
		Rev:  rev,
		Name: "app.py",
		Lines: []string{
			"class Server:",
			"    def start(self):",
			"        self.up = True",
			"        return self.up",
		},
		CaretLine: caretLine,
		CaretCol:  1,
	}
}

func TestEngine_ResolvesLabel(t *testing.T) {
	ex := &fakeExtractor{table: tags.NewTable([]tags.Tag{
		{Name: "Server", Kind: "class", StartLine: 1, IndentCol: 2},
		{Name: "start", Kind: "member", StartLine: 2, IndentCol: 6, Owner: "Server"},
	})}
	e := New(ex, "#", []string{".py"})

	st := e.OnTrigger(context.Background(), pySnapshot(1, 3))
	if st.Err != nil {
		t.Fatalf("OnTrigger: %v", st.Err)
	}
	if want := "[in Server.start() (member)]"; st.Label != want {
		t.Errorf("label = %q, want %q", st.Label, want)
	}
}

func TestEngine_CacheHitAcrossTriggers(t *testing.T) {
	ex := &fakeExtractor{table: tags.NewTable(nil)}
	e := New(ex, "#", []string{".py"})

	e.OnTrigger(context.Background(), pySnapshot(4, 1))
	e.OnTrigger(context.Background(), pySnapshot(4, 2))
	if ex.calls != 1 {
		t.Errorf("extractor ran %d times for one revision, want 1", ex.calls)
	}

	e.OnTrigger(context.Background(), pySnapshot(5, 2))
	if ex.calls != 2 {
		t.Errorf("extractor ran %d times after revision bump, want 2", ex.calls)
	}
}

func TestEngine_UnsupportedFiletype(t *testing.T) {
	ex := &fakeExtractor{table: tags.NewTable(nil)}
	e := New(ex, "#", []string{".py"})

	snap := pySnapshot(1, 1)
	snap.Name = "main.go"
	st := e.OnTrigger(context.Background(), snap)
	if st.Err != nil || st.Label != "" {
		t.Errorf("got %+v, want empty status", st)
	}
	if ex.calls != 0 {
		t.Errorf("extractor ran %d times for unsupported filetype, want 0", ex.calls)
	}
}

func TestEngine_ExtractionFailureSurfaces(t *testing.T) {
	boom := &tags.ExtractionError{Kind: tags.FailStart, Err: errors.New("no ctags")}
	ex := &fakeExtractor{err: boom}
	e := New(ex, "#", []string{".py"})

	st := e.OnTrigger(context.Background(), pySnapshot(1, 3))
	if !errors.Is(st.Err, boom) {
		t.Fatalf("err = %v, want %v", st.Err, boom)
	}
	if st.Label != "" {
		t.Errorf("label = %q, want empty on failure", st.Label)
	}

	var exErr *tags.ExtractionError
	if !errors.As(st.Err, &exErr) || exErr.Kind != tags.FailStart {
		t.Errorf("err = %v, want ExtractionError with start kind", st.Err)
	}
}

func TestEngine_BufferCloseEvicts(t *testing.T) {
	ex := &fakeExtractor{table: tags.NewTable(nil)}
	e := New(ex, "#", []string{".py"})

	e.OnTrigger(context.Background(), pySnapshot(1, 1))
	e.OnBufferClose("buf-1")
	e.OnTrigger(context.Background(), pySnapshot(1, 1))

	if ex.calls != 2 {
		t.Errorf("extractor ran %d times across an eviction, want 2", ex.calls)
	}
}

func TestEngine_NoEnclosingSymbol(t *testing.T) {
	ex := &fakeExtractor{table: tags.NewTable([]tags.Tag{
		{Name: "late", Kind: "function", StartLine: 40, IndentCol: 2},
	})}
	e := New(ex, "#", []string{".py"})

	st := e.OnTrigger(context.Background(), pySnapshot(1, 2))
	if st.Err != nil {
		t.Fatalf("OnTrigger: %v", st.Err)
	}
	if st.Label != "" {
		t.Errorf("label = %q, want empty", st.Label)
	}
}
