package tags

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Extraction failure kinds.
const (
	FailStart   = "start"   // tool could not be started
	FailOutput  = "output"  // tool produced no readable output
	FailTimeout = "timeout" // tool exceeded the configured deadline
)

// ExtractionError reports that the external tool produced no usable table.
// The caller must not cache it; the next trigger retries naturally.
type ExtractionError struct {
	Kind string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("tag extraction failed (%s): %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// CtagsExtractor runs a configured ctags command line over a snapshot of the
// buffer. The command is expected to read its input file list from stdin and
// write one tag per line to stdout (see parse.go for the line grammar).
type CtagsExtractor struct {
	// Command is the full command line, parsed with shell word semantics.
	Command string
	// Timeout bounds the tool run; expiry is an ExtractionError.
	Timeout time.Duration
}

// NewCtagsExtractor returns an extractor for the given command line.
func NewCtagsExtractor(command string, timeout time.Duration) *CtagsExtractor {
	return &CtagsExtractor{Command: command, Timeout: timeout}
}

// Extract serializes lines to a temp file, runs the tool against it and
// parses the output. The temp file is removed on every path.
func (e *CtagsExtractor) Extract(ctx context.Context, lines []string) (*Table, error) {
	tmp, err := os.CreateTemp("", "tagline-*.src")
	if err != nil {
		return nil, &ExtractionError{Kind: FailStart, Err: err}
	}
	defer os.Remove(tmp.Name())

	for _, l := range lines {
		if _, err := tmp.WriteString(l + "\n"); err != nil {
			tmp.Close()
			return nil, &ExtractionError{Kind: FailStart, Err: err}
		}
	}
	if err := tmp.Close(); err != nil {
		return nil, &ExtractionError{Kind: FailStart, Err: err}
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	runErr := runCommand(ctx, e.Command, strings.NewReader(tmp.Name()+"\n"), &stdout, &stderr)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, &ExtractionError{Kind: FailTimeout, Err: ctx.Err()}
	}
	// The run is a failure only when there is nothing to parse: the tool may
	// exit non-zero and still have written usable tags for part of the file.
	if runErr != nil && stdout.Len() == 0 {
		return nil, &ExtractionError{Kind: FailStart, Err: fmt.Errorf("%w: %s", runErr, strings.TrimSpace(stderr.String()))}
	}

	table, bad := Parse(&stdout)
	if bad > 0 {
		log.Warn().Int("skipped", bad).Msg("tags: tool output contained malformed lines")
	}
	return table, nil
}

// runCommand parses and runs a command line in an in-process shell with the
// given standard streams.
func runCommand(ctx context.Context, command string, stdin *strings.Reader, stdout, stderr *bytes.Buffer) error {
	parsed, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return fmt.Errorf("could not parse command: %w", err)
	}
	runner, err := interp.New(
		interp.StdIO(stdin, stdout, stderr),
		interp.Interactive(false),
		interp.Env(expand.ListEnviron(os.Environ()...)),
	)
	if err != nil {
		return fmt.Errorf("could not create interpreter: %w", err)
	}
	return runner.Run(ctx, parsed)
}
