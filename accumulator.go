package generable

import (
	"log/slog"
	"sync"
)

// Accumulator collects the chunks of a streamed model response and exposes the
// best-effort content parsed so far. It implements io.Writer and io.StringWriter
// and is safe for concurrent use.
//
// Snapshot re-parses the whole buffer, so each call costs O(len(buffer)); the
// result is memoized until the next write.
type Accumulator struct {
	mu     sync.Mutex
	buf    []byte
	opt    ParseOpt
	logger *slog.Logger

	cached   bool
	last     GeneratedContent
	lastErr  error
	complete bool
}

// AccumulatorOption configures an Accumulator.
type AccumulatorOption func(*Accumulator)

// WithLogger logs snapshot transitions at debug level.
func WithLogger(l *slog.Logger) AccumulatorOption {
	return func(a *Accumulator) { a.logger = l }
}

// WithParseOpt sets the options used for every snapshot.
func WithParseOpt(opt ParseOpt) AccumulatorOption {
	return func(a *Accumulator) { a.opt = opt }
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator(opts ...AccumulatorOption) *Accumulator {
	a := &Accumulator{}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Write appends a chunk. It never fails.
func (a *Accumulator) Write(p []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.buf = append(a.buf, p...)
	if len(p) > 0 {
		a.cached = false
	}
	return len(p), nil
}

// WriteString appends a chunk. It never fails.
func (a *Accumulator) WriteString(s string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.buf = append(a.buf, s...)
	if len(s) > 0 {
		a.cached = false
	}
	return len(s), nil
}

// Text returns the accumulated text.
func (a *Accumulator) Text() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return string(a.buf)
}

// Len returns the number of buffered bytes.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.buf)
}

// Reset drops the buffer and the memoized snapshot.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.buf = a.buf[:0]
	a.cached = false
	a.complete = false
	a.last, a.lastErr = GeneratedContent{}, nil
}

// Snapshot parses the current buffer with Parse.
func (a *Accumulator) Snapshot() (GeneratedContent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cached {
		return a.last, a.lastErr
	}
	a.last, a.lastErr = Parse(string(a.buf), a.opt)
	a.cached = true
	if a.logger != nil {
		switch {
		case a.lastErr != nil:
			a.logger.Debug("snapshot failed", "bytes", len(a.buf), "error", a.lastErr)
		case a.last.IsComplete() && !a.complete:
			a.logger.Debug("snapshot complete", "bytes", len(a.buf), "kind", a.last.Kind().String())
		default:
			a.logger.Debug("snapshot", "bytes", len(a.buf), "kind", a.last.Kind().String(), "complete", a.last.IsComplete())
		}
	}
	a.complete = a.lastErr == nil && a.last.IsComplete()
	return a.last, a.lastErr
}
