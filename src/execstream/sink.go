// Package execstream runs external commands and streams their output
// line-by-line through per-source sinks, so concurrently running
// processes stay attributable on a shared console.
package execstream

import (
	"fmt"
	"io"
	"sync"
)

// Sink consumes one line of process output at a time. The line arrives
// already decoded as text with its LF or CRLF terminator stripped; a
// final unterminated line is delivered as-is. Sinks that write lines
// back out re-terminate each one with a single "\n".
type Sink interface {
	Line(line string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(line string)

// Line calls f.
func (f SinkFunc) Line(line string) { f(line) }

// LabelWriter writes every line as "label: line\n" to w. Each line goes
// out as a single write so that lines from different writers sharing the
// same file interleave without tearing.
type LabelWriter struct {
	mu    sync.Mutex
	w     io.Writer
	label string
}

// NewLabelWriter returns a sink labeling lines for w.
func NewLabelWriter(w io.Writer, label string) *LabelWriter {
	return &LabelWriter{w: w, label: label}
}

// Line emits one labeled line.
func (lw *LabelWriter) Line(line string) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	fmt.Fprintf(lw.w, "%s: %s\n", lw.label, line)
}

// CaptureSink records every line it receives. Used where command output is
// data rather than log, e.g. capturing a login token.
type CaptureSink struct {
	mu    sync.Mutex
	lines []string
}

// Line records one line.
func (c *CaptureSink) Line(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

// Lines returns a copy of everything recorded so far.
func (c *CaptureSink) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// First returns the first recorded line, or "" when nothing arrived.
func (c *CaptureSink) First() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == 0 {
		return ""
	}
	return c.lines[0]
}
