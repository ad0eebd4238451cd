package execstream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// SpawnError reports that an external command could not be started at all
// (missing binary, permissions). A started command that exits non-zero is
// not a SpawnError; its exit code is returned as data.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Runner executes one external command at a time, draining its stdout and
// stderr concurrently through per-line sinks. The zero value is ready to
// use.
type Runner struct{}

// Run starts argv and streams both output pipes through the sinks until
// the process exits. The two streams are drained independently so a slow
// sink on one never blocks the other, and both drains finish before the
// process is waited on, so no buffered output is lost.
//
// The child's raw exit code is returned; interpreting it is the caller's
// business. Run itself only fails when the process cannot be spawned or
// cannot be waited on. Cancelling ctx kills the child.
//
// A nil sink discards that stream.
func (Runner) Run(ctx context.Context, argv []string, stdout, stderr Sink) (int, error) {
	if len(argv) == 0 {
		return 0, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("stdout pipe: %w", err)
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return 0, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return 0, &SpawnError{Command: argv[0], Err: err}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		drain(outPipe, stdout)
	}()
	go func() {
		defer wg.Done()
		drain(errPipe, stderr)
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("waiting for %s: %w", argv[0], err)
	}
	return 0, nil
}

// drain feeds r to the sink line by line until EOF. Lines are accumulated
// whatever their length, so a child emitting an enormous line can never
// block on a full pipe. Trailing LF/CRLF terminators are stripped; a final
// partial line is delivered as-is.
func drain(r io.Reader, sink Sink) {
	br := bufio.NewReaderSize(r, 64*1024)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 && sink != nil {
			sink.Line(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if err != io.EOF {
				// Whatever went wrong, keep the pipe flowing so the
				// child never stalls on an undrained buffer.
				_, _ = io.Copy(io.Discard, r)
			}
			return
		}
	}
}
