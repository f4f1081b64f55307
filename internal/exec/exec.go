// Package exec runs one external command with a hard wall-clock timeout and
// a bounded output buffer. Sensors treat everything here as a single fetch:
// either it succeeds with captured output, or it fails and the caller keeps
// whatever state it had before.
package exec

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"sync"
	"time"
)

const (
	// DefaultTimeout is the wall-clock limit for a single command.
	DefaultTimeout = 5 * time.Second

	// DefaultMaxOutput is the combined stdout+stderr capture limit.
	DefaultMaxOutput = 1 << 20 // 1 MiB
)

// ExitCodeUnknown is the sentinel exit code recorded when the command's own
// code is unavailable (spawn failure, timeout kill, output overflow).
const ExitCodeUnknown = -1

// Options configures a single command run. Zero values mean defaults.
type Options struct {
	// Timeout is the wall-clock limit; DefaultTimeout when zero.
	Timeout time.Duration

	// MaxOutput bounds the combined captured output in bytes;
	// DefaultMaxOutput when zero. Exceeding it kills the command.
	MaxOutput int64

	// Dir is the working directory, inherited when empty.
	Dir string
}

// Result describes one completed (or failed) command run.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	TimedOut  bool
	Truncated bool

	// Err is set only for spawn-level failures; a command that ran and
	// exited non-zero has Err == nil and a non-zero ExitCode.
	Err error
}

// Success reports whether the run completed cleanly: spawned, exited zero,
// within time and output bounds.
func (r Result) Success() bool {
	return r.Err == nil && !r.TimedOut && !r.Truncated && r.ExitCode == 0
}

// Run executes command through the user's shell ($SHELL, falling back to
// /bin/sh) so pipes and redirects work. The command is killed when the
// timeout fires or the output bound is exceeded; either is a failure with
// ExitCodeUnknown.
func Run(ctx context.Context, command string, opts Options) Result {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxOutput <= 0 {
		opts.MaxOutput = DefaultMaxOutput
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	runCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, shell, "-c", command)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	capture := newBoundedCapture(opts.MaxOutput, cancel)
	cmd.Stdout = capture.stdout()
	cmd.Stderr = capture.stderr()

	runErr := cmd.Run()

	result := Result{
		Stdout:    capture.stdoutString(),
		Stderr:    capture.stderrString(),
		Truncated: capture.truncated(),
	}

	// The deadline firing takes precedence over whatever exit state the
	// killed process reports.
	if runCtx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.ExitCode = ExitCodeUnknown
		return result
	}

	if result.Truncated {
		result.ExitCode = ExitCodeUnknown
		return result
	}

	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			// Command ran but returned non-zero.
			result.ExitCode = exitErr.ExitCode()
			return result
		}
		// Actual spawn failure.
		result.ExitCode = ExitCodeUnknown
		result.Err = runErr
		return result
	}

	return result
}

// boundedCapture collects stdout and stderr against a shared byte budget.
// When the budget runs out it cancels the command's context, which kills
// the process; partial output past the bound is discarded.
type boundedCapture struct {
	mu        sync.Mutex
	out       bytes.Buffer
	errOut    bytes.Buffer
	remaining int64
	overflow  bool
	cancel    context.CancelFunc
}

func newBoundedCapture(limit int64, cancel context.CancelFunc) *boundedCapture {
	return &boundedCapture{remaining: limit, cancel: cancel}
}

func (c *boundedCapture) write(buf *bytes.Buffer, p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := int64(len(p))
	if n > c.remaining {
		n = c.remaining
	}
	buf.Write(p[:n])
	c.remaining -= n

	if n < int64(len(p)) && !c.overflow {
		c.overflow = true
		c.cancel()
	}

	// Report the full length so the pipe copier doesn't error out before
	// the kill lands.
	return len(p), nil
}

type captureWriter struct {
	c   *boundedCapture
	buf *bytes.Buffer
}

func (w captureWriter) Write(p []byte) (int, error) { return w.c.write(w.buf, p) }

func (c *boundedCapture) stdout() captureWriter { return captureWriter{c, &c.out} }
func (c *boundedCapture) stderr() captureWriter { return captureWriter{c, &c.errOut} }

func (c *boundedCapture) stdoutString() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.String()
}

func (c *boundedCapture) stderrString() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errOut.String()
}

func (c *boundedCapture) truncated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overflow
}
