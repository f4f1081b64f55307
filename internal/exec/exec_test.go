package exec

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuccess(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")

	res := Run(context.Background(), "echo hello", Options{})

	assert.True(t, res.Success())
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
	assert.False(t, res.TimedOut)
	assert.False(t, res.Truncated)
	assert.NoError(t, res.Err)
}

func TestRunExitCode(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")

	tests := []struct {
		name     string
		command  string
		wantCode int
	}{
		{
			name:     "exit 1",
			command:  "exit 1",
			wantCode: 1,
		},
		{
			name:     "exit 42",
			command:  "exit 42",
			wantCode: 42,
		},
		{
			name:     "false builtin",
			command:  "false",
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Run(context.Background(), tt.command, Options{})

			assert.False(t, res.Success())
			assert.Equal(t, tt.wantCode, res.ExitCode)
			assert.NoError(t, res.Err, "a command that ran and exited non-zero is not a spawn failure")
		})
	}
}

func TestRunCapturesStderr(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")

	res := Run(context.Background(), "echo out; echo err >&2", Options{})

	assert.True(t, res.Success())
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}

func TestRunTimeout(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")

	start := time.Now()
	res := Run(context.Background(), "sleep 10", Options{Timeout: 100 * time.Millisecond})
	elapsed := time.Since(start)

	assert.True(t, res.TimedOut)
	assert.False(t, res.Success())
	assert.Equal(t, ExitCodeUnknown, res.ExitCode)
	assert.Less(t, elapsed, 5*time.Second, "the command must be killed well before it finishes")
}

func TestRunOutputBound(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")

	// Produce far more output than the 1 KiB bound; the process must be
	// killed rather than run to completion.
	res := Run(context.Background(), "yes | head -c 1000000; sleep 10", Options{
		Timeout:   10 * time.Second,
		MaxOutput: 1024,
	})

	assert.True(t, res.Truncated)
	assert.False(t, res.Success())
	assert.Equal(t, ExitCodeUnknown, res.ExitCode)
	assert.LessOrEqual(t, len(res.Stdout)+len(res.Stderr), 1024)
}

func TestRunSpawnFailure(t *testing.T) {
	t.Setenv("SHELL", "/this/shell/does/not/exist")

	res := Run(context.Background(), "echo hi", Options{})

	require.Error(t, res.Err)
	assert.False(t, res.Success())
	assert.Equal(t, ExitCodeUnknown, res.ExitCode)
}

func TestRunShellFallback(t *testing.T) {
	t.Setenv("SHELL", "")

	res := Run(context.Background(), "echo fallback", Options{})

	assert.True(t, res.Success())
	assert.Equal(t, "fallback\n", res.Stdout)
}

func TestRunPipesWork(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")

	res := Run(context.Background(), "printf 'a\\nb\\nc\\n' | wc -l", Options{})

	require.True(t, res.Success())
	assert.Contains(t, res.Stdout, "3")
}

func TestRunCanceledContext(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Run(ctx, "echo never", Options{})

	assert.False(t, res.Success())
}

func TestResultSuccess(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want bool
	}{
		{"clean run", Result{ExitCode: 0}, true},
		{"non-zero exit", Result{ExitCode: 2}, false},
		{"timed out", Result{TimedOut: true, ExitCode: ExitCodeUnknown}, false},
		{"truncated", Result{Truncated: true, ExitCode: ExitCodeUnknown}, false},
		{"spawn error", Result{Err: context.Canceled, ExitCode: ExitCodeUnknown}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Success())
		})
	}
}
