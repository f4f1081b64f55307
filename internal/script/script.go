// Package script implements the command sensor: it runs an ad-hoc external
// command on a rate gate, parses its stdout into a table or line list, and
// renders format tokens against the parsed state.
package script

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nathanbaker/peek/internal/errors"
	"github.com/nathanbaker/peek/internal/exec"
	"github.com/nathanbaker/peek/internal/logger"
	"github.com/nathanbaker/peek/internal/parse"
	"github.com/nathanbaker/peek/internal/render"
	"github.com/nathanbaker/peek/internal/sensor"
)

// Kind is the registry identifier for the command sensor.
const Kind = "script"

// Parser modes for command output.
const (
	ModeTable = "table"
	ModeLines = "lines"
)

func init() {
	sensor.Register(Kind, func() sensor.Sensor { return New(logger.NewEnvLogger("[script]")) })
}

// Script samples one external command. Construct with New, then Init with
// the instance configuration before sampling.
type Script struct {
	log logger.Logger

	// Set once by Init.
	id        string
	command   string
	mode      string
	sep       rune
	maxLines  int
	timeout   time.Duration
	maxOutput int64

	gate sensor.Gate

	// Cached parsed state, replaced only on a successful fetch.
	mu       sync.Mutex
	table    parse.Table
	lines    []string
	ok       bool
	exitCode int
	faulted  bool
}

// New returns an uninitialized command sensor.
func New(log logger.Logger) *Script {
	if log == nil {
		log = logger.Noop()
	}
	return &Script{log: log, sep: ';', mode: ModeTable, timeout: exec.DefaultTimeout}
}

// Init validates cfg and returns the instance identity.
func (s *Script) Init(cfg sensor.Config) (string, error) {
	command := strings.TrimSpace(cfg.Get("command", ""))
	if command == "" {
		return "", errors.New(errors.ErrConfig,
			"Script sensor needs a command",
			"Set 'command' to the shell command whose output should be sampled")
	}
	s.command = command

	mode := cfg.Get("parser", ModeTable)
	if mode != ModeTable && mode != ModeLines {
		return "", errors.New(errors.ErrConfig,
			"Unknown parser mode: "+mode,
			"Use 'table' for header-delimited output or 'lines' for plain lines")
	}
	s.mode = mode

	sep := cfg.Get("separator", ";")
	runes := []rune(sep)
	if len(runes) != 1 {
		return "", errors.New(errors.ErrConfig,
			"Separator must be a single character, got: "+sep,
			"Common choices are ';', ',' or '|'")
	}
	s.sep = runes[0]

	if v := cfg.Get("max_lines", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return "", errors.New(errors.ErrConfig,
				"Invalid max_lines: "+v,
				"Use a non-negative integer (0 keeps all lines)")
		}
		s.maxLines = n
	}

	if v := cfg.Get("timeout", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return "", errors.New(errors.ErrConfig,
				"Invalid timeout: "+v,
				"Use a positive duration like 5s or 500ms")
		}
		s.timeout = d
	}

	if v := cfg.Get("max_output", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return "", errors.New(errors.ErrConfig,
				"Invalid max_output: "+v,
				"Use a positive byte count, e.g. 1048576 for 1 MiB")
		}
		s.maxOutput = n
	}

	s.id = cfg.Get("name", command)
	return s.id, nil
}

// Sample fetches fresh output when the rate gate allows it, then renders
// format against the cached state. It never fails; a failing command keeps
// the previous state and flips the {success}/{exit_code} tokens.
func (s *Script) Sample(ctx context.Context, rate time.Duration, format string) sensor.Result {
	if s.gate.Begin(rate) {
		res := exec.Run(ctx, s.command, exec.Options{
			Timeout:   s.timeout,
			MaxOutput: s.maxOutput,
		})
		s.update(res)
		s.gate.End()
	}

	return s.renderResult(format)
}

// Stop releases the instance. The command sensor holds no resources beyond
// its cache, so this only exists to satisfy the contract.
func (s *Script) Stop(ctx context.Context) error {
	return nil
}

// Settings returns the configuration metadata for the command sensor.
func (s *Script) Settings() sensor.Settings {
	return sensor.Settings{
		Name:           Kind,
		Description:    "Samples the output of an external command",
		Icon:           "terminal",
		Multiple:       true,
		IdentityFields: []string{"name", "command"},
		Fields: []sensor.Field{
			{Name: "command", Type: "string", Description: "Shell command to run", Required: true},
			{Name: "parser", Type: "string", Description: "Output mode: table or lines", Default: ModeTable},
			{Name: "separator", Type: "string", Description: "Single-character field separator", Default: ";"},
			{Name: "max_lines", Type: "number", Description: "Keep only the last N lines (lines mode)", Default: "0"},
			{Name: "timeout", Type: "duration", Description: "Command timeout", Default: "5s"},
			{Name: "max_output", Type: "number", Description: "Output capture limit in bytes", Default: "1048576"},
		},
	}
}

// update folds one fetch result into the cached state. Parsed state is
// replaced only on success; a failure keeps the previous data and flips
// the fault indicators. The first failure after a success is logged,
// consecutive failures stay quiet until a success resets the streak.
func (s *Script) update(res exec.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.Success() {
		if s.mode == ModeTable {
			s.table = parse.ParseTable(res.Stdout, s.sep)
		} else {
			s.lines = parse.ParseLines(res.Stdout, s.maxLines)
		}
		s.ok = true
		s.exitCode = 0
		s.faulted = false
		return
	}

	s.ok = false
	s.exitCode = res.ExitCode

	if !s.faulted {
		s.faulted = true
		switch {
		case res.TimedOut:
			s.log.Error("sensor %s: command timed out after %s", s.id, s.timeout)
		case res.Truncated:
			s.log.Error("sensor %s: command output exceeded capture limit", s.id)
		case res.Err != nil:
			s.log.Error("sensor %s: command failed to start: %v", s.id, res.Err)
		default:
			s.log.Error("sensor %s: command exited %d: %s",
				s.id, res.ExitCode, strings.TrimSpace(res.Stderr))
		}
	}
}

// renderResult expands format against the cached state under the lock.
func (s *Script) renderResult(format string) sensor.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resolve render.Resolver
	var max int
	if s.mode == ModeTable {
		resolve = s.resolveTable
		max = len(s.table.Headers)
	} else {
		resolve = s.resolveLines
		max = len(s.lines)
	}

	return sensor.Result{
		Value: render.Expand(format, resolve),
		Min:   0,
		Max:   float64(max),
	}
}
