package systemd

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nathanbaker/peek/internal/errors"
	"github.com/nathanbaker/peek/internal/exec"
	"github.com/nathanbaker/peek/internal/logger"
	"github.com/nathanbaker/peek/internal/render"
	"github.com/nathanbaker/peek/internal/sensor"
)

// Kind is the registry identifier for the service sensor.
const Kind = "service"

func init() {
	sensor.Register(Kind, func() sensor.Sensor { return New(logger.NewEnvLogger("[service]")) })
}

// Service samples the status of a set of systemd units. Construct with
// New, then Init with the instance configuration before sampling.
type Service struct {
	log logger.Logger

	// Set once by Init.
	id          string
	units       []string
	stripPrefix string
	timeout     time.Duration

	gate sensor.Gate

	// Cached normalized state, replaced only when every unit query in a
	// fetch cycle succeeds.
	mu       sync.Mutex
	statuses []UnitStatus
	ok       bool
	exitCode int
	faulted  bool
}

// New returns an uninitialized service sensor.
func New(log logger.Logger) *Service {
	if log == nil {
		log = logger.Noop()
	}
	return &Service{log: log, timeout: exec.DefaultTimeout}
}

// Init validates cfg and returns the instance identity.
func (s *Service) Init(cfg sensor.Config) (string, error) {
	raw := cfg.Get("units", "")
	for _, unit := range strings.Split(raw, ",") {
		unit = strings.TrimSpace(unit)
		if unit != "" {
			s.units = append(s.units, unit)
		}
	}
	if len(s.units) == 0 {
		return "", errors.New(errors.ErrConfig,
			"Service sensor needs at least one unit",
			"Set 'units' to a comma-separated list like 'nginx.service, postgresql.service'")
	}

	s.stripPrefix = cfg.Get("strip_prefix", "")

	if v := cfg.Get("timeout", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return "", errors.New(errors.ErrConfig,
				"Invalid timeout: "+v,
				"Use a positive duration like 5s or 500ms")
		}
		s.timeout = d
	}

	s.id = cfg.Get("name", strings.Join(s.units, ","))
	return s.id, nil
}

// Sample refreshes unit statuses when the rate gate allows it, then
// renders format against the cached aggregate state. It never fails.
func (s *Service) Sample(ctx context.Context, rate time.Duration, format string) sensor.Result {
	if s.gate.Begin(rate) {
		s.fetch(ctx)
		s.gate.End()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return sensor.Result{
		Value: render.Expand(format, s.resolve),
		Min:   0,
		Max:   float64(len(s.units)),
	}
}

// Stop releases the instance.
func (s *Service) Stop(ctx context.Context) error {
	return nil
}

// Settings returns the configuration metadata for the service sensor.
func (s *Service) Settings() sensor.Settings {
	return sensor.Settings{
		Name:           Kind,
		Description:    "Aggregates the status of systemd units",
		Icon:           "activity",
		Multiple:       true,
		IdentityFields: []string{"name", "units"},
		Fields: []sensor.Field{
			{Name: "units", Type: "string", Description: "Comma-separated unit names", Required: true},
			{Name: "strip_prefix", Type: "string", Description: "Prefix removed from display names"},
			{Name: "timeout", Type: "duration", Description: "Per-query timeout", Default: "5s"},
		},
	}
}

// fetch issues one status query per unit concurrently and joins all
// results before touching the cache. The cache is replaced only when every
// query succeeds; any failure retains prior state and flips the fault
// indicators, logging only the first failure in a streak.
func (s *Service) fetch(ctx context.Context) {
	results := make([]exec.Result, len(s.units))

	var wg sync.WaitGroup
	for i, unit := range s.units {
		wg.Add(1)
		go func(i int, unit string) {
			defer wg.Done()
			results[i] = exec.Run(ctx, showCommand(unit), exec.Options{Timeout: s.timeout})
		}(i, unit)
	}
	wg.Wait()

	now := time.Now()
	statuses := make([]UnitStatus, len(s.units))
	for i, res := range results {
		if !res.Success() {
			s.fail(s.units[i], res)
			return
		}
		statuses[i] = normalize(s.units[i], parseProperties(res.Stdout), s.stripPrefix, now)
	}

	s.mu.Lock()
	s.statuses = statuses
	s.ok = true
	s.exitCode = 0
	s.faulted = false
	s.mu.Unlock()
}

// fail records a fetch failure without disturbing the cached statuses.
func (s *Service) fail(unit string, res exec.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ok = false
	s.exitCode = res.ExitCode

	if !s.faulted {
		s.faulted = true
		switch {
		case res.TimedOut:
			s.log.Error("sensor %s: status query for %s timed out after %s", s.id, unit, s.timeout)
		case res.Err != nil:
			s.log.Error("sensor %s: status query for %s failed to start: %v", s.id, unit, res.Err)
		default:
			s.log.Error("sensor %s: status query for %s exited %d: %s",
				s.id, unit, res.ExitCode, strings.TrimSpace(res.Stderr))
		}
	}
}

// showCommand builds the systemctl invocation for one unit.
func showCommand(unit string) string {
	return fmt.Sprintf("systemctl show %s --property=%s",
		shellQuote(unit), strings.Join(showProperties, ","))
}

// shellQuote quotes a string for safe shell use.
// Uses single quotes with proper escaping to prevent command injection.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}
