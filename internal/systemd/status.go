// Package systemd implements the service sensor: it queries the status of
// a set of systemd units concurrently, normalizes each into a status
// record, and renders aggregate format tokens over the set.
package systemd

import (
	"strings"
	"time"

	"github.com/nathanbaker/peek/internal/ui"
)

// Unit states, normalized from systemd's ActiveState property.
const (
	StateActive       = "active"
	StateFailed       = "failed"
	StateInactive     = "inactive"
	StateActivating   = "activating"
	StateDeactivating = "deactivating"
	StateReloading    = "reloading"
	StateUnknown      = "unknown"
)

// UnitStatus is the normalized status record for one unit.
type UnitStatus struct {
	// Unit is the full unit identifier as configured.
	Unit string `json:"unit"`

	// Name is the display name: Unit with the configured prefix removed,
	// then one leading separator character stripped.
	Name string `json:"name"`

	Description string `json:"description"`
	State       string `json:"state"`
	Label       string `json:"label"`
	Symbol      string `json:"symbol"`

	// Since is the state-change timestamp in epoch milliseconds, 0 when
	// unknown.
	Since int64 `json:"since"`

	// Elapsed is the human display of time spent in the current state.
	Elapsed string `json:"elapsed"`
}

// Properties queried per unit via systemctl show.
var showProperties = []string{
	"Id",
	"Description",
	"ActiveState",
	"ActiveEnterTimestamp",
	"InactiveEnterTimestamp",
	"StateChangeTimestamp",
}

// stateLabels maps a normalized state to its display label.
var stateLabels = map[string]string{
	StateActive:       "running",
	StateFailed:       "failed",
	StateInactive:     "stopped",
	StateActivating:   "starting",
	StateDeactivating: "stopping",
	StateReloading:    "reloading",
	StateUnknown:      "unknown",
}

// stateSymbols maps a normalized state to its display symbol.
var stateSymbols = map[string]string{
	StateActive:       ui.SymbolActive,
	StateFailed:       ui.SymbolFail,
	StateInactive:     ui.SymbolPending,
	StateActivating:   ui.SymbolProgress,
	StateDeactivating: ui.SymbolStopping,
	StateReloading:    ui.SymbolReload,
	StateUnknown:      ui.SymbolUnknown,
}

// parseProperties splits systemctl show output into a key→value map.
// Each line splits at its first '=' so values may contain '=' themselves;
// lines without one are skipped.
func parseProperties(raw string) map[string]string {
	props := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		props[key] = value
	}
	return props
}

// normalizeState maps a raw ActiveState value onto the fixed state enum.
func normalizeState(raw string) string {
	switch raw {
	case StateActive, StateFailed, StateInactive,
		StateActivating, StateDeactivating, StateReloading:
		return raw
	default:
		return StateUnknown
	}
}

// normalize builds a UnitStatus from one unit's raw properties.
// The relevant timestamp depends on the state: active units count from
// when they entered active, failed and inactive units from when they went
// inactive (failed falls back to the generic state change), everything
// else from the last state change.
func normalize(unit string, props map[string]string, stripPrefix string, now time.Time) UnitStatus {
	state := normalizeState(props["ActiveState"])

	var since int64
	switch state {
	case StateActive:
		since = parseTimestamp(props["ActiveEnterTimestamp"])
	case StateFailed:
		since = parseTimestamp(props["InactiveEnterTimestamp"])
		if since == 0 {
			since = parseTimestamp(props["StateChangeTimestamp"])
		}
	case StateInactive:
		since = parseTimestamp(props["InactiveEnterTimestamp"])
	default:
		since = parseTimestamp(props["StateChangeTimestamp"])
	}

	return UnitStatus{
		Unit:        unit,
		Name:        displayName(unit, stripPrefix),
		Description: props["Description"],
		State:       state,
		Label:       stateLabels[state],
		Symbol:      stateSymbols[state],
		Since:       since,
		Elapsed:     FormatElapsed(since, now),
	}
}

// displayName strips the configured prefix from the unit identifier if
// present, then one leading separator character if one remains.
func displayName(unit, prefix string) string {
	name := unit
	if prefix != "" && strings.HasPrefix(name, prefix) {
		name = name[len(prefix):]
	}
	if len(name) > 0 {
		switch name[0] {
		case '-', '_', '.', '@':
			name = name[1:]
		}
	}
	return name
}

// timestampLayouts for systemctl timestamps like
// "Mon 2024-05-06 13:37:02 UTC".
const (
	timestampLayout     = "2006-01-02 15:04:05 MST"
	timestampLayoutFull = "Mon 2006-01-02 15:04:05 MST"
)

// parseTimestamp converts a systemd timestamp string to epoch milliseconds.
// Strategy: if the string splits into three or more whitespace tokens, drop
// the first (the weekday) and parse the remaining date+time; on failure,
// parse the whole original string; on failure, yield 0 meaning unknown.
// It never fails.
func parseTimestamp(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "n/a" {
		return 0
	}

	tokens := strings.Fields(raw)
	if len(tokens) >= 3 {
		if t, err := time.Parse(timestampLayout, strings.Join(tokens[1:], " ")); err == nil {
			return t.UnixMilli()
		}
	}

	if t, err := time.Parse(timestampLayoutFull, raw); err == nil {
		return t.UnixMilli()
	}
	if t, err := time.Parse(timestampLayout, raw); err == nil {
		return t.UnixMilli()
	}

	return 0
}
