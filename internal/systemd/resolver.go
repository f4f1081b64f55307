package systemd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Per-unit field offsets inside the addressed block (see resolve).
const (
	fieldName = iota
	fieldState
	fieldElapsed
	fieldLabel
	fieldSymbol
	fieldsPerUnit
)

// unitBlockBase is where the per-unit field block starts; indices below it
// are reserved for aggregate tokens.
const unitBlockBase = 10

// resolve implements the aggregate token grammar. Callers hold s.mu.
//
//	{success}   "true" or "false"
//	{exit_code} last exit code of a failed query, 0 after a success
//	{0}         full state as a JSON array
//	{1}         unit count
//	{2}         active count
//	{3}         failed count
//	{4}         inactive count
//	{5}         "name:label" list, comma-joined
//	{6}         "name:elapsed" list, comma-joined
//	{7}         "symbol name" list, comma-joined
//	{8}         summary "R/T running", with ", F failed" appended when F>0
//	{9}         reserved
//	{10+5i+f}   field f of unit i: name, state, elapsed, label, symbol
func (s *Service) resolve(token string) string {
	switch token {
	case "success":
		return strconv.FormatBool(s.ok)
	case "exit_code":
		return strconv.Itoa(s.exitCode)
	}

	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return ""
	}

	if n >= unitBlockBase {
		return s.unitField(n - unitBlockBase)
	}

	switch n {
	case 0:
		data, err := json.Marshal(s.statuses)
		if err != nil {
			return ""
		}
		if string(data) == "null" {
			return "[]"
		}
		return string(data)
	case 1:
		return strconv.Itoa(len(s.statuses))
	case 2:
		return strconv.Itoa(s.countState(StateActive))
	case 3:
		return strconv.Itoa(s.countState(StateFailed))
	case 4:
		return strconv.Itoa(s.countState(StateInactive))
	case 5:
		return s.joinStatuses(func(u UnitStatus) string { return u.Name + ":" + u.Label })
	case 6:
		return s.joinStatuses(func(u UnitStatus) string { return u.Name + ":" + u.Elapsed })
	case 7:
		return s.joinStatuses(func(u UnitStatus) string { return u.Symbol + " " + u.Name })
	case 8:
		return s.summary()
	default:
		return ""
	}
}

// unitField resolves one field of the per-unit block by flat offset.
func (s *Service) unitField(offset int) string {
	idx := offset / fieldsPerUnit
	if idx >= len(s.statuses) {
		return ""
	}

	u := s.statuses[idx]
	switch offset % fieldsPerUnit {
	case fieldName:
		return u.Name
	case fieldState:
		return u.State
	case fieldElapsed:
		return u.Elapsed
	case fieldLabel:
		return u.Label
	case fieldSymbol:
		return u.Symbol
	}
	return ""
}

// countState counts cached units currently in the given state.
func (s *Service) countState(state string) int {
	n := 0
	for _, u := range s.statuses {
		if u.State == state {
			n++
		}
	}
	return n
}

// joinStatuses renders each cached unit through f and comma-joins the results.
func (s *Service) joinStatuses(f func(UnitStatus) string) string {
	parts := make([]string, len(s.statuses))
	for i, u := range s.statuses {
		parts[i] = f(u)
	}
	return strings.Join(parts, ", ")
}

// summary renders the one-line aggregate like "3/5 running, 1 failed".
// The failed clause only appears when something actually failed.
func (s *Service) summary() string {
	running := s.countState(StateActive)
	failed := s.countState(StateFailed)

	out := fmt.Sprintf("%d/%d running", running, len(s.statuses))
	if failed > 0 {
		out += fmt.Sprintf(", %d failed", failed)
	}
	return out
}
