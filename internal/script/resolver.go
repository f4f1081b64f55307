package script

import (
	"encoding/json"
	"strconv"
	"strings"
)

// resolveTable implements the tabular token grammar. Callers hold s.mu.
//
//	{success}    "true" or "false"
//	{exit_code}  last exit code, 0 after a success
//	{columns}    header count
//	{rows}       row count
//	{headers}    header names joined with the separator
//	{json}       all rows as a JSON array of objects
//	{N}          row N joined with the separator in header order
//	{N.column}   that cell, or empty when out of range
func (s *Script) resolveTable(token string) string {
	switch token {
	case "success":
		return strconv.FormatBool(s.ok)
	case "exit_code":
		return strconv.Itoa(s.exitCode)
	case "columns":
		return strconv.Itoa(len(s.table.Headers))
	case "rows":
		return strconv.Itoa(len(s.table.Rows))
	case "headers":
		return strings.Join(s.table.Headers, string(s.sep))
	case "json":
		return marshalOrEmpty(s.table.Rows)
	}

	row, column, ok := splitIndexToken(token)
	if !ok {
		return ""
	}
	if column == "" {
		return s.table.JoinRow(row, s.sep)
	}
	return s.table.Cell(row, column)
}

// resolveLines implements the line-oriented token grammar. Callers hold s.mu.
//
//	{success}    "true" or "false"
//	{exit_code}  last exit code, 0 after a success
//	{lines}      line count
//	{all}        every line joined with newlines
//	{json}       all lines as a JSON array
//	{N}          line N, or empty when out of range
func (s *Script) resolveLines(token string) string {
	switch token {
	case "success":
		return strconv.FormatBool(s.ok)
	case "exit_code":
		return strconv.Itoa(s.exitCode)
	case "lines":
		return strconv.Itoa(len(s.lines))
	case "all":
		return strings.Join(s.lines, "\n")
	case "json":
		return marshalOrEmpty(s.lines)
	}

	n, err := strconv.Atoi(token)
	if err != nil || n < 0 || n >= len(s.lines) {
		return ""
	}
	return s.lines[n]
}

// splitIndexToken parses "N" or "N.column" tokens. The column part may be
// any non-empty string; the row index must be a plain non-negative integer.
func splitIndexToken(token string) (row int, column string, ok bool) {
	idx := token
	if dot := strings.IndexByte(token, '.'); dot >= 0 {
		idx = token[:dot]
		column = token[dot+1:]
		if column == "" {
			return 0, "", false
		}
	}

	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return 0, "", false
	}
	return n, column, true
}

// marshalOrEmpty serializes v to JSON, degrading to an empty array literal
// for nil slices and an empty string if marshaling somehow fails.
func marshalOrEmpty(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	out := string(data)
	if out == "null" {
		return "[]"
	}
	return out
}
