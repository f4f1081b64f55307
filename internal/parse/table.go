// Package parse turns raw command output into the in-memory forms sensors
// render from: a header+rows table, or a plain list of lines.
//
// Both parsers tolerate anything: empty input, malformed rows, and stray
// quotes degrade to empty values rather than errors.
package parse

import "strings"

// Table holds tabular command output: an ordered header row and one
// key→value map per data row.
type Table struct {
	// Headers in original column order. Duplicate header names are kept
	// here as-is; in row maps the later column silently overwrites the
	// earlier one's value.
	Headers []string

	// Rows map header names to trimmed cell values, positionally.
	// Rows shorter than the header get empty strings for the missing
	// trailing fields; extra fields beyond the header count are dropped.
	Rows []map[string]string
}

// ParseTable parses raw text into a Table using sep as the field separator.
// The first non-blank line is the header; every subsequent non-blank line
// is a data row. Empty input yields an empty table, never an error.
func ParseTable(raw string, sep rune) Table {
	var t Table

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := SplitQuoted(line, sep)

		if t.Headers == nil {
			t.Headers = fields
			continue
		}

		row := make(map[string]string, len(t.Headers))
		for i, name := range t.Headers {
			if i < len(fields) {
				row[name] = fields[i]
			} else {
				row[name] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// SplitQuoted splits line on sep with quote-awareness: a double-quote
// character toggles an inside-field region during which the separator is
// treated as literal text. Quote characters themselves are dropped and
// fields are trimmed after splitting.
//
// Escaped quotes inside quoted fields are not modeled; this is a simple
// toggle, not RFC 4180.
func SplitQuoted(line string, sep rune) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == sep && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))

	return fields
}

// Cell returns the value at the given row for the named column, or the
// empty string if the row index or column name is out of range.
func (t Table) Cell(row int, column string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][column]
}

// JoinRow serializes row values with sep in header order.
// Out-of-range rows yield the empty string.
func (t Table) JoinRow(row int, sep rune) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	values := make([]string, len(t.Headers))
	for i, name := range t.Headers {
		values[i] = t.Rows[row][name]
	}
	return strings.Join(values, string(sep))
}
