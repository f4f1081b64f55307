package parse

import "strings"

// ParseLines parses raw text into trimmed non-blank lines.
// If maxLines is positive, only the last maxLines lines are kept, in their
// original order. Empty input yields an empty list, never an error.
func ParseLines(raw string, maxLines int) []string {
	var lines []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	return lines
}
