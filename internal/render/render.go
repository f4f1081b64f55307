// Package render implements placeholder expansion for sensor format strings.
//
// A format string mixes literal text with tokens delimited by '{' and '}'.
// Token bodies are restricted to ASCII letters, digits, underscores, and
// dots ("{0.cpu}", "{exit_code}"). Each token is resolved independently
// against the sensor's current state; there is no nested or recursive
// expansion. Anything that does not scan as a token is emitted verbatim.
package render

import "strings"

// Resolver maps a token body to its replacement text.
// Unknown tokens must resolve to the empty string, never an error: a
// failing sensor still renders, just with gaps.
type Resolver func(token string) string

// Expand replaces every {token} in format using resolve.
// Malformed tokens (empty body, missing brace, invalid body characters)
// are left untouched as literal text.
func Expand(format string, resolve Resolver) string {
	var b strings.Builder
	b.Grow(len(format))

	for i := 0; i < len(format); {
		c := format[i]
		if c != '{' {
			b.WriteByte(c)
			i++
			continue
		}

		// Scan a candidate token body after the opening brace.
		j := i + 1
		for j < len(format) && isTokenChar(format[j]) {
			j++
		}

		if j > i+1 && j < len(format) && format[j] == '}' {
			b.WriteString(resolve(format[i+1 : j]))
			i = j + 1
			continue
		}

		// Not a token: emit the brace literally and keep scanning.
		b.WriteByte(c)
		i++
	}

	return b.String()
}

// isTokenChar reports whether c may appear in a token body.
func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '.' || c == '_':
		return true
	}
	return false
}
