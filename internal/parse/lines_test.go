package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLines(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		maxLines int
		want     []string
	}{
		{
			name:     "empty input",
			raw:      "",
			maxLines: 0,
			want:     nil,
		},
		{
			name:     "only whitespace",
			raw:      "   \n\t\n",
			maxLines: 0,
			want:     nil,
		},
		{
			name:     "all lines kept without limit",
			raw:      "one\ntwo\nthree\n",
			maxLines: 0,
			want:     []string{"one", "two", "three"},
		},
		{
			name:     "blank lines skipped",
			raw:      "one\n\ntwo\n\n\nthree",
			maxLines: 0,
			want:     []string{"one", "two", "three"},
		},
		{
			name:     "lines trimmed",
			raw:      "  one  \n\ttwo\t\n",
			maxLines: 0,
			want:     []string{"one", "two"},
		},
		{
			name:     "limit keeps last lines in order",
			raw:      "one\ntwo\nthree\nfour\n",
			maxLines: 2,
			want:     []string{"three", "four"},
		},
		{
			name:     "limit larger than line count",
			raw:      "one\ntwo\n",
			maxLines: 10,
			want:     []string{"one", "two"},
		},
		{
			name:     "limit of one keeps the final line",
			raw:      "one\ntwo\nthree\n",
			maxLines: 1,
			want:     []string{"three"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLines(tt.raw, tt.maxLines))
		})
	}
}
