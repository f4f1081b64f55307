package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTable(t *testing.T) {
	tbl := ParseTable("a;b;c\n1;2;3\n4;5;6\n", ';')

	assert.Equal(t, []string{"a", "b", "c"}, tbl.Headers)
	assert.Len(t, tbl.Rows, 2)
	assert.Equal(t, "2", tbl.Cell(0, "b"))
	assert.Equal(t, "6", tbl.Cell(1, "c"))
	assert.Equal(t, "1;2;3", tbl.JoinRow(0, ';'))
}

func TestParseTableEdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		sep         rune
		wantHeaders []string
		wantRows    []map[string]string
	}{
		{
			name:        "empty input",
			raw:         "",
			sep:         ';',
			wantHeaders: nil,
			wantRows:    nil,
		},
		{
			name:        "header only",
			raw:         "a;b\n",
			sep:         ';',
			wantHeaders: []string{"a", "b"},
			wantRows:    nil,
		},
		{
			name:        "blank lines skipped",
			raw:         "\n\na;b\n\n1;2\n\n",
			sep:         ';',
			wantHeaders: []string{"a", "b"},
			wantRows:    []map[string]string{{"a": "1", "b": "2"}},
		},
		{
			name:        "short row padded with empty strings",
			raw:         "a;b;c\n1;2\n",
			sep:         ';',
			wantHeaders: []string{"a", "b", "c"},
			wantRows:    []map[string]string{{"a": "1", "b": "2", "c": ""}},
		},
		{
			name:        "long row drops extra fields",
			raw:         "a;b\n1;2;3;4\n",
			sep:         ';',
			wantHeaders: []string{"a", "b"},
			wantRows:    []map[string]string{{"a": "1", "b": "2"}},
		},
		{
			name:        "whitespace around fields trimmed",
			raw:         "a ; b\n 1 ;2 \n",
			sep:         ';',
			wantHeaders: []string{"a", "b"},
			wantRows:    []map[string]string{{"a": "1", "b": "2"}},
		},
		{
			name:        "comma separator",
			raw:         "name,size\nsda,500G\n",
			sep:         ',',
			wantHeaders: []string{"name", "size"},
			wantRows:    []map[string]string{{"name": "sda", "size": "500G"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := ParseTable(tt.raw, tt.sep)
			assert.Equal(t, tt.wantHeaders, tbl.Headers)
			assert.Equal(t, tt.wantRows, tbl.Rows)
		})
	}
}

func TestParseTableDuplicateHeaders(t *testing.T) {
	tbl := ParseTable("a;b;a\n1;2;3\n", ';')

	// Headers keep duplicates in order; the later column wins in the row map.
	assert.Equal(t, []string{"a", "b", "a"}, tbl.Headers)
	assert.Equal(t, "3", tbl.Cell(0, "a"))
	assert.Equal(t, "2", tbl.Cell(0, "b"))
}

func TestSplitQuoted(t *testing.T) {
	tests := []struct {
		name string
		line string
		sep  rune
		want []string
	}{
		{
			name: "no quotes",
			line: "a,b,c",
			sep:  ',',
			want: []string{"a", "b", "c"},
		},
		{
			name: "quoted field with separator inside",
			line: `x,"a,b",y`,
			sep:  ',',
			want: []string{"x", "a,b", "y"},
		},
		{
			name: "quotes dropped from output",
			line: `"hello",world`,
			sep:  ',',
			want: []string{"hello", "world"},
		},
		{
			name: "unbalanced quote swallows rest of line",
			line: `a,"b,c`,
			sep:  ',',
			want: []string{"a", "b,c"},
		},
		{
			name: "empty fields preserved",
			line: "a,,b",
			sep:  ',',
			want: []string{"a", "", "b"},
		},
		{
			name: "single field",
			line: "only",
			sep:  ',',
			want: []string{"only"},
		},
		{
			name: "empty line yields one empty field",
			line: "",
			sep:  ',',
			want: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitQuoted(tt.line, tt.sep))
		})
	}
}

func TestCellOutOfRange(t *testing.T) {
	tbl := ParseTable("a;b\n1;2\n", ';')

	assert.Equal(t, "", tbl.Cell(-1, "a"))
	assert.Equal(t, "", tbl.Cell(5, "a"))
	assert.Equal(t, "", tbl.Cell(0, "missing"))
}

func TestJoinRowOutOfRange(t *testing.T) {
	tbl := ParseTable("a;b\n1;2\n", ';')

	assert.Equal(t, "", tbl.JoinRow(-1, ';'))
	assert.Equal(t, "", tbl.JoinRow(1, ';'))
}
