package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTexts(toks []Token) []string {
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		if t.isEOF() {
			continue
		}

		out = append(out, t.Text)
	}

	return out
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"empty", "", []string{}},
		{"context", "Create: requires(a, b)", []string{"Create", ":", "requires", "(", "a", ",", "b", ")"}},
		{"line comment", "a // hidden\n, b", []string{"a", ",", "b"}},
		{"block comment", "a /* x\ny */ b", []string{"a", "b"}},
		{"string", `prefix = "Req\"x"`, []string{"prefix", "=", `"Req\"x"`}},
		{"raw string", "x = `a\"b`", []string{"x", "=", "`a\"b`"}},
		{"type", "id as map[string]int", []string{"id", "as", "map", "[", "string", "]", "int"}},
		{"number", "v2 12", []string{"v2", "12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			toks, err := Tokenize(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tokenTexts(toks))
			assert.True(t, toks[len(toks)-1].isEOF())
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	t.Parallel()

	toks, err := Tokenize("a,\n  bb")
	require.NoError(t, err)
	require.Len(t, toks, 4)

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 5}, toks[2].Pos)
	assert.Equal(t, 7, toks[2].End)
	assert.Equal(t, Position{Line: 2, Column: 5, Offset: 7}, toks[2].endPos())
	assert.Equal(t, Position{Line: 2, Column: 5, Offset: 7}, toks[3].Pos)
}

func TestTokenEndPosCountsRunes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "non-ascii string", src: `"héllo…" x`},
		{name: "raw string across lines", src: "`a\nñb` x"},
		{name: "ascii ident", src: "abc x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			toks, err := Tokenize(tt.src)
			require.NoError(t, err)
			require.Len(t, toks, 3)

			// one space separates the token from the next one
			end := toks[0].endPos()
			next := toks[1].Pos
			assert.Equal(t, next.Line, end.Line)
			assert.Equal(t, next.Column-1, end.Column)
			assert.Equal(t, next.Offset-1, end.Offset)
		})
	}
}

func TestContextEndAfterNonASCIIString(t *testing.T) {
	t.Parallel()

	rs, err := Parse(`prefix = "Ü", Create: requires(a)`)
	require.NoError(t, err)
	assert.Equal(t, Position{Line: 1, Column: 34, Offset: 35}, rs.Contexts[0].End)
}
