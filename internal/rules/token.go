package rules

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"context-variants/internal/diagnostic"
)

// Position represents a position in the rule source.
type Position = diagnostic.Position

// TokenType represents the type of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenString
	TokenNumber
	TokenPunct
)

// Token represents a lexical token.
type Token struct {
	Type TokenType
	Pos  Position
	// End is the byte offset just past the token.
	End  int
	Text string
}

func (t Token) isEOF() bool {
	return t.Type == TokenEOF
}

func (t Token) is(text string) bool {
	return t.Type == TokenPunct && t.Text == text
}

func (t Token) isIdent(text string) bool {
	return t.Type == TokenIdent && t.Text == text
}

// endPos is the position just past the token. Columns count runes, and a
// raw string may span lines.
func (t Token) endPos() Position {
	end := Position{Line: t.Pos.Line, Column: t.Pos.Column, Offset: t.End}

	text := t.Text
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		end.Line += strings.Count(text, "\n")
		end.Column = 1
		text = text[i+1:]
	}

	end.Column += utf8.RuneCountInString(text)

	return end
}

// stringValue returns the unquoted string value.
func (t Token) stringValue() (string, error) {
	return strconv.Unquote(t.Text)
}

// describe renders the token for error messages.
func (t Token) describe() string {
	if t.isEOF() {
		return "end of input"
	}

	return strconv.Quote(t.Text)
}
