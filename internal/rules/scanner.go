package rules

import (
	"strings"
	"unicode/utf8"
)

// punctuation holds every single-character token the rule language and the
// type expressions embedded in it may use.
const punctuation = "()[]{}<>,.:=*&;?!|-+/#@~^%"

// scanner splits a rule source into tokens.
type scanner struct {
	src    string
	off    int
	line   int
	column int
}

func newScanner(src string) *scanner {
	return &scanner{src: src, line: 1, column: 1}
}

func (s *scanner) pos() Position {
	return Position{Line: s.line, Column: s.column, Offset: s.off}
}

func (s *scanner) peekByte(n int) byte {
	if s.off+n >= len(s.src) {
		return 0
	}

	return s.src[s.off+n]
}

// advance consumes one rune, keeping line and column in sync.
func (s *scanner) advance() rune {
	r, width := utf8.DecodeRuneInString(s.src[s.off:])
	s.off += width

	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}

	return r
}

func isLetter(r byte) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isDigit(r byte) bool {
	return r >= '0' && r <= '9'
}

// skipTrivia skips whitespace and comments.
func (s *scanner) skipTrivia() error {
	for s.off < len(s.src) {
		switch c := s.src[s.off]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			s.advance()
		case c == '/' && s.peekByte(1) == '/':
			for s.off < len(s.src) && s.src[s.off] != '\n' {
				s.advance()
			}
		case c == '/' && s.peekByte(1) == '*':
			start := s.pos()
			s.advance()
			s.advance()

			for {
				if s.off >= len(s.src) {
					return errorf(start, "comment not terminated")
				}

				if s.src[s.off] == '*' && s.peekByte(1) == '/' {
					s.advance()
					s.advance()

					break
				}

				s.advance()
			}
		default:
			return nil
		}
	}

	return nil
}

func (s *scanner) scanString(start Position) error {
	quote := s.src[s.off]
	s.advance()

	for {
		if s.off >= len(s.src) {
			return errorf(start, "string not terminated")
		}

		c := s.src[s.off]

		switch {
		case c == quote:
			s.advance()
			return nil
		case c == '\n' && quote == '"':
			return errorf(start, "string not terminated")
		case c == '\\' && quote == '"':
			s.advance()

			if s.off >= len(s.src) {
				return errorf(start, "string not terminated")
			}
		}

		s.advance()
	}
}

func (s *scanner) next() (Token, error) {
	if err := s.skipTrivia(); err != nil {
		return Token{}, err
	}

	start := s.pos()
	if s.off >= len(s.src) {
		return Token{Type: TokenEOF, Pos: start, End: s.off}, nil
	}

	var tt TokenType

	switch c := s.src[s.off]; {
	case isLetter(c):
		for s.off < len(s.src) && (isLetter(s.src[s.off]) || isDigit(s.src[s.off])) {
			s.advance()
		}

		tt = TokenIdent
	case isDigit(c):
		for s.off < len(s.src) && isDigit(s.src[s.off]) {
			s.advance()
		}

		tt = TokenNumber
	case c == '"' || c == '`':
		if err := s.scanString(start); err != nil {
			return Token{}, err
		}

		tt = TokenString
	case strings.IndexByte(punctuation, c) >= 0:
		s.advance()

		tt = TokenPunct
	default:
		r, _ := utf8.DecodeRuneInString(s.src[s.off:])
		return Token{}, errorf(start, "unexpected character %q", r)
	}

	return Token{Type: tt, Pos: start, End: s.off, Text: s.src[start.Offset:s.off]}, nil
}

// Tokenize splits src into tokens, ending with a TokenEOF.
func Tokenize(src string) ([]Token, error) {
	s := newScanner(src)

	var res []Token

	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}

		res = append(res, tok)
		if tok.isEOF() {
			return res, nil
		}
	}
}
