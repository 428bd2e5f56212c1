package match

import (
	"strings"
	"unicode"
)

// Normalize folds an identifier for fuzzy comparison: CamelCase words and
// separator-delimited words are joined and lower-cased.
//
//	"createdAt"  -> "createdat"
//	"created_at" -> "createdat"
//	"HTTPServer" -> "httpserver"
func Normalize(s string) string {
	return strings.Join(Words(s), "")
}

// Words splits an identifier into lower-case words at separators and case
// transitions.
//
//	"orderID"     -> ["order", "id"]
//	"XMLParser"   -> ["xml", "parser"]
//	"created_at"  -> ["created", "at"]
func Words(s string) []string {
	var (
		words []string
		cur   strings.Builder
	)

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		cur.WriteRune(r)
	}

	flush()

	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsWord reports whether a new word begins at runes[i]: a lower to
// upper transition, or the last capital of an acronym followed by lower case.
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return !isSeparator(prev)
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
