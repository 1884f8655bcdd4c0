package uris

import (
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// PathEscape escapes s so it can be used as a single URL path segment.
// Every byte outside the unreserved set and "@&=+$" is percent-encoded,
// "/" included. s must be valid UTF-8.
func PathEscape(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", newError(KindInvalidCharacter, s, "expected UTF-8")
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !shouldEscape(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String(), nil
}

func shouldEscape(c byte) bool {
	if unreserved(c) {
		return false
	}
	switch c {
	case '@', '&', '=', '+', '$':
		return false
	}
	return true
}

func unreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~':
		return true
	}
	return false
}
