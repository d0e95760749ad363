package token

import (
	"strings"
	"unicode"
)

// NeedsQuote reports whether a string key must be quoted to read back as the
// same string.
func NeedsQuote(v string) bool {
	if v == "" {
		return true
	}
	if Classify([]byte(v)) != TLiteral {
		return true
	}
	for i, r := range v {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return true
		}
		switch r {
		case '"', '\'', '`', '.', ',', ':', '{', '}', '[', ']':
			return true
		case '/':
			if i+1 < len(v) && (v[i+1] == '/' || v[i+1] == '*') {
				return true
			}
		}
	}
	return false
}

// Quote returns v as a double-quoted string token.
func Quote(v string) string {
	return string(quote(v, '"'))
}

// QuoteChar returns r as a single-quoted character token.
func QuoteChar(r rune) string {
	return string(quote(string(r), '\''))
}

// QuoteComplex returns text as a backtick-delimited complex span.
func QuoteComplex(text string) string {
	return string(quote(text, '`'))
}

func quote(v string, q byte) []byte {
	d := make([]byte, 1, len(v)+2)
	d[0] = q
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == q || c == '\\' {
			d = append(d, '\\')
		}
		d = append(d, c)
	}
	return append(d, q)
}

// unescape decodes the body of a span delimited by q. Only the delimiter and
// the backslash itself are escapes; any other backslash is kept.
func unescape(b []byte, q byte) string {
	if !strings.ContainsRune(string(b), '\\') {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == '\\' && i+1 < len(b) && (b[i+1] == q || b[i+1] == '\\') {
			sb.WriteByte(b[i+1])
			i++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
