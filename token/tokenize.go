package token

import (
	"unicode/utf8"

	"github.com/signadot/korm-format/go-korm/debug"
)

type tokenizer struct {
	d   []byte
	pd  *PosDoc
	i   int
	dst []Token
}

// Tokenize lexes src into tokens, dropping whitespace and comments.
func Tokenize(src []byte) ([]Token, error) {
	tz := &tokenizer{d: src, pd: NewPosDoc(src)}
	for {
		if err := tz.skip(); err != nil {
			return nil, err
		}
		if tz.i >= len(tz.d) {
			break
		}
		if err := tz.one(); err != nil {
			return nil, err
		}
	}
	if debug.Lex() {
		LogTokens(tz.dst, "lexed")
	}
	return tz.dst, nil
}

// skip advances past whitespace and comments.
func (tz *tokenizer) skip() error {
	d, n := tz.d, len(tz.d)
	for tz.i < n {
		c := d[tz.i]
		switch {
		case isSpace(c):
			tz.i++
		case c == '/' && tz.i+1 < n && d[tz.i+1] == '/':
			for tz.i < n && d[tz.i] != '\n' {
				tz.i++
			}
		case c == '/' && tz.i+1 < n && d[tz.i+1] == '*':
			start := tz.i
			tz.i += 2
			for {
				if tz.i+1 >= n {
					return UnterminatedErr("comment", tz.pd.Pos(start))
				}
				if d[tz.i] == '*' && d[tz.i+1] == '/' {
					tz.i += 2
					break
				}
				tz.i++
			}
		default:
			return nil
		}
	}
	return nil
}

func (tz *tokenizer) one() error {
	c := tz.d[tz.i]
	switch c {
	case '{':
		tz.single(TLCurl)
	case '}':
		tz.single(TRCurl)
	case '[':
		tz.single(TLSquare)
	case ']':
		tz.single(TRSquare)
	case ':':
		tz.single(TColon)
	case ',':
		tz.single(TComma)
	case '"':
		return tz.quoted(TString, '"', "string")
	case '\'':
		if err := tz.quoted(TChar, '\'', "character"); err != nil {
			return err
		}
		last := &tz.dst[len(tz.dst)-1]
		if utf8.RuneCountInString(last.String()) != 1 {
			return NewLexError(ErrBadChar, last.Pos)
		}
	case '`':
		return tz.quoted(TComplex, '`', "complex span")
	default:
		if isControl(c) {
			return IllegalErr(rune(c), tz.pd.Pos(tz.i))
		}
		tz.word()
	}
	return nil
}

func (tz *tokenizer) single(tt TokenType) {
	tz.dst = append(tz.dst, Token{
		Type:  tt,
		Pos:   tz.pd.Pos(tz.i),
		Bytes: tz.d[tz.i : tz.i+1],
	})
	tz.i++
}

// quoted scans a span delimited by q in which a backslash escapes the
// following byte.
func (tz *tokenizer) quoted(tt TokenType, q byte, what string) error {
	d, n := tz.d, len(tz.d)
	start := tz.i
	j := start + 1
	for {
		if j >= n {
			return UnterminatedErr(what, tz.pd.Pos(start))
		}
		if d[j] == '\\' {
			j += 2
			continue
		}
		if d[j] == q {
			break
		}
		j++
	}
	tz.dst = append(tz.dst, Token{
		Type:  tt,
		Pos:   tz.pd.Pos(start),
		Bytes: d[start : j+1],
	})
	tz.i = j + 1
	return nil
}

func (tz *tokenizer) word() {
	d, n := tz.d, len(tz.d)
	start := tz.i
	j := start
	for j < n && !isWordEnd(d, j) {
		j++
	}
	w := d[start:j]
	tz.dst = append(tz.dst, Token{
		Type:  Classify(w),
		Pos:   tz.pd.Pos(start),
		Bytes: w,
	})
	tz.i = j
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isControl(c byte) bool {
	return (c < 0x20 && !isSpace(c)) || c == 0x7f
}

func isWordEnd(d []byte, j int) bool {
	c := d[j]
	if isSpace(c) || isControl(c) {
		return true
	}
	switch c {
	case '{', '}', '[', ']', ':', ',', '"', '\'', '`':
		return true
	case '/':
		return j+1 < len(d) && (d[j+1] == '/' || d[j+1] == '*')
	}
	return false
}
