package token

import (
	"fmt"
)

type TokenType int

const (
	TLiteral TokenType = iota
	TInteger
	TFloat
	TNull
	TTrue
	TFalse
	TString
	TChar
	TComplex
	TColon
	TComma
	TLCurl
	TRCurl
	TLSquare
	TRSquare
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TLiteral: "TLiteral",
		TInteger: "TInteger",
		TFloat:   "TFloat",
		TNull:    "TNull",
		TTrue:    "TTrue",
		TFalse:   "TFalse",
		TString:  "TString",
		TChar:    "TChar",
		TComplex: "TComplex",
		TColon:   "TColon",
		TComma:   "TComma",
		TLCurl:   "TLCurl",
		TRCurl:   "TRCurl",
		TLSquare: "TLSquare",
		TRSquare: "TRSquare",
	}[t]
}

// IsScalar reports whether tokens of type t form a complete value.
func (t TokenType) IsScalar() bool {
	return t <= TComplex
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// String returns the decoded text of the token.
func (t *Token) String() string {
	switch t.Type {
	case TString:
		return unescape(t.Bytes[1:len(t.Bytes)-1], '"')
	case TChar:
		return unescape(t.Bytes[1:len(t.Bytes)-1], '\'')
	case TComplex:
		return unescape(t.Bytes[1:len(t.Bytes)-1], '`')
	default:
		return string(t.Bytes)
	}
}

// Rune returns the character held by a TChar token.
func (t *Token) Rune() rune {
	for _, r := range t.String() {
		return r
	}
	return 0
}
