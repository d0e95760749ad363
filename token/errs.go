package token

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminated = errors.New("unterminated")
	ErrIllegal      = errors.New("illegal character")
	ErrBadChar      = errors.New("character literal must hold exactly one character")
)

// LexError is a lexing failure at a position in the input.
type LexError struct {
	Err error
	Pos Pos
}

func (e *LexError) Unwrap() error {
	return e.Err
}

func NewLexError(e error, p *Pos) *LexError {
	return &LexError{Err: e, Pos: *p}
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func UnterminatedErr(what string, p *Pos) error {
	return NewLexError(fmt.Errorf("%w %s", ErrUnterminated, what), p)
}

func IllegalErr(c rune, p *Pos) error {
	return NewLexError(fmt.Errorf("%w %q", ErrIllegal, c), p)
}
