package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/korm-format/go-korm/token"
)

var (
	ErrParse      = errors.New("parse error")
	ErrUnexpected = fmt.Errorf("%w: unexpected", ErrParse)
	ErrUnclosed   = fmt.Errorf("%w: unclosed", ErrParse)
	ErrUnkeyed    = fmt.Errorf("%w: map entry without a key", ErrParse)
	ErrDepth      = fmt.Errorf("%w: nesting too deep", ErrParse)
)

// ParseError is a grammar violation at a token.
type ParseError struct {
	Err   error
	Pos   *token.Pos
	Token string
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Error() string {
	if e.Pos == nil {
		return fmt.Sprintf("%s %s", e.Err.Error(), e.Token)
	}
	return fmt.Sprintf("%s %s at %s", e.Err.Error(), e.Token, e.Pos.String())
}

func tokErr(e error, t *token.Token) error {
	return &ParseError{Err: e, Pos: t.Pos, Token: fmt.Sprintf("%q", t.Bytes)}
}

func eofErr(e error, after *token.Token) error {
	return &ParseError{Err: e, Pos: after.Pos, Token: "end of input after " + fmt.Sprintf("%q", after.Bytes)}
}
