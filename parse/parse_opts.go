package parse

import (
	"github.com/signadot/korm-format/go-korm/ir"
	"github.com/signadot/korm-format/go-korm/token"
)

type parseOpts struct {
	positions map[*ir.Node]*token.Pos
	maxDepth  int
}

type ParseOption func(*parseOpts)

// ParsePositions records the position of every parsed node in m.
func ParsePositions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.positions = m
	}
}

// ParseMaxDepth bounds the nesting of lists and maps. Zero means no bound.
func ParseMaxDepth(n int) ParseOption {
	return func(o *parseOpts) {
		o.maxDepth = n
	}
}
