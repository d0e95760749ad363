package parse

import (
	"github.com/signadot/korm-format/go-korm/debug"
	"github.com/signadot/korm-format/go-korm/ir"
	"github.com/signadot/korm-format/go-korm/token"
)

// Parse parses d into a document.
func Parse(d []byte, opts ...ParseOption) (*ir.Document, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	toks, err := token.Tokenize(d)
	if err != nil {
		return nil, err
	}
	off := 0
	nodes, err := parseSeq(toks, &off, nil, false, 0, pOpts)
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parsed %d top-level nodes from %d tokens", len(nodes), len(toks))
	}
	return &ir.Document{Nodes: nodes}, nil
}

// ParseNode parses d and returns the document root. It returns nil for a
// document with no nodes.
func ParseNode(d []byte, opts ...ParseOption) (*ir.Node, error) {
	doc, err := Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	return doc.Root(), nil
}

func trackPos(node *ir.Node, pos *token.Pos, opts *parseOpts) {
	if opts.positions != nil && pos != nil {
		opts.positions[node] = pos
	}
}

// parseSeq parses entries until the token closing open, or until the end of
// input when open is nil. Entries may be separated by single commas and may
// end with one.
func parseSeq(toks []token.Token, pi *int, open *token.Token, keyed bool, depth int, opts *parseOpts) ([]*ir.Node, error) {
	closer := token.TRCurl
	if open != nil && open.Type == token.TLSquare {
		closer = token.TRSquare
	}
	var res []*ir.Node
	for {
		if *pi >= len(toks) {
			if open == nil {
				return res, nil
			}
			return nil, tokErr(ErrUnclosed, open)
		}
		t := &toks[*pi]
		if open != nil && t.Type == closer {
			*pi++
			return res, nil
		}
		if t.Type == token.TComma {
			return nil, tokErr(ErrUnexpected, t)
		}
		node, err := parseEntry(toks, pi, depth, opts)
		if err != nil {
			return nil, err
		}
		if keyed && node.Key == nil {
			return nil, tokErr(ErrUnkeyed, t)
		}
		res = append(res, node)
		if *pi < len(toks) && toks[*pi].Type == token.TComma {
			*pi++
		}
	}
}

func parseEntry(toks []token.Token, pi *int, depth int, opts *parseOpts) (*ir.Node, error) {
	t := &toks[*pi]
	if !t.Type.IsScalar() || *pi+1 >= len(toks) || toks[*pi+1].Type != token.TColon {
		return parseValue(toks, pi, depth, opts)
	}
	key := scalar(t)
	trackPos(key, t.Pos, opts)
	colon := &toks[*pi+1]
	*pi += 2
	if *pi >= len(toks) {
		return nil, eofErr(ErrUnexpected, colon)
	}
	v, err := parseValue(toks, pi, depth, opts)
	if err != nil {
		return nil, err
	}
	return ir.Keyed(key, v), nil
}

func parseValue(toks []token.Token, pi *int, depth int, opts *parseOpts) (*ir.Node, error) {
	t := &toks[*pi]
	if t.Type.IsScalar() {
		*pi++
		res := scalar(t)
		trackPos(res, t.Pos, opts)
		return res, nil
	}
	var typ ir.Type
	switch t.Type {
	case token.TLCurl:
		typ = ir.MapType
	case token.TLSquare:
		typ = ir.ListType
	default:
		return nil, tokErr(ErrUnexpected, t)
	}
	if opts.maxDepth > 0 && depth >= opts.maxDepth {
		return nil, tokErr(ErrDepth, t)
	}
	*pi++
	vals, err := parseSeq(toks, pi, t, typ == ir.MapType, depth+1, opts)
	if err != nil {
		return nil, err
	}
	res := ir.FromSlice(vals)
	res.Type = typ
	trackPos(res, t.Pos, opts)
	return res, nil
}

func scalar(t *token.Token) *ir.Node {
	switch t.Type {
	case token.TNull:
		return ir.Null()
	case token.TTrue:
		return ir.FromBool(true)
	case token.TFalse:
		return ir.FromBool(false)
	case token.TInteger, token.TFloat:
		return ir.FromNumber(string(t.Bytes))
	case token.TChar:
		return ir.FromChar(t.Rune())
	case token.TComplex:
		return ir.FromComplex(t.String())
	default:
		return ir.FromString(t.String())
	}
}
