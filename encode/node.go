package encode

import (
	"strconv"

	"github.com/signadot/korm-format/go-korm/ir"
	"github.com/signadot/korm-format/go-korm/token"
)

func (e *encoder) writeNode(n *ir.Node) {
	switch n.Type {
	case ir.ListType:
		elems := make([]elem, 0, len(n.Values))
		for _, v := range n.Values {
			if !e.es.layout.SerializeNulls && v.Type == ir.NullType {
				continue
			}
			elems = append(elems, elem{scalar: v.Type.IsScalar(), write: func() { e.writeNode(v) }})
		}
		e.writeList(elems)
	case ir.MapType:
		entries := make([]entry, 0, len(n.Values))
		for _, v := range n.Values {
			if !e.es.layout.SerializeNulls && v.Type == ir.NullType {
				continue
			}
			entries = append(entries, entry{
				key:   func() { e.writeNodeKey(v.Key) },
				value: func() { e.writeNode(v) },
			})
		}
		e.writeHash(entries)
	default:
		s, t := nodeText(n)
		e.colored(t, ValueColor, s)
	}
}

func (e *encoder) writeNodeKey(k *ir.Node) {
	s, t := e.nodeKeyString(k)
	e.colored(t, FieldColor, s)
}

func (e *encoder) nodeKeyString(k *ir.Node) (string, ir.Type) {
	if k == nil {
		return token.Quote(""), ir.StringType
	}
	switch k.Type {
	case ir.StringType:
		return keyText(k.String), ir.StringType
	case ir.ListType, ir.MapType:
		return token.QuoteComplex(e.complexText(func(sub *encoder) { sub.writeNode(k) })), ir.ComplexType
	}
	return nodeText(k)
}

// nodeText renders a scalar node.
func nodeText(n *ir.Node) (string, ir.Type) {
	switch n.Type {
	case ir.StringType:
		return token.Quote(n.String), n.Type
	case ir.CharType:
		return token.QuoteChar(n.Char), n.Type
	case ir.BoolType:
		return strconv.FormatBool(n.Bool), n.Type
	case ir.NumberType:
		switch {
		case n.Number != "":
			return n.Number, n.Type
		case n.Int64 != nil:
			return strconv.FormatInt(*n.Int64, 10), n.Type
		case n.Float64 != nil:
			return ir.FormatFloat(*n.Float64), n.Type
		}
	case ir.ComplexType:
		return token.QuoteComplex(n.String), n.Type
	}
	return "null", ir.NullType
}
