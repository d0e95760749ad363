package gomap

import (
	"math/big"
	"reflect"

	"github.com/signadot/korm-format/go-korm/codec"
	"github.com/signadot/korm-format/go-korm/debug"
	"github.com/signadot/korm-format/go-korm/desc"
	"github.com/signadot/korm-format/go-korm/ir"
)

var nodeType = reflect.TypeFor[ir.Node]()

func miss(node *ir.Node, t reflect.Type, why string) (reflect.Value, bool) {
	if debug.Map() {
		at := "<none>"
		if node != nil {
			at = node.Path()
		}
		debug.Logf("no %s value at %s: %s", t, at, why)
	}
	return reflect.Value{}, false
}

// mapRoot maps a top-level node, lifting a lone keyed node into a
// one-entry map for struct and map targets.
func (c *Context) mapRoot(node *ir.Node, t reflect.Type) (reflect.Value, bool) {
	if node != nil && node.Key != nil && node.Parent == nil && node.Type != ir.MapType && structured(t) {
		node = &ir.Node{Type: ir.MapType, Values: []*ir.Node{node}}
	}
	return c.mapValue(node, t)
}

func structured(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	d := desc.Of(t)
	switch d.Kind {
	case desc.KindStruct:
		return !d.Positional
	case desc.KindMap, desc.KindOrderedMap, desc.KindAny:
		return true
	}
	return false
}

func (c *Context) mapValue(node *ir.Node, t reflect.Type) (reflect.Value, bool) {
	if node == nil {
		return miss(nil, t, "absent")
	}
	if p, at := c.m.codecs.FindPuller(t, c.path); p != nil {
		return c.pull(p, at, node, t)
	}
	d := desc.Of(t)
	if node.Type == ir.NullType {
		switch {
		case d.Kind == desc.KindNode:
			return reflect.ValueOf(node).Elem(), true
		case d.Kind == desc.KindPointer && d.Elem == nodeType:
			return reflect.ValueOf(node), true
		case d.Nullable():
			return reflect.Zero(t), true
		}
		return miss(node, t, "null")
	}
	if node.Type == ir.ComplexType && reparses(d) {
		doc, err := c.Parse(node.String)
		if err != nil {
			return miss(node, t, err.Error())
		}
		return c.mapValue(doc.Root(), t)
	}
	switch d.Kind {
	case desc.KindNode:
		return reflect.ValueOf(node).Elem(), true
	case desc.KindPointer:
		return c.mapPointer(node, d)
	case desc.KindAny:
		v := reflect.New(t).Elem()
		if x := natural(node); x != nil {
			v.Set(reflect.ValueOf(x))
		}
		return v, true
	case desc.KindInterface:
		return miss(node, t, "no codec for interface")
	case desc.KindSlice, desc.KindArray:
		return c.child().mapList(node, d)
	case desc.KindMap, desc.KindOrderedMap:
		return c.child().mapAssoc(node, d)
	case desc.KindStruct:
		return c.child().mapStruct(node, d)
	case desc.KindInvalid:
		return miss(node, t, "unsupported type")
	}
	return mapScalar(node, d)
}

// reparses reports whether a complex payload is parsed again before
// mapping onto d.
func reparses(d *desc.Descriptor) bool {
	switch d.Kind {
	case desc.KindNode, desc.KindString, desc.KindText:
		return false
	case desc.KindPointer:
		return reparses(desc.Of(d.Elem))
	}
	return true
}

func (c *Context) mapPointer(node *ir.Node, d *desc.Descriptor) (reflect.Value, bool) {
	if d.Elem == nodeType {
		return reflect.ValueOf(node), true
	}
	v, ok := c.mapValue(node, d.Elem)
	if !ok {
		return v, false
	}
	if v.CanAddr() && v.Type() == d.Elem {
		return v.Addr(), true
	}
	p := reflect.New(d.Elem)
	p.Elem().Set(v)
	return p, true
}

// pull invokes a codec found for t at type at.
func (c *Context) pull(p codec.Puller, at reflect.Type, node *ir.Node, t reflect.Type) (reflect.Value, bool) {
	nodes := []*ir.Node{node}
	if node.Type == ir.MapType {
		nodes = node.Values
	}
	sub := c.with(t)
	if at != t {
		sub = c.with(t, at)
	}
	if debug.Codec() {
		debug.Logf("pull %s via %s at %s", t, at, node.Path())
	}
	res, ok := p.Pull(sub, nodes)
	if !ok {
		return miss(node, t, "codec produced nothing")
	}
	if res == nil {
		if desc.Of(t).Nullable() {
			return reflect.Zero(t), true
		}
		return miss(node, t, "codec produced nil")
	}
	return assign(reflect.ValueOf(res), t)
}

// assign converts v to a value of type t.
func assign(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	vt := v.Type()
	switch {
	case vt == t:
		return v, true
	case vt.AssignableTo(t):
		res := reflect.New(t).Elem()
		res.Set(v)
		return res, true
	case t.Kind() == reflect.Pointer && vt.AssignableTo(t.Elem()):
		p := reflect.New(t.Elem())
		p.Elem().Set(v)
		return p, true
	case vt.Kind() == reflect.Pointer && vt.Elem().AssignableTo(t):
		if v.IsNil() {
			return miss(nil, t, "nil pointer from codec")
		}
		return assign(v.Elem(), t)
	case vt.Kind() == t.Kind() && vt.ConvertibleTo(t):
		return v.Convert(t), true
	}
	return miss(nil, t, "codec produced "+vt.String())
}

// natural returns the plain Go form of node: nil, string, desc.Char, bool,
// int64, float64, *big.Int, []any or map[string]any.
func natural(node *ir.Node) any {
	switch node.Type {
	case ir.StringType, ir.ComplexType:
		return node.String
	case ir.CharType:
		return desc.Char(node.Char)
	case ir.BoolType:
		return node.Bool
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64
		case isIntText(node.Number):
			if bi, ok := new(big.Int).SetString(node.Number, 10); ok {
				return bi
			}
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return node.Number
	case ir.ListType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = natural(v)
		}
		return res
	case ir.MapType:
		res := make(map[string]any, len(node.Values))
		for _, v := range node.Values {
			k := ""
			if v.Key != nil {
				k = v.Key.KeyText()
			}
			if _, dup := res[k]; dup {
				continue
			}
			res[k] = natural(v)
		}
		return res
	}
	return nil
}
