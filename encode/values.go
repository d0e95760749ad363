package encode

import (
	"cmp"
	"encoding"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/signadot/korm-format/go-korm/debug"
	"github.com/signadot/korm-format/go-korm/desc"
	"github.com/signadot/korm-format/go-korm/ir"
	"github.com/signadot/korm-format/go-korm/token"
)

var (
	nodeType    = reflect.TypeFor[ir.Node]()
	nodePtrType = reflect.TypeFor[*ir.Node]()
)

func (e *encoder) writeNull() {
	e.colored(ir.NullType, ValueColor, "null")
}

func (e *encoder) writeValue(v reflect.Value) {
	if !v.IsValid() {
		e.writeNull()
		return
	}
	t := v.Type()
	if p, at := e.es.codecs.FindPusher(t, e.path); p != nil {
		if isNull(v) {
			e.writeNull()
			return
		}
		sub := e.with(t)
		if at != t {
			sub = e.with(t, at)
		}
		if debug.Codec() {
			debug.Logf("push %s via %s", t, at)
		}
		p.Push(sub, v.Interface())
		return
	}
	d := desc.Of(t)
	switch d.Kind {
	case desc.KindPointer, desc.KindInterface, desc.KindAny:
		if v.IsNil() {
			e.writeNull()
			return
		}
		if t == nodePtrType {
			e.writeNode(v.Interface().(*ir.Node))
			return
		}
		e.writeValue(v.Elem())
	case desc.KindNode:
		n := v.Interface().(ir.Node)
		e.writeNode(&n)
	case desc.KindSlice, desc.KindArray:
		if d.Kind == desc.KindSlice && v.IsNil() {
			e.writeNull()
			return
		}
		c := e.child()
		c.writeList(c.listElems(v))
	case desc.KindMap:
		if v.IsNil() {
			e.writeNull()
			return
		}
		c := e.child()
		c.writeHash(c.mapEntries(v))
	case desc.KindOrderedMap:
		c := e.child()
		c.writeHash(c.orderedEntries(v))
	case desc.KindStruct:
		c := e.child()
		if d.Positional {
			c.writeList(c.positionalElems(v, d))
			return
		}
		c.writeHash(c.fieldEntries(v, d))
	case desc.KindInvalid:
		if debug.Encode() {
			debug.Logf("cannot write %s", t)
		}
		e.writeNull()
	default:
		s, it := scalarText(v, d, false)
		e.colored(it, ValueColor, s)
	}
}

// isNull reports whether v is written as null.
func isNull(v reflect.Value) bool {
	for {
		if !v.IsValid() {
			return true
		}
		switch v.Kind() {
		case reflect.Pointer, reflect.Interface:
			if v.IsNil() {
				return true
			}
			if n, ok := v.Interface().(*ir.Node); ok {
				return n.Type == ir.NullType
			}
			v = v.Elem()
		case reflect.Map, reflect.Slice:
			return v.IsNil()
		case reflect.Chan, reflect.Func, reflect.UnsafePointer:
			return true
		default:
			return false
		}
	}
}

func isScalar(v reflect.Value) bool {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return true
		}
		if n, ok := v.Interface().(*ir.Node); ok {
			return n.Type.IsScalar()
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return true
	}
	if v.Type() == nodeType {
		return v.Interface().(ir.Node).Type.IsScalar()
	}
	return desc.Of(v.Type()).Kind.IsScalar()
}

func (e *encoder) listElems(v reflect.Value) []elem {
	n := v.Len()
	res := make([]elem, 0, n)
	for i := range n {
		x := v.Index(i)
		if !e.es.layout.SerializeNulls && isNull(x) {
			continue
		}
		res = append(res, elem{scalar: isScalar(x), write: func() { e.writeValue(x) }})
	}
	return res
}

// positionalElems lists the fields of a positional record. Null fields are
// kept so later fields stay in place.
func (e *encoder) positionalElems(v reflect.Value, d *desc.Descriptor) []elem {
	res := make([]elem, 0, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.InnerRef {
			continue
		}
		x := v.FieldByIndex(f.Index)
		res = append(res, elem{scalar: isScalar(x), write: func() { e.writeValue(x) }})
	}
	return res
}

func (e *encoder) fieldEntries(v reflect.Value, d *desc.Descriptor) []entry {
	res := make([]entry, 0, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.InnerRef {
			continue
		}
		x := v.FieldByIndex(f.Index)
		if !e.es.layout.SerializeNulls && isNull(x) {
			continue
		}
		res = append(res, entry{
			key:      func() { e.colored(ir.StringType, FieldColor, keyText(f.Name)) },
			value:    func() { e.writeValue(x) },
			comments: f.Comments,
		})
	}
	return res
}

type mapKey struct {
	v    reflect.Value
	text string
	typ  ir.Type
}

// mapEntries lists the entries of a Go map with keys sorted, numbers by
// value and everything else by key text.
func (e *encoder) mapEntries(v reflect.Value) []entry {
	keys := make([]mapKey, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key()
		if !e.es.layout.SerializeNulls && (isNull(k) || isNull(iter.Value())) {
			continue
		}
		text, typ := e.keyString(k)
		keys = append(keys, mapKey{v: k, text: text, typ: typ})
	}
	slices.SortFunc(keys, compareKeys)
	res := make([]entry, len(keys))
	for i, k := range keys {
		x := v.MapIndex(k.v)
		res[i] = entry{
			key:   func() { e.colored(k.typ, FieldColor, k.text) },
			value: func() { e.writeValue(x) },
		}
	}
	return res
}

func compareKeys(a, b mapKey) int {
	av, bv := a.v, b.v
	for av.Kind() == reflect.Interface && !av.IsNil() {
		av = av.Elem()
	}
	for bv.Kind() == reflect.Interface && !bv.IsNil() {
		bv = bv.Elem()
	}
	if x, ok := numeric(av); ok {
		if y, ok := numeric(bv); ok {
			if c := cmp.Compare(x, y); c != 0 {
				return c
			}
		}
	}
	return strings.Compare(a.text, b.text)
}

func numeric(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

func (e *encoder) orderedEntries(v reflect.Value) []entry {
	p := addr(v)
	var res []entry
	p.Interface().(desc.Ordered).RangeValues(func(k, x reflect.Value) bool {
		if !e.es.layout.SerializeNulls && (isNull(k) || isNull(x)) {
			return true
		}
		text, typ := e.keyString(k)
		res = append(res, entry{
			key:   func() { e.colored(typ, FieldColor, text) },
			value: func() { e.writeValue(x) },
		})
		return true
	})
	return res
}

// addr returns a pointer to v, or to a copy of v.
func addr(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p
}

// keyString renders a map key. Keys which are not scalars are written in a
// complex span.
func (e *encoder) keyString(k reflect.Value) (string, ir.Type) {
	for k.IsValid() && (k.Kind() == reflect.Pointer || k.Kind() == reflect.Interface) {
		if k.IsNil() {
			return "null", ir.NullType
		}
		if n, ok := k.Interface().(*ir.Node); ok {
			return e.nodeKeyString(n)
		}
		k = k.Elem()
	}
	if !k.IsValid() {
		return "null", ir.NullType
	}
	t := k.Type()
	if p, _ := e.es.codecs.FindPusher(t, e.path); p == nil {
		d := desc.Of(t)
		if d.Kind.IsScalar() {
			return scalarText(k, d, true)
		}
		if d.Kind == desc.KindNode {
			n := k.Interface().(ir.Node)
			return e.nodeKeyString(&n)
		}
	}
	text := e.complexText(func(sub *encoder) { sub.writeValue(k) })
	return token.QuoteComplex(text), ir.ComplexType
}

// keyText quotes s when it cannot be read back as a bare word.
func keyText(s string) string {
	if token.NeedsQuote(s) {
		return token.Quote(s)
	}
	return s
}

func textOf(s string, name bool) string {
	if name {
		return keyText(s)
	}
	return token.Quote(s)
}

// scalarText renders a scalar value. Strings are always quoted as values
// and only when needed as keys.
func scalarText(v reflect.Value, d *desc.Descriptor, name bool) (string, ir.Type) {
	switch d.Kind {
	case desc.KindString:
		return textOf(v.String(), name), ir.StringType
	case desc.KindChar:
		return token.QuoteChar(rune(v.Int())), ir.CharType
	case desc.KindBool:
		return strconv.FormatBool(v.Bool()), ir.BoolType
	case desc.KindInt:
		return strconv.FormatInt(v.Int(), 10), ir.NumberType
	case desc.KindUint:
		return strconv.FormatUint(v.Uint(), 10), ir.NumberType
	case desc.KindFloat:
		return floatText(v.Float(), v.Type().Bits()), ir.NumberType
	case desc.KindUUID:
		return textOf(v.Interface().(uuid.UUID).String(), name), ir.StringType
	case desc.KindEnum:
		s, ok := d.Enum.Name(v)
		if !ok {
			s = fmt.Sprint(v.Interface())
		}
		return keyText(s), ir.StringType
	case desc.KindBigInt:
		return addr(v).Interface().(*big.Int).String(), ir.NumberType
	case desc.KindBigFloat:
		return bigFloatText(addr(v).Interface().(*big.Float)), ir.NumberType
	case desc.KindText:
		tm, ok := v.Interface().(encoding.TextMarshaler)
		if !ok {
			tm = addr(v).Interface().(encoding.TextMarshaler)
		}
		b, err := tm.MarshalText()
		if err != nil {
			if debug.Encode() {
				debug.Logf("marshal %s: %v", v.Type(), err)
			}
			return "null", ir.NullType
		}
		return textOf(string(b), name), ir.StringType
	}
	return "null", ir.NullType
}

func floatText(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ir.FormatFloat(f)
	}
	return pointed(strconv.FormatFloat(f, 'g', -1, bits))
}

func bigFloatText(f *big.Float) string {
	if f.IsInf() {
		return ir.FormatFloat(math.Inf(f.Sign()))
	}
	return pointed(f.Text('g', -1))
}

// pointed makes sure s reads back as a float.
func pointed(s string) string {
	if strings.ContainsAny(s, ".eE") {
		return s
	}
	return s + ".0"
}
