package encode

import (
	"reflect"
	"strings"

	"github.com/signadot/korm-format/go-korm/codec"
)

// The codec.Writer primitives. Codecs write their values through these
// and may mix them freely.

func (e *encoder) WriteName(key any) {
	s, t := e.keyString(reflect.ValueOf(key))
	e.colored(t, FieldColor, s)
	e.assign()
}

func (e *encoder) WriteData(v any) {
	e.writeValue(reflect.ValueOf(v))
}

func (e *encoder) WriteList(values []any) {
	c := e.child()
	c.writeList(c.listElems(reflect.ValueOf(values)))
}

func (e *encoder) WriteHash(entries []codec.KV) {
	e = e.child()
	res := make([]entry, 0, len(entries))
	for _, kv := range entries {
		k, v := reflect.ValueOf(kv.Key), reflect.ValueOf(kv.Value)
		if !e.es.layout.SerializeNulls && (isNull(k) || isNull(v)) {
			continue
		}
		res = append(res, entry{
			key: func() {
				s, t := e.keyString(k)
				e.colored(t, FieldColor, s)
			},
			value: func() { e.writeValue(v) },
		})
	}
	e.writeHash(res)
}

func (e *encoder) IndentMore() {
	e.es.depth++
}

func (e *encoder) IndentLess() {
	if e.es.depth > 0 {
		e.es.depth--
	}
}

func (e *encoder) WriteIndent() {
	e.str(strings.Repeat(" ", e.es.indent*e.es.depth))
}

func (e *encoder) WriteNewLine() {
	e.str("\n")
}
