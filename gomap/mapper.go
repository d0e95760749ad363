package gomap

import (
	"fmt"
	"reflect"

	"github.com/signadot/korm-format/go-korm/codec"
	"github.com/signadot/korm-format/go-korm/ir"
	"github.com/signadot/korm-format/go-korm/parse"
)

// Mapper maps nodes onto Go values using a codec registry.
type Mapper struct {
	codecs    *codec.Registry
	parseOpts []parse.ParseOption
}

// NewMapper returns a mapper consulting reg. The parse options are used
// when complex payloads are parsed again.
func NewMapper(reg *codec.Registry, opts ...parse.ParseOption) *Mapper {
	if reg == nil {
		reg = codec.NewRegistry()
	}
	return &Mapper{codecs: reg, parseOpts: opts}
}

func (m *Mapper) Registry() *codec.Registry {
	return m.codecs
}

// NewContext returns a context for one top-level mapping.
func (m *Mapper) NewContext() *Context {
	return &Context{m: m, arena: newArena()}
}

// Map maps node onto a new value of type t. A keyed node without a parent
// is treated as a one-entry map when t is a struct or map type.
func (m *Mapper) Map(node *ir.Node, t reflect.Type) (reflect.Value, bool) {
	return m.NewContext().mapRoot(node, t)
}

// Decode maps node into the value pointed to by v.
func (m *Mapper) Decode(node *ir.Node, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &UnmarshalError{Message: "destination must be a non-nil pointer"}
	}
	t := rv.Type().Elem()
	res, ok := m.Map(node, t)
	if !ok {
		path := ""
		if node != nil {
			path = node.Path()
		}
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("cannot map to %s", t),
			Err:       ErrNoValue,
		}
	}
	rv.Elem().Set(res)
	return nil
}

// MapTo maps node onto a T.
func MapTo[T any](m *Mapper, node *ir.Node) (T, bool) {
	var zero T
	v, ok := m.Map(node, reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	return v.Interface().(T), true
}
