package gomap

import (
	"reflect"

	"github.com/signadot/korm-format/go-korm/codec"
	"github.com/signadot/korm-format/go-korm/desc"
	"github.com/signadot/korm-format/go-korm/ir"
	"github.com/signadot/korm-format/go-korm/parse"
)

// Context is the state of one top-level mapping. It is the [codec.Reader]
// given to pullers.
type Context struct {
	m     *Mapper
	path  codec.Path
	arena *arena
}

var _ codec.Reader = (*Context)(nil)

// with returns a context whose path also holds ts.
func (c *Context) with(ts ...reflect.Type) *Context {
	return &Context{m: c.m, path: c.path.With(ts...), arena: c.arena}
}

// child returns a context for the values nested in the node being mapped.
// Codecs on the path apply again there.
func (c *Context) child() *Context {
	if c.path.Len() == 0 {
		return c
	}
	return &Context{m: c.m, arena: c.arena}
}

func (c *Context) Path() codec.Path {
	return c.path
}

func (c *Context) Map(node *ir.Node, t reflect.Type) (reflect.Value, bool) {
	return c.mapValue(node, t)
}

func (c *Context) MapInstance(t reflect.Type, entries []*ir.Node) (reflect.Value, bool) {
	d := desc.Of(t)
	if d.Kind == desc.KindPointer {
		v, ok := c.MapInstance(d.Elem, entries)
		if !ok {
			return v, false
		}
		return v.Addr(), true
	}
	if d.Kind != desc.KindStruct {
		return miss(nil, t, "not a struct")
	}
	if d.Positional {
		return c.child().mapPositional(d, entries)
	}
	return c.child().mapFields(d, entries)
}

func (c *Context) Parse(text string) (*ir.Document, error) {
	return parse.Parse([]byte(text), c.m.parseOpts...)
}

// arena holds the struct instances of a top-level mapping, by type, so
// inner reference fields can point at them.
type arena struct {
	building map[reflect.Type][]reflect.Value
	built    map[reflect.Type]reflect.Value
}

func newArena() *arena {
	return &arena{
		building: map[reflect.Type][]reflect.Value{},
		built:    map[reflect.Type]reflect.Value{},
	}
}

func (a *arena) push(t reflect.Type, ptr reflect.Value) {
	a.building[t] = append(a.building[t], ptr)
}

func (a *arena) pop(t reflect.Type) {
	stack := a.building[t]
	a.built[t] = stack[len(stack)-1]
	a.building[t] = stack[:len(stack)-1]
}

// lookup returns a pointer to the innermost instance of t under
// construction other than self. For a type other than that of self, the
// last completed instance is used when none is under construction.
func (a *arena) lookup(t reflect.Type, self reflect.Value) (reflect.Value, bool) {
	stack := a.building[t]
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Pointer() != self.Pointer() {
			return stack[i], true
		}
	}
	if self.Type().Elem() == t {
		return reflect.Value{}, false
	}
	v, ok := a.built[t]
	return v, ok
}
