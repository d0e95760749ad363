package gomap

import (
	"reflect"
	"slices"

	"github.com/signadot/korm-format/go-korm/desc"
	"github.com/signadot/korm-format/go-korm/ir"
)

func (c *Context) mapStruct(node *ir.Node, d *desc.Descriptor) (reflect.Value, bool) {
	switch node.Type {
	case ir.MapType:
		return c.mapFields(d, node.Values)
	case ir.ListType:
		if d.Positional {
			return c.mapPositional(d, node.Values)
		}
	}
	return miss(node, d.Type, "not a record")
}

// mapFields fills a new instance of a struct from named entries. Each
// entry is used by at most one field.
func (c *Context) mapFields(d *desc.Descriptor, entries []*ir.Node) (reflect.Value, bool) {
	ptr := reflect.New(d.Type)
	v := ptr.Elem()
	c.arena.push(d.Type, ptr)
	defer c.arena.pop(d.Type)

	work := slices.Clone(entries)
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.InnerRef {
			c.setInner(ptr, f)
			continue
		}
		var e *ir.Node
		work, e = ir.Remove(work, f.Name)
		if e == nil {
			continue
		}
		fv, ok := c.mapValue(e, f.Type)
		if !ok {
			continue
		}
		v.FieldByIndex(f.Index).Set(fv)
	}
	return v, true
}

// mapPositional fills a new instance of a struct from values in field
// order.
func (c *Context) mapPositional(d *desc.Descriptor, values []*ir.Node) (reflect.Value, bool) {
	ptr := reflect.New(d.Type)
	v := ptr.Elem()
	c.arena.push(d.Type, ptr)
	defer c.arena.pop(d.Type)

	next := 0
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.InnerRef {
			c.setInner(ptr, f)
			continue
		}
		if next >= len(values) {
			break
		}
		e := values[next]
		next++
		fv, ok := c.mapValue(e, f.Type)
		if !ok {
			continue
		}
		v.FieldByIndex(f.Index).Set(fv)
	}
	return v, true
}

// setInner points an inner reference field at the enclosing instance of
// its type.
func (c *Context) setInner(self reflect.Value, f *desc.Field) {
	t := f.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	ref, ok := c.arena.lookup(t, self)
	if !ok {
		return
	}
	if f.Type.Kind() != reflect.Pointer {
		ref = ref.Elem()
	}
	self.Elem().FieldByIndex(f.Index).Set(ref)
}
