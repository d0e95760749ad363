package desc

import (
	"reflect"
	"sync"
)

// Option adjusts a descriptor when it is built.
type Option func(*Descriptor)

var defs sync.Map

// Define attaches options to the descriptor of t. Options from earlier
// calls are kept and tag derived settings are applied first.
func Define(t reflect.Type, opts ...Option) {
	var all []Option
	if prev, ok := defs.Load(t); ok {
		all = append(all, prev.([]Option)...)
	}
	defs.Store(t, append(all, opts...))
	cache.Delete(t)
}

func DefineFor[T any](opts ...Option) {
	Define(reflect.TypeFor[T](), opts...)
}

func applyDefs(d *Descriptor) {
	v, ok := defs.Load(d.Type)
	if !ok {
		return
	}
	for _, o := range v.([]Option) {
		o(d)
	}
}

// Positional maps a struct to and from a list of its field values in the
// order of names, which may be korm or Go field names.
func Positional(names ...string) Option {
	return func(d *Descriptor) {
		if d.Kind != KindStruct {
			return
		}
		d.Positional = true
		positional(d, names)
	}
}

// Comment documents a type.
func Comment(lines ...string) Option {
	return func(d *Descriptor) {
		d.Comments = lines
	}
}

// FieldComment documents the field named name.
func FieldComment(name string, lines ...string) Option {
	return func(d *Descriptor) {
		if f := d.Field(name); f != nil {
			f.Comments = lines
		}
	}
}

// InnerRef marks the field named name as a reference to an enclosing
// instance under construction.
func InnerRef(name string) Option {
	return func(d *Descriptor) {
		if f := d.Field(name); f != nil {
			f.InnerRef = true
		}
	}
}

// Rename sets the korm name of the Go field goName.
func Rename(goName, name string) Option {
	return func(d *Descriptor) {
		for i := range d.Fields {
			if d.Fields[i].GoName == goName {
				d.Fields[i].Name = name
			}
		}
	}
}
