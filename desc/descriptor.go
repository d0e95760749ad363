package desc

import (
	"encoding"
	"math/big"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/signadot/korm-format/go-korm/debug"
	"github.com/signadot/korm-format/go-korm/ir"
)

// Descriptor is the shape of a Go type as seen by the engines.
type Descriptor struct {
	Type reflect.Type
	Kind Kind
	// Elem is the element type of pointers, arrays, slices and maps.
	Elem reflect.Type
	// Key is the key type of maps.
	Key reflect.Type
	// Len is the length of arrays.
	Len int

	// Fields of a struct, in positional order when Positional.
	Fields     []Field
	Positional bool
	Comments   []string
	// Parents are embedded struct types in declaration order.
	Parents []reflect.Type

	Enum *EnumSet
}

type Field struct {
	// Name is the key of the field in korm text.
	Name     string
	GoName   string
	Index    []int
	Type     reflect.Type
	InnerRef bool
	Comments []string
}

// Nullable reports whether values described by d can hold null.
func (d *Descriptor) Nullable() bool {
	switch d.Kind {
	case KindPointer, KindInterface, KindAny, KindMap, KindSlice:
		return true
	}
	return false
}

// Field returns the field named name.
func (d *Descriptor) Field(name string) *Field {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

var (
	cache sync.Map

	charType      = reflect.TypeFor[Char]()
	uuidType      = reflect.TypeFor[uuid.UUID]()
	bigIntType    = reflect.TypeFor[big.Int]()
	bigFloatType  = reflect.TypeFor[big.Float]()
	nodeType      = reflect.TypeFor[ir.Node]()
	metaType      = reflect.TypeFor[Meta]()
	orderedType   = reflect.TypeFor[Ordered]()
	textUnmarshal = reflect.TypeFor[encoding.TextUnmarshaler]()
	textMarshal   = reflect.TypeFor[encoding.TextMarshaler]()
)

// Of returns the descriptor of t.
func Of(t reflect.Type) *Descriptor {
	if d, ok := cache.Load(t); ok {
		return d.(*Descriptor)
	}
	d := build(t)
	actual, _ := cache.LoadOrStore(t, d)
	return actual.(*Descriptor)
}

// For returns the descriptor of T.
func For[T any]() *Descriptor {
	return Of(reflect.TypeFor[T]())
}

func build(t reflect.Type) *Descriptor {
	d := &Descriptor{Type: t}
	d.Kind = kindOf(t)
	switch d.Kind {
	case KindEnum:
		d.Enum = enumOf(t)
	case KindPointer, KindSlice:
		d.Elem = t.Elem()
	case KindArray:
		d.Elem = t.Elem()
		d.Len = t.Len()
	case KindMap:
		d.Key = t.Key()
		d.Elem = t.Elem()
	case KindOrderedMap:
		d.Key, d.Elem = reflect.New(t).Interface().(Ordered).OrderedTypes()
	case KindStruct:
		buildStruct(d)
	}
	applyDefs(d)
	if debug.Map() {
		debug.Logf("descriptor %s: kind %s, %d fields, positional %t", t, d.Kind, len(d.Fields), d.Positional)
	}
	return d
}

func kindOf(t reflect.Type) Kind {
	if isEnum(t) {
		return KindEnum
	}
	switch t {
	case charType:
		return KindChar
	case uuidType:
		return KindUUID
	case bigIntType:
		return KindBigInt
	case bigFloatType:
		return KindBigFloat
	case nodeType:
		return KindNode
	}
	pt := reflect.PointerTo(t)
	if t.Kind() == reflect.Struct && pt.Implements(orderedType) {
		return KindOrderedMap
	}
	if pt.Implements(textUnmarshal) && (t.Implements(textMarshal) || pt.Implements(textMarshal)) {
		return KindText
	}
	switch t.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return KindAny
		}
		return KindInterface
	case reflect.Pointer:
		return KindPointer
	case reflect.Array:
		return KindArray
	case reflect.Slice:
		return KindSlice
	case reflect.Map:
		return KindMap
	case reflect.Struct:
		return KindStruct
	}
	return KindInvalid
}

type fieldAt struct {
	Field
	depth int
}

func buildStruct(d *Descriptor) {
	var order []string
	var fields []fieldAt
	collectFields(d, d.Type, nil, 0, &fields, &order)

	// Shallower fields shadow deeper ones of the same name.
	seen := map[string]int{}
	var depths []int
	for _, f := range fields {
		if i, ok := seen[f.Name]; ok {
			if f.depth < depths[i] {
				d.Fields[i] = f.Field
				depths[i] = f.depth
			}
			continue
		}
		seen[f.Name] = len(d.Fields)
		d.Fields = append(d.Fields, f.Field)
		depths = append(depths, f.depth)
	}
	if d.Positional {
		positional(d, order)
	}
}

func collectFields(d *Descriptor, t reflect.Type, index []int, depth int, dst *[]fieldAt, order *[]string) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, err := ParseStructTag(sf.Tag.Get("korm"))
		if err != nil {
			if debug.Map() {
				debug.Logf("ignoring bad korm tag on %s.%s: %v", t, sf.Name, err)
			}
			tag = map[string]string{}
		}
		if sf.Name == "_" || (sf.Anonymous && sf.Type == metaType) {
			if depth == 0 {
				typeOpts(d, tag, order)
			}
			continue
		}
		if _, omit := tag["omit"]; omit {
			continue
		}
		fIndex := append(slices.Clone(index), i)
		ft := sf.Type
		if sf.Anonymous && tag["field"] == "" {
			et := ft
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				if depth == 0 {
					d.Parents = append(d.Parents, et)
				}
				if ft.Kind() == reflect.Struct {
					collectFields(d, ft, fIndex, depth+1, dst, order)
					continue
				}
			}
		}
		if !sf.IsExported() {
			continue
		}
		f := Field{
			Name:   sf.Name,
			GoName: sf.Name,
			Index:  fIndex,
			Type:   ft,
		}
		if name := tag["field"]; name != "" {
			f.Name = name
		}
		if _, ok := tag["inner"]; ok {
			f.InnerRef = true
		}
		if c, ok := tag["comment"]; ok {
			f.Comments = splitList(c, "|")
		}
		*dst = append(*dst, fieldAt{Field: f, depth: depth})
	}
}

func typeOpts(d *Descriptor, tag map[string]string, order *[]string) {
	if l, ok := tag["list"]; ok {
		d.Positional = true
		*order = splitList(l, ",")
	}
	if c, ok := tag["comment"]; ok {
		d.Comments = splitList(c, "|")
	}
}

// positional reorders the fields of d by the names in order. An empty order
// keeps declaration order; fields not named are dropped.
func positional(d *Descriptor, order []string) {
	if len(order) == 0 {
		return
	}
	res := make([]Field, 0, len(order))
	for _, name := range order {
		if f := d.Field(name); f != nil {
			res = append(res, *f)
			continue
		}
		for i := range d.Fields {
			if d.Fields[i].GoName == name {
				res = append(res, d.Fields[i])
				break
			}
		}
	}
	d.Fields = res
}
