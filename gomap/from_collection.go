package gomap

import (
	"reflect"
	"strconv"

	"github.com/signadot/korm-format/go-korm/desc"
	"github.com/signadot/korm-format/go-korm/ir"
)

// mapList maps a list, or a map with integer keys, onto a slice or array.
// Elements which produce nothing hold the zero value.
func (c *Context) mapList(node *ir.Node, d *desc.Descriptor) (reflect.Value, bool) {
	var elems []*ir.Node
	switch node.Type {
	case ir.ListType:
		elems = node.Values
	case ir.MapType:
		dense, ok := denseOf(node.Values)
		if !ok {
			return miss(node, d.Type, "map keys are not indices")
		}
		elems = dense
	default:
		return miss(node, d.Type, "not a list")
	}
	var res reflect.Value
	n := len(elems)
	if d.Kind == desc.KindArray {
		res = reflect.New(d.Type).Elem()
		n = min(n, d.Len)
	} else {
		res = reflect.MakeSlice(d.Type, n, n)
	}
	for i := range n {
		if elems[i] == nil {
			continue
		}
		v, ok := c.mapValue(elems[i], d.Elem)
		if !ok {
			continue
		}
		res.Index(i).Set(v)
	}
	return res, true
}

// denseOf places map entries at the indices given by their keys. Missing
// indices are nil and the first entry for an index wins.
func denseOf(entries []*ir.Node) ([]*ir.Node, bool) {
	idx := make([]int, len(entries))
	size := 0
	for i, e := range entries {
		k, ok := indexOf(e.Key)
		if !ok {
			return nil, false
		}
		idx[i] = k
		size = max(size, k+1)
	}
	res := make([]*ir.Node, size)
	for i, e := range entries {
		if res[idx[i]] == nil {
			res[idx[i]] = e
		}
	}
	return res, true
}

func indexOf(key *ir.Node) (int, bool) {
	if key == nil {
		return 0, false
	}
	var i int64
	switch key.Type {
	case ir.NumberType:
		if key.Int64 == nil {
			return 0, false
		}
		i = *key.Int64
	case ir.StringType:
		v, err := strconv.ParseInt(key.String, 10, 64)
		if err != nil {
			return 0, false
		}
		i = v
	default:
		return 0, false
	}
	if i < 0 || i > maxIndex {
		return 0, false
	}
	return int(i), true
}

const maxIndex = 1 << 24

// mapAssoc maps the entries of a map onto a Go map or an ordered map.
// Entries whose key or value produce nothing are dropped and the first
// entry for a key wins.
func (c *Context) mapAssoc(node *ir.Node, d *desc.Descriptor) (reflect.Value, bool) {
	if node.Type != ir.MapType {
		return miss(node, d.Type, "not a map")
	}
	var (
		res  reflect.Value
		set  func(k, v reflect.Value)
		seen = map[any]bool{}
	)
	if d.Kind == desc.KindOrderedMap {
		p := reflect.New(d.Type)
		ord := p.Interface().(desc.Ordered)
		res = p.Elem()
		set = ord.SetValue
	} else {
		res = reflect.MakeMapWithSize(d.Type, len(node.Values))
		set = res.SetMapIndex
	}
	for _, e := range node.Values {
		if e.Key == nil {
			continue
		}
		k, ok := c.mapValue(e.Key, d.Key)
		if !ok || !k.Comparable() {
			continue
		}
		ki := k.Interface()
		if seen[ki] {
			continue
		}
		v, ok := c.mapValue(e, d.Elem)
		if !ok {
			continue
		}
		seen[ki] = true
		set(k, v)
	}
	return res, true
}
