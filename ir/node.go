package ir

import (
	"maps"
	"math"
	"math/big"
	"slices"
	"strconv"
)

type Node struct {
	Type        Type
	Key         *Node
	Parent      *Node
	ParentIndex int
	Values      []*Node

	// String holds string text and complex payloads.
	String  string
	Char    rune
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	return y.CloneTo(&Node{})
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	if y.Key != nil {
		dst.Key = y.Key.CloneTo(&Node{})
	}
	dst.Values = make([]*Node, len(y.Values))
	for i, yv := range y.Values {
		dstI := yv.CloneTo(&Node{})
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Values[i] = dstI
	}
	dst.String = y.String
	dst.Char = y.Char
	dst.Bool = y.Bool
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	return dst
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromChar(r rune) *Node {
	return &Node{Type: CharType, Char: r}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:   NumberType,
		Int64:  &v,
		Number: strconv.FormatInt(v, 10),
	}
}

func FromUint(v uint64) *Node {
	if v <= math.MaxInt64 {
		return FromInt(int64(v))
	}
	f := float64(v)
	return &Node{
		Type:    NumberType,
		Float64: &f,
		Number:  strconv.FormatUint(v, 10),
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
		Number:  FormatFloat(f),
	}
}

// FromNumber builds a number node from numeric source text. Integers that
// do not fit in an int64 keep their text and an approximate Float64.
func FromNumber(text string) *Node {
	res := &Node{Type: NumberType, Number: text}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		res.Int64 = &i
		return res
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		res.Float64 = &f
		return res
	}
	if bf, ok := new(big.Float).SetString(text); ok {
		f, _ := bf.Float64()
		res.Float64 = &f
	}
	return res
}

// FromComplex builds a scalar holding text to be parsed again on use.
func FromComplex(text string) *Node {
	return &Node{Type: ComplexType, String: text}
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{Type: ListType}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

// FromEntries builds a map node from keyed nodes.
func FromEntries(entries []*Node) *Node {
	res := FromSlice(entries)
	res.Type = MapType
	return res
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	entries := make([]*Node, len(kvs))
	for i, kv := range kvs {
		entries[i] = Keyed(kv.Key, kv.Val)
	}
	return FromEntries(entries)
}

// FromMap builds a map node with string keys in sorted order.
func FromMap(yMap map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(yMap))
	entries := make([]*Node, len(keys))
	for i, k := range keys {
		entries[i] = Keyed(FromString(k), yMap[k])
	}
	return FromEntries(entries)
}

// Keyed attaches key to v and returns v.
func Keyed(key, v *Node) *Node {
	v.Key = key
	return v
}

// KeyText returns the textual form of a scalar node used for key matching.
func (y *Node) KeyText() string {
	if y == nil {
		return ""
	}
	switch y.Type {
	case StringType, ComplexType:
		return y.String
	case CharType:
		return string(y.Char)
	case BoolType:
		return strconv.FormatBool(y.Bool)
	case NumberType:
		return y.Number
	case NullType:
		return "null"
	}
	return ""
}

// Find returns the index and node of the first entry whose key text is key.
func Find(entries []*Node, key string) (int, *Node) {
	for i, e := range entries {
		if e.Key != nil && e.Key.KeyText() == key {
			return i, e
		}
	}
	return -1, nil
}

// Remove returns entries without its first entry keyed by key, and that
// entry. The result shares storage with entries.
func Remove(entries []*Node, key string) ([]*Node, *Node) {
	i, e := Find(entries, key)
	if e == nil {
		return entries, nil
	}
	return slices.Delete(entries, i, i+1), e
}

// Get returns the value of the first entry of a map keyed by field.
func Get(y *Node, field string) *Node {
	if y.Type != MapType {
		return nil
	}
	_, res := Find(y.Values, field)
	return res
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// FormatFloat renders f so that it reads back as a float.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E':
			return s
		}
	}
	return s + ".0"
}
