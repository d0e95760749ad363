package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes, keys included.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if c := Compare(a.Key, b.Key); c != 0 {
		return c
	}
	if a.Type != b.Type {
		return cmp.Compare(a.Type, b.Type)
	}
	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType, ComplexType:
		return strings.Compare(a.String, b.String)
	case CharType:
		return cmp.Compare(a.Char, b.Char)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ListType, MapType:
		n := min(len(a.Values), len(b.Values))
		for i := range n {
			if c := Compare(a.Values[i], b.Values[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(a.Values), len(b.Values))
	}
	return 0
}

func compareNumbers(a, b *Node) int {
	switch {
	case a.Int64 != nil && b.Int64 != nil:
		return cmp.Compare(*a.Int64, *b.Int64)
	case a.Int64 == nil && b.Int64 == nil && a.Float64 != nil && b.Float64 != nil:
		return cmp.Compare(*a.Float64, *b.Float64)
	}
	return strings.Compare(a.Number, b.Number)
}

// Equal reports whether a and b are structurally equal, keys and order
// included.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}
