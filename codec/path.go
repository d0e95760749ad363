package codec

import (
	"reflect"
	"slices"
	"strings"
)

// Path is the set of types whose codecs are running in the current call
// chain. The zero Path is empty.
type Path struct {
	types []reflect.Type
}

func (p Path) Has(t reflect.Type) bool {
	return slices.Contains(p.types, t)
}

// With returns p extended by ts, leaving p unchanged.
func (p Path) With(ts ...reflect.Type) Path {
	res := Path{types: make([]reflect.Type, len(p.types), len(p.types)+len(ts))}
	copy(res.types, p.types)
	for _, t := range ts {
		if !res.Has(t) {
			res.types = append(res.types, t)
		}
	}
	return res
}

func (p Path) Len() int {
	return len(p.types)
}

func (p Path) String() string {
	parts := make([]string, len(p.types))
	for i, t := range p.types {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, " > ") + "]"
}
