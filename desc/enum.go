package desc

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// EnumSet holds the members of an enumeration type.
type EnumSet struct {
	Type   reflect.Type
	Values []reflect.Value
	Names  []string
}

// Lookup returns the member whose name matches name, ignoring case.
func (e *EnumSet) Lookup(name string) (reflect.Value, bool) {
	for i, n := range e.Names {
		if strings.EqualFold(n, name) {
			return e.Values[i], true
		}
	}
	return reflect.Value{}, false
}

// Name returns the name of member v.
func (e *EnumSet) Name(v reflect.Value) (string, bool) {
	x := v.Interface()
	for i, m := range e.Values {
		if m.Interface() == x {
			return e.Names[i], true
		}
	}
	return "", false
}

var enums sync.Map

// Enum registers values as the members of the enumeration T. Member names
// come from fmt.Sprint, so a String method names them.
func Enum[T comparable](values ...T) {
	t := reflect.TypeFor[T]()
	set := &EnumSet{Type: t}
	for _, v := range values {
		set.Values = append(set.Values, reflect.ValueOf(v))
		set.Names = append(set.Names, fmt.Sprint(v))
	}
	enums.Store(t, set)
	cache.Delete(t)
}

func isEnum(t reflect.Type) bool {
	_, ok := enums.Load(t)
	return ok
}

func enumOf(t reflect.Type) *EnumSet {
	v, _ := enums.Load(t)
	return v.(*EnumSet)
}
