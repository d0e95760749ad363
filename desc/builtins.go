package desc

import (
	"iter"
	"reflect"
)

// Char is a single character. Runes are numbers; Char values are
// written as 'c'.
type Char rune

// Meta carries type level options in its korm tag when embedded.
type Meta struct{}

// Pair is read from and written as the entries first and second.
type Pair[A, B any] struct {
	First  A `korm:"field=first"`
	Second B `korm:"field=second"`
}

// Entry is read from and written as the entries key and value.
type Entry[K, V any] struct {
	Key   K `korm:"field=key"`
	Value V `korm:"field=value"`
}

// Ordered is implemented by pointers to map types that keep insertion order.
type Ordered interface {
	OrderedTypes() (key, val reflect.Type)
	SetValue(k, v reflect.Value)
	RangeValues(f func(k, v reflect.Value) bool)
}

// OrderedMap is a map which remembers the order in which keys were first set.
type OrderedMap[K comparable, V any] struct {
	keys []K
	vals map[K]V
}

func (m *OrderedMap[K, V]) Set(k K, v V) {
	if m.vals == nil {
		m.vals = map[K]V{}
	}
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
}

func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

func (m *OrderedMap[K, V]) Keys() []K {
	return m.keys
}

func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

func (m *OrderedMap[K, V]) OrderedTypes() (reflect.Type, reflect.Type) {
	return reflect.TypeFor[K](), reflect.TypeFor[V]()
}

func (m *OrderedMap[K, V]) SetValue(k, v reflect.Value) {
	var key K
	var val V
	reflect.ValueOf(&key).Elem().Set(k)
	if v.IsValid() {
		reflect.ValueOf(&val).Elem().Set(v)
	}
	m.Set(key, val)
}

func (m *OrderedMap[K, V]) RangeValues(f func(k, v reflect.Value) bool) {
	for _, k := range m.keys {
		val := m.vals[k]
		if !f(reflect.ValueOf(&k).Elem(), reflect.ValueOf(&val).Elem()) {
			return
		}
	}
}
