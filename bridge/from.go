package bridge

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/signadot/korm-format/go-korm/ir"
)

// FromYAML decodes a YAML document into a node, keeping mapping order.
func FromYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return FromAny(v)
}

// FromJSON decodes a JSON document into a node, keeping object order.
func FromJSON(d []byte) (*ir.Node, error) {
	if !json.Valid(d) {
		return nil, fmt.Errorf("%w: invalid json", ErrConvert)
	}
	return FromYAML(d)
}

// FromAny converts a plain Go value into a node. It accepts the forms
// produced by YAML and JSON decoding as well as *ir.Node values.
func FromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case *ir.Node:
		return x.Clone(), nil
	case string:
		return ir.FromString(x), nil
	case bool:
		return ir.FromBool(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int8:
		return ir.FromInt(int64(x)), nil
	case int16:
		return ir.FromInt(int64(x)), nil
	case int32:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint:
		return ir.FromUint(uint64(x)), nil
	case uint8:
		return ir.FromUint(uint64(x)), nil
	case uint16:
		return ir.FromUint(uint64(x)), nil
	case uint32:
		return ir.FromUint(uint64(x)), nil
	case uint64:
		return ir.FromUint(x), nil
	case float32:
		return ir.FromFloat(float64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case json.Number:
		return ir.FromNumber(string(x)), nil
	case time.Time:
		return ir.FromString(x.Format(time.RFC3339Nano)), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	case yaml.MapSlice:
		entries := make([]*ir.Node, 0, len(x))
		for _, item := range x {
			e, err := entry(item.Key, item.Value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		return ir.FromEntries(entries), nil
	case map[string]any:
		entries := make([]*ir.Node, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			e, err := entry(k, x[k])
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		return ir.FromEntries(entries), nil
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) (*ir.Node, error) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		vals := make([]*ir.Node, rv.Len())
		for i := range vals {
			n, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
		entries := make([]*ir.Node, 0, len(keys))
		for _, k := range keys {
			e, err := entry(k.String(), rv.MapIndex(k).Interface())
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		return ir.FromEntries(entries), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return ir.Null(), nil
		}
		return FromAny(rv.Elem().Interface())
	}
	return nil, fmt.Errorf("%w: unsupported value of type %s", ErrConvert, rv.Type())
}

func entry(k, v any) (*ir.Node, error) {
	key, err := FromAny(k)
	if err != nil {
		return nil, err
	}
	if !key.Type.IsScalar() {
		return nil, fmt.Errorf("%w: %s key", ErrConvert, key.Type)
	}
	val, err := FromAny(v)
	if err != nil {
		return nil, err
	}
	return ir.Keyed(key, val), nil
}
