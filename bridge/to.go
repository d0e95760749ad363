package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/signadot/korm-format/go-korm/ir"
)

var ErrConvert = errors.New("conversion error")

// ToAny converts a node into plain Go values: string, int64, float64,
// bool, nil, []any and map[string]any. Chars and complex payloads become
// strings, integers beyond int64 keep their text. The first of
// duplicated keys wins.
func ToAny(node *ir.Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ir.StringType, ir.ComplexType:
		return node.String
	case ir.CharType:
		return string(node.Char)
	case ir.BoolType:
		return node.Bool
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if isInt(node.Number) || node.Float64 == nil {
			return node.Number
		}
		return *node.Float64
	case ir.ListType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToAny(v)
		}
		return res
	case ir.MapType:
		res := make(map[string]any, len(node.Values))
		for _, v := range node.Values {
			k := v.Key.KeyText()
			if _, dup := res[k]; dup {
				continue
			}
			res[k] = ToAny(v)
		}
		return res
	}
	return nil
}

func isInt(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ToJSON encodes a node as compact JSON keeping the order of map entries.
// Keys are written as their text; non-finite numbers are an error.
func ToJSON(node *ir.Node) ([]byte, error) {
	v, err := jsonValue(node)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// object is a JSON object which keeps the order of its members.
type object []member

type member struct {
	key string
	val any
}

func (o object) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.val)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonValue(node *ir.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Type {
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64, nil
		case isInt(node.Number) && node.Number[0] != '+':
			return json.Number(node.Number), nil
		case node.Float64 != nil && !math.IsNaN(*node.Float64) && !math.IsInf(*node.Float64, 0):
			return *node.Float64, nil
		}
		return nil, fmt.Errorf("%w: %s at %s is not a json number", ErrConvert, node.Number, node.Path())
	case ir.ListType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			x, err := jsonValue(v)
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	case ir.MapType:
		res := make(object, 0, len(node.Values))
		seen := make(map[string]bool, len(node.Values))
		for _, v := range node.Values {
			k := v.Key.KeyText()
			if seen[k] {
				continue
			}
			seen[k] = true
			x, err := jsonValue(v)
			if err != nil {
				return nil, err
			}
			res = append(res, member{key: k, val: x})
		}
		return res, nil
	}
	return ToAny(node), nil
}
