package gomap

import (
	"encoding"
	"math"
	"math/big"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/signadot/korm-format/go-korm/desc"
	"github.com/signadot/korm-format/go-korm/ir"
	"github.com/signadot/korm-format/go-korm/token"
)

func mapScalar(node *ir.Node, d *desc.Descriptor) (reflect.Value, bool) {
	t := d.Type
	if !node.Type.IsScalar() {
		return miss(node, t, "not a scalar")
	}
	res := reflect.New(t).Elem()
	switch d.Kind {
	case desc.KindString:
		s, ok := stringOf(node)
		if !ok {
			return miss(node, t, "no text")
		}
		res.SetString(s)
	case desc.KindChar:
		switch node.Type {
		case ir.CharType:
			res.SetInt(int64(node.Char))
		case ir.StringType:
			r, n := utf8.DecodeRuneInString(node.String)
			if n == 0 {
				return miss(node, t, "empty string")
			}
			res.SetInt(int64(r))
		default:
			return miss(node, t, "not a character")
		}
	case desc.KindBool:
		switch node.Type {
		case ir.BoolType:
			res.SetBool(node.Bool)
		case ir.StringType:
			switch strings.ToLower(node.String) {
			case "true":
				res.SetBool(true)
			case "false":
			default:
				return miss(node, t, "not a boolean")
			}
		default:
			return miss(node, t, "not a boolean")
		}
	case desc.KindInt:
		num, ok := numberOf(node)
		if !ok {
			return miss(node, t, "not a number")
		}
		res.SetInt(toInt64(num))
	case desc.KindUint:
		num, ok := numberOf(node)
		if !ok {
			return miss(node, t, "not a number")
		}
		res.SetUint(toUint64(num))
	case desc.KindFloat:
		num, ok := numberOf(node)
		if !ok {
			return miss(node, t, "not a number")
		}
		res.SetFloat(toFloat64(num))
	case desc.KindUUID:
		if node.Type != ir.StringType {
			return miss(node, t, "not a string")
		}
		u, err := uuid.Parse(node.String)
		if err != nil {
			return miss(node, t, err.Error())
		}
		res.Set(reflect.ValueOf(u))
	case desc.KindEnum:
		s, ok := stringOf(node)
		if !ok {
			return miss(node, t, "no name")
		}
		v, ok := d.Enum.Lookup(s)
		if !ok {
			return miss(node, t, "no member named "+s)
		}
		res.Set(v)
	case desc.KindBigInt:
		num, ok := numberOf(node)
		if !ok {
			return miss(node, t, "not a number")
		}
		bi, ok := new(big.Int).SetString(num.Number, 10)
		if !ok {
			bf, _, err := big.ParseFloat(num.Number, 10, 0, big.ToNearestEven)
			if err != nil {
				return miss(node, t, err.Error())
			}
			bi, _ = bf.Int(nil)
		}
		p := reflect.New(t)
		p.Interface().(*big.Int).Set(bi)
		return p.Elem(), true
	case desc.KindBigFloat:
		num, ok := numberOf(node)
		if !ok {
			return miss(node, t, "not a number")
		}
		bf, _, err := big.ParseFloat(num.Number, 10, 0, big.ToNearestEven)
		if err != nil {
			return miss(node, t, err.Error())
		}
		p := reflect.New(t)
		p.Interface().(*big.Float).Set(bf)
		return p.Elem(), true
	case desc.KindText:
		s, ok := stringOf(node)
		if !ok {
			return miss(node, t, "no text")
		}
		p := reflect.New(t)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return miss(node, t, err.Error())
		}
		return p.Elem(), true
	default:
		return miss(node, t, "unexpected kind "+d.Kind.String())
	}
	return res, true
}

// stringOf returns the text of a scalar node.
func stringOf(node *ir.Node) (string, bool) {
	switch node.Type {
	case ir.StringType, ir.ComplexType:
		return node.String, true
	case ir.CharType:
		return string(node.Char), true
	case ir.NumberType, ir.BoolType:
		return node.KeyText(), true
	}
	return "", false
}

// numberOf returns node as a number node. Strings holding a number are
// converted.
func numberOf(node *ir.Node) (*ir.Node, bool) {
	switch node.Type {
	case ir.NumberType:
		return node, true
	case ir.StringType:
		s := strings.TrimSpace(node.String)
		switch token.Classify([]byte(s)) {
		case token.TInteger, token.TFloat:
			return ir.FromNumber(s), true
		}
	}
	return nil, false
}

var mask64 = new(big.Int).SetUint64(math.MaxUint64)

// toInt64 narrows a number. Floats are truncated toward zero and saturate
// at the int64 range, NaN is 0, and integers too large for int64 keep
// their low 64 bits.
func toInt64(num *ir.Node) int64 {
	if num.Int64 != nil {
		return *num.Int64
	}
	if isIntText(num.Number) {
		if bi, ok := new(big.Int).SetString(num.Number, 10); ok {
			return int64(new(big.Int).And(bi, mask64).Uint64())
		}
	}
	return floatToInt64(toFloat64(num))
}

func floatToInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// toUint64 is toInt64 for unsigned targets. Floats saturate at the uint64
// range instead.
func toUint64(num *ir.Node) uint64 {
	if num.Int64 != nil {
		return uint64(*num.Int64)
	}
	if isIntText(num.Number) {
		if bi, ok := new(big.Int).SetString(num.Number, 10); ok {
			return new(big.Int).And(bi, mask64).Uint64()
		}
	}
	return floatToUint64(toFloat64(num))
}

func floatToUint64(f float64) uint64 {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= math.MaxUint64:
		return math.MaxUint64
	}
	return uint64(f)
}

func toFloat64(num *ir.Node) float64 {
	switch {
	case num.Float64 != nil:
		return *num.Float64
	case num.Int64 != nil:
		return float64(*num.Int64)
	}
	bf, _, err := big.ParseFloat(num.Number, 10, 64, big.ToNearestEven)
	if err != nil {
		return math.NaN()
	}
	f, _ := bf.Float64()
	return f
}

func isIntText(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
