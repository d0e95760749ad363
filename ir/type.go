package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	StringType
	CharType
	BoolType
	NumberType
	ComplexType
	ListType
	MapType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:    "Null",
		StringType:  "String",
		CharType:    "Char",
		BoolType:    "Bool",
		NumberType:  "Number",
		ComplexType: "Complex",
		ListType:    "List",
		MapType:     "Map",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":    NullType,
		"String":  StringType,
		"Char":    CharType,
		"Bool":    BoolType,
		"Number":  NumberType,
		"Complex": ComplexType,
		"List":    ListType,
		"Map":     MapType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		StringType,
		CharType,
		BoolType,
		NumberType,
		ComplexType,
		ListType,
		MapType,
	}
}

// IsScalar reports whether nodes of type t are scalars.
func (t Type) IsScalar() bool {
	switch t {
	case ListType, MapType:
		return false
	default:
		return true
	}
}
