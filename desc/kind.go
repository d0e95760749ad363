package desc

type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindChar
	KindUUID
	KindEnum
	KindBigInt
	KindBigFloat
	KindText
	KindNode
	KindAny
	KindInterface
	KindPointer
	KindArray
	KindSlice
	KindMap
	KindOrderedMap
	KindStruct
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		KindInvalid:    "Invalid",
		KindBool:       "Bool",
		KindInt:        "Int",
		KindUint:       "Uint",
		KindFloat:      "Float",
		KindString:     "String",
		KindChar:       "Char",
		KindUUID:       "UUID",
		KindEnum:       "Enum",
		KindBigInt:     "BigInt",
		KindBigFloat:   "BigFloat",
		KindText:       "Text",
		KindNode:       "Node",
		KindAny:        "Any",
		KindInterface:  "Interface",
		KindPointer:    "Pointer",
		KindArray:      "Array",
		KindSlice:      "Slice",
		KindMap:        "Map",
		KindOrderedMap: "OrderedMap",
		KindStruct:     "Struct",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// IsScalar reports whether values of kind k are written as a single scalar.
func (k Kind) IsScalar() bool {
	switch k {
	case KindBool, KindInt, KindUint, KindFloat, KindString, KindChar, KindUUID, KindEnum, KindBigInt, KindBigFloat, KindText:
		return true
	}
	return false
}
