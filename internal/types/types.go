package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindUint
	KindFloat
	KindDouble
	KindString
	KindOptional
	KindPointer
	KindArray
	KindInout
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindOptional:
		return "optional"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	case KindInout:
		return "inout"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind Kind
	Elem TypeID // element for optional/pointer/array/inout, result for functions
	Arg  TypeID // parameter for functions
}

// Descriptor helpers ---------------------------------------------------------

// MakeOptional describes T?.
func MakeOptional(elem TypeID) Type {
	return Type{Kind: KindOptional, Elem: elem}
}

// MakePointer describes an unsafe pointer to element type.
func MakePointer(elem TypeID) Type {
	return Type{Kind: KindPointer, Elem: elem}
}

// MakeArray describes an array of element type.
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}

// MakeInout describes an inout slot of element type.
func MakeInout(elem TypeID) Type {
	return Type{Kind: KindInout, Elem: elem}
}

// MakeFunction describes a single-parameter function shape.
func MakeFunction(arg, result TypeID) Type {
	return Type{Kind: KindFunction, Arg: arg, Elem: result}
}

// IsNumeric reports whether the kind is a numeric primitive.
func (t Type) IsNumeric() bool {
	switch t.Kind {
	case KindInt, KindUint, KindFloat, KindDouble:
		return true
	default:
		return false
	}
}
