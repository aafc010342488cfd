package types

import "fmt"

// Protocol identifies a conformance target referenced by constraints.
type Protocol uint8

const (
	ProtocolNone Protocol = iota
	ProtocolEquatable
	ProtocolComparable
	ProtocolNumeric
	// Literal protocols carry a default type used for last-resort bindings.
	ProtocolIntegerLiteral
	ProtocolFloatLiteral
	ProtocolStringLiteral
)

func (p Protocol) String() string {
	switch p {
	case ProtocolNone:
		return "none"
	case ProtocolEquatable:
		return "Equatable"
	case ProtocolComparable:
		return "Comparable"
	case ProtocolNumeric:
		return "Numeric"
	case ProtocolIntegerLiteral:
		return "IntegerLiteral"
	case ProtocolFloatLiteral:
		return "FloatLiteral"
	case ProtocolStringLiteral:
		return "StringLiteral"
	default:
		return fmt.Sprintf("Protocol(%d)", p)
	}
}

// IsLiteral reports whether the protocol supplies a literal default type.
func (p Protocol) IsLiteral() bool {
	switch p {
	case ProtocolIntegerLiteral, ProtocolFloatLiteral, ProtocolStringLiteral:
		return true
	default:
		return false
	}
}

// DefaultType returns the type a literal protocol defaults to, or NoTypeID.
func (p Protocol) DefaultType(b Builtins) TypeID {
	switch p {
	case ProtocolIntegerLiteral:
		return b.Int
	case ProtocolFloatLiteral:
		return b.Double
	case ProtocolStringLiteral:
		return b.String
	default:
		return NoTypeID
	}
}

// Conforms reports whether a builtin kind satisfies the protocol. Composite
// kinds never conform directly.
func (p Protocol) Conforms(t Type) bool {
	switch p {
	case ProtocolNone:
		return true
	case ProtocolEquatable:
		return t.Kind != KindInvalid && t.Kind != KindFunction
	case ProtocolComparable:
		return t.IsNumeric() || t.Kind == KindString
	case ProtocolNumeric:
		return t.IsNumeric()
	case ProtocolIntegerLiteral:
		return t.IsNumeric()
	case ProtocolFloatLiteral:
		return t.Kind == KindFloat || t.Kind == KindDouble
	case ProtocolStringLiteral:
		return t.Kind == KindString
	default:
		return false
	}
}
