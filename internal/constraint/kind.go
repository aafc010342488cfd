package constraint

import "fmt"

// Kind identifies the relation a constraint imposes.
type Kind uint8

const (
	// Bind requires the first term to be exactly the second.
	Bind Kind = iota
	// Equal requires both terms to resolve to the same type.
	Equal
	// Subtype requires the first term to be a subtype of the second.
	Subtype
	// Conversion requires the first term to convert to the second.
	Conversion
	// ConformsTo requires the term to satisfy a protocol.
	ConformsTo
	// CheckedCast requires a runtime-checked cast between the terms.
	CheckedCast
	// ApplicableFunction requires the second term to be a function callable
	// with the first term as its argument shape.
	ApplicableFunction
	// BindOverload binds the term to one concrete overload candidate.
	BindOverload
	// ValueMember requires the base term to expose a member of the result
	// term's type.
	ValueMember
	// UnresolvedValueMember is ValueMember with an unresolved base.
	UnresolvedValueMember
	// Defaultable allows the term to fall back to the second term's type
	// when nothing else binds it.
	Defaultable
	// Disjunction holds an ordered set of alternative child constraints,
	// exactly one of which must eventually hold.
	Disjunction
)

func (k Kind) String() string {
	switch k {
	case Bind:
		return "bind"
	case Equal:
		return "equal"
	case Subtype:
		return "subtype"
	case Conversion:
		return "conversion"
	case ConformsTo:
		return "conforms-to"
	case CheckedCast:
		return "checked-cast"
	case ApplicableFunction:
		return "applicable-fn"
	case BindOverload:
		return "bind-overload"
	case ValueMember:
		return "value-member"
	case UnresolvedValueMember:
		return "unresolved-value-member"
	case Defaultable:
		return "defaultable"
	case Disjunction:
		return "disjunction"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Classification buckets constraint kinds for the free-type-variable leaf
// check: only Relational and Member constraints may remain active when a
// component is finalized with unbound variables.
type Classification uint8

const (
	ClassRelational Classification = iota
	ClassMember
	ClassTypeProperty
	ClassDisjunction
)

func (c Classification) String() string {
	switch c {
	case ClassRelational:
		return "relational"
	case ClassMember:
		return "member"
	case ClassTypeProperty:
		return "type-property"
	case ClassDisjunction:
		return "disjunction"
	default:
		return fmt.Sprintf("Classification(%d)", c)
	}
}

// Classification returns the bucket for a kind.
func (k Kind) Classification() Classification {
	switch k {
	case Bind, Equal, Subtype, Conversion, CheckedCast, ApplicableFunction, BindOverload:
		return ClassRelational
	case ValueMember, UnresolvedValueMember:
		return ClassMember
	case ConformsTo, Defaultable:
		return ClassTypeProperty
	case Disjunction:
		return ClassDisjunction
	default:
		panic(fmt.Sprintf("solvent: internal error: unclassified constraint kind %v", k))
	}
}

// Restriction tags a conversion constraint with the specific implicit
// conversion path it represents. Restrictions participate in the disjunction
// dominance rules and in scoring.
type Restriction uint8

const (
	RestrictionNone Restriction = iota
	RestrictionDeepEquality
	RestrictionValueToOptional
	RestrictionOptionalToOptional
	RestrictionArrayToPointer
	RestrictionStringToPointer
	RestrictionInoutToPointer
)

func (r Restriction) String() string {
	switch r {
	case RestrictionNone:
		return "none"
	case RestrictionDeepEquality:
		return "deep-equality"
	case RestrictionValueToOptional:
		return "value-to-optional"
	case RestrictionOptionalToOptional:
		return "optional-to-optional"
	case RestrictionArrayToPointer:
		return "array-to-pointer"
	case RestrictionStringToPointer:
		return "string-to-pointer"
	case RestrictionInoutToPointer:
		return "inout-to-pointer"
	default:
		return fmt.Sprintf("Restriction(%d)", r)
	}
}
