package constraint

import (
	"fmt"
	"strings"

	"solvent/internal/types"
)

// Overload describes one candidate declaration referenced by a BindOverload
// constraint.
type Overload struct {
	Name        string
	Type        types.TypeID
	Generic     bool // generic operator candidate
	Symmetric   bool // symmetric operator (both operands share a type)
	Unavailable bool // declaration is marked unavailable
}

// Constraint is a typed relation over one or two terms. Constraints are
// immutable after construction except for the disabled flag, which is
// bookkeeping owned by the graph and scoped solver state.
type Constraint struct {
	Kind        Kind
	First       Term
	Second      Term
	Protocol    types.Protocol // for ConformsTo
	Restriction Restriction    // for Conversion
	Overload    *Overload      // for BindOverload
	Choices     []*Constraint  // for Disjunction, in exploration order

	// Fix marks a constraint whose satisfaction required relaxing
	// strictness; discharging it always succeeds at a score penalty.
	Fix     bool
	Favored bool

	disabled bool
}

// NewBind constructs First := Second.
func NewBind(first, second Term) *Constraint {
	return &Constraint{Kind: Bind, First: first, Second: second}
}

// NewEqual constructs First == Second.
func NewEqual(first, second Term) *Constraint {
	return &Constraint{Kind: Equal, First: first, Second: second}
}

// NewSubtype constructs First <: Second.
func NewSubtype(first, second Term) *Constraint {
	return &Constraint{Kind: Subtype, First: first, Second: second}
}

// NewConversion constructs First convertible-to Second under a restriction.
func NewConversion(first, second Term, r Restriction) *Constraint {
	return &Constraint{Kind: Conversion, First: first, Second: second, Restriction: r}
}

// NewConformsTo constructs First : proto.
func NewConformsTo(first Term, proto types.Protocol) *Constraint {
	return &Constraint{Kind: ConformsTo, First: first, Protocol: proto}
}

// NewCheckedCast constructs First as? Second.
func NewCheckedCast(first, second Term) *Constraint {
	return &Constraint{Kind: CheckedCast, First: first, Second: second}
}

// NewApplicableFunction constructs (First) applied to function Second.
func NewApplicableFunction(arg, fn Term) *Constraint {
	return &Constraint{Kind: ApplicableFunction, First: arg, Second: fn}
}

// NewBindOverload binds tv to one overload candidate.
func NewBindOverload(tv *TypeVariable, ov *Overload) *Constraint {
	if ov == nil {
		panic("solvent: internal error: bind-overload without overload")
	}
	return &Constraint{Kind: BindOverload, First: VarTerm(tv), Overload: ov}
}

// NewValueMember constructs base.member: result.
func NewValueMember(base, result Term, member string) *Constraint {
	c := &Constraint{Kind: ValueMember, First: base, Second: result}
	_ = member // member names are diagnostic-only here
	return c
}

// NewDefaultable allows tv to default to the given concrete type.
func NewDefaultable(tv *TypeVariable, def types.TypeID) *Constraint {
	return &Constraint{Kind: Defaultable, First: VarTerm(tv), Second: TypeTerm(def)}
}

// NewDisjunction constructs a disjunction over the given choices, preserving
// their order.
func NewDisjunction(choices []*Constraint) *Constraint {
	if len(choices) == 0 {
		panic("solvent: internal error: empty disjunction")
	}
	return &Constraint{Kind: Disjunction, Choices: choices}
}

// Disabled reports whether the constraint is excluded from solving.
func (c *Constraint) Disabled() bool { return c.disabled }

// SetDisabled flips the graph-owned exclusion flag.
func (c *Constraint) SetDisabled(v bool) { c.disabled = v }

// IsGenericOperator reports whether the choice binds a generic operator
// overload.
func (c *Constraint) IsGenericOperator() bool {
	return c.Overload != nil && c.Overload.Generic
}

// IsSymmetricOperator reports whether the choice binds a symmetric operator
// overload.
func (c *Constraint) IsSymmetricOperator() bool {
	return c.Overload != nil && c.Overload.Symmetric
}

// IsUnavailable reports whether the choice references an unavailable
// declaration.
func (c *Constraint) IsUnavailable() bool {
	return c.Overload != nil && c.Overload.Unavailable
}

// TypeVars appends the variables the constraint references (transitively
// through disjunction choices) to dst and returns it.
func (c *Constraint) TypeVars(dst []*TypeVariable) []*TypeVariable {
	if c.First.IsVar() {
		dst = append(dst, c.First.Var)
	}
	if c.Second.IsVar() {
		dst = append(dst, c.Second.Var)
	}
	for _, choice := range c.Choices {
		dst = choice.TypeVars(dst)
	}
	return dst
}

// References reports whether the constraint mentions tv.
func (c *Constraint) References(tv *TypeVariable) bool {
	if c.First.Var == tv && tv != nil {
		return true
	}
	if c.Second.Var == tv && tv != nil {
		return true
	}
	for _, choice := range c.Choices {
		if choice.References(tv) {
			return true
		}
	}
	return false
}

func (c *Constraint) String() string {
	switch c.Kind {
	case ConformsTo:
		return fmt.Sprintf("%v : %v", c.First, c.Protocol)
	case BindOverload:
		return fmt.Sprintf("%v := overload %s", c.First, c.Overload.Name)
	case Disjunction:
		parts := make([]string, 0, len(c.Choices))
		for _, choice := range c.Choices {
			parts = append(parts, choice.String())
		}
		return "disjunction(" + strings.Join(parts, " | ") + ")"
	default:
		return fmt.Sprintf("%v %v %v", c.First, c.Kind, c.Second)
	}
}
