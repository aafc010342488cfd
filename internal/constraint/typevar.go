// Package constraint implements the constraint system a solver invocation
// operates on: type variables, typed relations between them, the adjacency
// graph induced by those relations, and reversible scoped snapshots of the
// whole mutable state.
package constraint

import (
	"fmt"

	"solvent/internal/types"
)

// TypeVariable is an opaque identity for an unknown type. Variables are
// created by and owned by a System; identity is pointer identity.
type TypeVariable struct {
	ID   uint32
	Name string
}

func (tv *TypeVariable) String() string {
	if tv.Name != "" {
		return tv.Name
	}
	return fmt.Sprintf("$T%d", tv.ID)
}

// Term is one side of a constraint: either a type variable or a concrete
// type, never both.
type Term struct {
	Var  *TypeVariable
	Type types.TypeID
}

// VarTerm wraps a type variable.
func VarTerm(tv *TypeVariable) Term {
	if tv == nil {
		panic("solvent: internal error: nil type variable term")
	}
	return Term{Var: tv}
}

// TypeTerm wraps a concrete type.
func TypeTerm(id types.TypeID) Term {
	return Term{Type: id}
}

// IsVar reports whether the term is an unresolved type variable.
func (t Term) IsVar() bool { return t.Var != nil }

// IsZero reports an absent term (constraints with a single operand).
func (t Term) IsZero() bool { return t.Var == nil && t.Type == types.NoTypeID }

func (t Term) String() string {
	if t.Var != nil {
		return t.Var.String()
	}
	return fmt.Sprintf("#%d", t.Type)
}
