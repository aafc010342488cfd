package constraint

import (
	"solvent/internal/score"
	"solvent/internal/types"
)

// Bind attempts typeVar := ty and propagates through the active constraint
// set. It reports false when the binding is inconsistent with an active
// constraint; the caller's scope is responsible for rolling back whatever
// was mutated before the inconsistency surfaced.
func (sys *System) Bind(tv *TypeVariable, ty types.TypeID) bool {
	if sys.scopeDepth == 0 {
		panic("solvent: internal error: binding outside a scope")
	}
	return sys.bind(tv, ty)
}

func (sys *System) bind(tv *TypeVariable, ty types.TypeID) bool {
	if have, ok := sys.bindings[tv]; ok {
		return have == ty
	}
	sys.bindings[tv] = ty
	sys.untrack(tv)
	return sys.Simplify()
}

// AttemptChoice activates one disjunction choice in place of its parent
// disjunction and simplifies. Reports false when the choice is inconsistent.
func (sys *System) AttemptChoice(dj, choice *Constraint) bool {
	if sys.scopeDepth == 0 {
		panic("solvent: internal error: attempting a choice outside a scope")
	}
	sys.RemoveConstraint(dj)
	sys.Add(choice)
	return sys.Simplify()
}

// Simplify runs the propagation loop to a fixpoint: constraints whose terms
// are all concrete are evaluated and discharged (folding their cost into the
// running score), and equality-like constraints with exactly one resolved
// side bind the other. Reports false on the first unsatisfiable constraint.
func (sys *System) Simplify() bool {
	for {
		changed := false
		kept := sys.constraints[:0:0]
		rest := sys.constraints
		for i, c := range rest {
			if c.Disabled() || c.Kind == Disjunction {
				kept = append(kept, c)
				continue
			}
			if sys.fullyResolved(c) {
				ok, delta := sys.evaluate(c)
				if !ok {
					if !c.Fix {
						return false
					}
					delta = score.Zero.Bump(score.Fix)
				}
				sys.score = sys.score.Add(delta)
				changed = true
				continue // discharged
			}
			if tv, ty, ok := sys.propagation(c); ok {
				// Restore the active list (c included, so the next pass can
				// evaluate and score it) before re-binding; the nested
				// Simplify restarts the loop.
				sys.constraints = append(kept, rest[i:]...)
				return sys.bind(tv, ty)
			}
			kept = append(kept, c)
		}
		sys.constraints = kept
		if !changed {
			return true
		}
	}
}

// propagation reports a forced binding implied by a half-resolved
// equality-like constraint.
func (sys *System) propagation(c *Constraint) (*TypeVariable, types.TypeID, bool) {
	switch c.Kind {
	case Bind, Equal:
		first, firstOK := sys.resolveTerm(c.First)
		second, secondOK := sys.resolveTerm(c.Second)
		if firstOK && !secondOK {
			return c.Second.Var, first, true
		}
		if secondOK && !firstOK {
			return c.First.Var, second, true
		}
	case BindOverload:
		if _, ok := sys.resolveTerm(c.First); !ok {
			return c.First.Var, c.Overload.Type, true
		}
	}
	return nil, types.NoTypeID, false
}

// resolveTerm maps a term to a concrete type via current bindings.
func (sys *System) resolveTerm(t Term) (types.TypeID, bool) {
	if t.Var != nil {
		ty, ok := sys.bindings[t.Var]
		return ty, ok
	}
	return t.Type, t.Type != types.NoTypeID
}

// evaluate checks a fully resolved constraint and returns the score delta
// its satisfaction costs.
func (sys *System) evaluate(c *Constraint) (bool, score.Score) {
	first, _ := sys.resolveTerm(c.First)
	var second types.TypeID
	if !c.Second.IsZero() {
		second, _ = sys.resolveTerm(c.Second)
	}

	switch c.Kind {
	case Bind, Equal:
		return first == second, score.Zero

	case Subtype, Conversion:
		return sys.convertible(first, second)

	case ConformsTo:
		desc := sys.Interner.MustLookup(first)
		return c.Protocol.Conforms(desc), score.Zero

	case CheckedCast:
		return sys.castable(first, second)

	case ApplicableFunction:
		fn := sys.Interner.MustLookup(second)
		if fn.Kind != types.KindFunction {
			return false, score.Zero
		}
		return sys.convertible(first, fn.Arg)

	case BindOverload:
		if first != c.Overload.Type {
			return false, score.Zero
		}
		delta := score.Zero
		if c.Overload.Unavailable {
			delta = delta.Bump(score.Unavailable)
		}
		return true, delta

	case ValueMember, UnresolvedValueMember:
		// Member lookup proper belongs to the constraint generator; at this
		// level a concrete base satisfies the relation.
		return true, score.Zero

	case Defaultable:
		return true, score.Zero

	default:
		panic("solvent: internal error: evaluating " + c.Kind.String())
	}
}

// convertible implements the implicit conversion lattice with its score
// penalties.
func (sys *System) convertible(from, to types.TypeID) (bool, score.Score) {
	if from == to {
		return true, score.Zero
	}
	f := sys.Interner.MustLookup(from)
	t := sys.Interner.MustLookup(to)

	// Injection into optionals, including optional-to-optional.
	if t.Kind == types.KindOptional {
		if f.Kind == types.KindOptional {
			if ok, delta := sys.convertible(f.Elem, t.Elem); ok {
				return true, delta.BumpValue(1)
			}
			return false, score.Zero
		}
		if ok, delta := sys.convertible(from, t.Elem); ok {
			return true, delta.Bump(score.ValueToOptional)
		}
		return false, score.Zero
	}

	// Numeric widening.
	if f.IsNumeric() && t.IsNumeric() && numericWidens(f.Kind, t.Kind) {
		return true, score.Zero.BumpValue(1)
	}

	// Pointer conversions.
	if t.Kind == types.KindPointer {
		switch f.Kind {
		case types.KindArray:
			if f.Elem == t.Elem {
				return true, score.Zero.BumpValue(1)
			}
		case types.KindString:
			return true, score.Zero.BumpValue(1)
		case types.KindInout:
			if f.Elem == t.Elem {
				return true, score.Zero.BumpValue(1)
			}
		}
		return false, score.Zero
	}

	// Function conversions: contravariant argument, covariant result.
	if f.Kind == types.KindFunction && t.Kind == types.KindFunction {
		argOK, argDelta := sys.convertible(t.Arg, f.Arg)
		if !argOK {
			return false, score.Zero
		}
		resOK, resDelta := sys.convertible(f.Elem, t.Elem)
		if !resOK {
			return false, score.Zero
		}
		return true, argDelta.Add(resDelta).Bump(score.FunctionConversion)
	}

	return false, score.Zero
}

// numericWidens reports lossless numeric widening.
func numericWidens(from, to types.Kind) bool {
	switch from {
	case types.KindInt, types.KindUint:
		return to == types.KindFloat || to == types.KindDouble
	case types.KindFloat:
		return to == types.KindDouble
	default:
		return false
	}
}

// castable implements checked casts: any non-function value cast carries a
// base cost, forced unwrap of an optional counts separately.
func (sys *System) castable(from, to types.TypeID) (bool, score.Score) {
	f := sys.Interner.MustLookup(from)
	t := sys.Interner.MustLookup(to)
	if f.Kind == types.KindInvalid || t.Kind == types.KindInvalid {
		return false, score.Zero
	}
	if f.Kind == types.KindFunction || t.Kind == types.KindFunction {
		return false, score.Zero
	}
	if f.Kind == types.KindOptional && t.Kind != types.KindOptional {
		// Casting away optionality forces an unchecked unwrap.
		return true, score.Zero.Bump(score.ForceUnchecked).BumpValue(1)
	}
	return true, score.Zero.BumpValue(1)
}
