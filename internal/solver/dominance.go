package solver

import "solvent/internal/constraint"

// dominanceRule decides whether the last successfully solved choice makes a
// later choice not worth attempting. Rules are consulted in priority order;
// the first applicable rule wins. This ordering is a compatibility-preserving
// policy choice, not a completeness proof: it only ever compares simplified
// single-constraint choices of one disjunction against each other.
type dominanceRule struct {
	name    string
	applies func(current, lastSolved *constraint.Constraint) bool
}

var dominanceRules = []dominanceRule{
	{
		name: "favored-over-unfavored",
		applies: func(current, lastSolved *constraint.Constraint) bool {
			return lastSolved.Favored && !current.Favored
		},
	},
	{
		name: "no-fix-over-fix",
		applies: func(current, lastSolved *constraint.Constraint) bool {
			return current.Fix && !lastSolved.Fix
		},
	},
	{
		name: "non-optional-over-optional-to-optional",
		applies: func(current, _ *constraint.Constraint) bool {
			return current.Restriction == constraint.RestrictionOptionalToOptional
		},
	},
	{
		name: "array-to-pointer-over-inout-to-pointer",
		applies: func(current, lastSolved *constraint.Constraint) bool {
			return lastSolved.Restriction == constraint.RestrictionArrayToPointer &&
				current.Restriction == constraint.RestrictionInoutToPointer
		},
	},
	{
		name: "implicit-conversion-over-checked-cast",
		applies: func(current, _ *constraint.Constraint) bool {
			return current.Kind == constraint.CheckedCast
		},
	},
}

// shortCircuitDisjunctionAt reports whether exploration can stop at current,
// given the last successfully solved choice.
func shortCircuitDisjunctionAt(current, lastSolved *constraint.Constraint, disableHacks bool) bool {
	if disableHacks {
		return false
	}
	for _, rule := range dominanceRules {
		if rule.applies(current, lastSolved) {
			return true
		}
	}
	return false
}
