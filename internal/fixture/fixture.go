// Package fixture loads constraint problems from TOML files. A fixture
// declares type variables, a constraint list (disjunctions nest one level of
// choices), solver options, and an optional expect block that batch runs
// verify against.
package fixture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"solvent/internal/constraint"
	"solvent/internal/types"
)

// Options mirror the solver knobs a fixture may set.
type Options struct {
	AllowFreeTypeVariables  bool `toml:"allow-free-type-variables"`
	DiagnosticMode          bool `toml:"diagnostic"`
	DisablePerformanceHacks bool `toml:"disable-performance-hacks"`
}

// ConstraintSpec is the TOML form of one constraint. Terms are either a type
// expression ("int", "[double]?") or a variable reference ("$T0").
type ConstraintSpec struct {
	Kind        string `toml:"kind"`
	First       string `toml:"first"`
	Second      string `toml:"second"`
	Protocol    string `toml:"protocol"`
	Restriction string `toml:"restriction"`
	Favored     bool   `toml:"favored"`
	Fix         bool   `toml:"fix"`

	// Overload fields, for kind = "overload".
	Name        string `toml:"name"`
	Type        string `toml:"type"`
	Generic     bool   `toml:"generic"`
	Symmetric   bool   `toml:"symmetric"`
	Unavailable bool   `toml:"unavailable"`

	// Choices, for kind = "disjunction".
	Choices []ConstraintSpec `toml:"choices"`
}

// Expect describes the outcome a fixture's author asserts.
type Expect struct {
	Solvable  bool              `toml:"solvable"`
	Solutions int64             `toml:"solutions"`
	Bindings  map[string]string `toml:"bindings"`
	Score     string            `toml:"score"`
}

// Fixture is one problem file.
type Fixture struct {
	Name        string           `toml:"name"`
	Vars        []string         `toml:"vars"`
	Options     Options          `toml:"options"`
	Constraints []ConstraintSpec `toml:"constraints"`
	Expect      *Expect          `toml:"expect"`
}

// ErrNoConstraints indicates a fixture with an empty constraint list.
var ErrNoConstraints = errors.New("fixture declares no constraints")

// Load parses a fixture from a TOML file.
func Load(path string) (*Fixture, error) {
	var f Fixture
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if f.Name == "" {
		f.Name = path
	}
	if len(f.Constraints) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoConstraints)
	}
	return &f, nil
}

// Build materializes the fixture into a fresh constraint system and returns
// the declared variables by name.
func (f *Fixture) Build() (*constraint.System, map[string]*constraint.TypeVariable, error) {
	sys := constraint.NewSystem(nil)
	vars := make(map[string]*constraint.TypeVariable, len(f.Vars))
	for _, name := range f.Vars {
		if name == "" {
			return nil, nil, fmt.Errorf("fixture %q: empty variable name", f.Name)
		}
		if _, dup := vars[name]; dup {
			return nil, nil, fmt.Errorf("fixture %q: duplicate variable %q", f.Name, name)
		}
		vars[name] = sys.NewTypeVariable(name)
	}

	b := &builder{fixture: f, sys: sys, vars: vars}
	for i := range f.Constraints {
		c, err := b.constraint(&f.Constraints[i])
		if err != nil {
			return nil, nil, err
		}
		sys.Add(c)
	}
	return sys, vars, nil
}

type builder struct {
	fixture *Fixture
	sys     *constraint.System
	vars    map[string]*constraint.TypeVariable
}

func (b *builder) constraint(spec *ConstraintSpec) (*constraint.Constraint, error) {
	var c *constraint.Constraint
	var err error

	switch spec.Kind {
	case "bind":
		c, err = b.binary(spec, constraint.NewBind)
	case "equal":
		c, err = b.binary(spec, constraint.NewEqual)
	case "subtype":
		c, err = b.binary(spec, constraint.NewSubtype)
	case "checked-cast":
		c, err = b.binary(spec, constraint.NewCheckedCast)
	case "applicable-fn":
		c, err = b.binary(spec, constraint.NewApplicableFunction)
	case "conversion":
		r, rerr := parseRestriction(spec.Restriction)
		if rerr != nil {
			err = rerr
			break
		}
		c, err = b.binary(spec, func(first, second constraint.Term) *constraint.Constraint {
			return constraint.NewConversion(first, second, r)
		})
	case "conforms":
		first, terr := b.term(spec.First)
		if terr != nil {
			err = terr
			break
		}
		proto, perr := parseProtocol(spec.Protocol)
		if perr != nil {
			err = perr
			break
		}
		c = constraint.NewConformsTo(first, proto)
	case "defaultable":
		tv, verr := b.variable(spec.First)
		if verr != nil {
			err = verr
			break
		}
		ty, terr := ParseType(b.sys.Interner, spec.Second)
		if terr != nil {
			err = terr
			break
		}
		c = constraint.NewDefaultable(tv, ty)
	case "overload":
		tv, verr := b.variable(spec.First)
		if verr != nil {
			err = verr
			break
		}
		ty, terr := ParseType(b.sys.Interner, spec.Type)
		if terr != nil {
			err = terr
			break
		}
		c = constraint.NewBindOverload(tv, &constraint.Overload{
			Name:        spec.Name,
			Type:        ty,
			Generic:     spec.Generic,
			Symmetric:   spec.Symmetric,
			Unavailable: spec.Unavailable,
		})
	case "disjunction":
		if len(spec.Choices) == 0 {
			err = errors.New("disjunction without choices")
			break
		}
		choices := make([]*constraint.Constraint, 0, len(spec.Choices))
		for i := range spec.Choices {
			choice, cerr := b.constraint(&spec.Choices[i])
			if cerr != nil {
				err = cerr
				break
			}
			if choice.Kind == constraint.Disjunction {
				err = errors.New("nested disjunctions are not supported")
				break
			}
			choices = append(choices, choice)
		}
		if err == nil {
			c = constraint.NewDisjunction(choices)
		}
	default:
		err = fmt.Errorf("unknown constraint kind %q", spec.Kind)
	}

	if err != nil {
		return nil, fmt.Errorf("fixture %q: %w", b.fixture.Name, err)
	}
	c.Favored = spec.Favored
	c.Fix = spec.Fix
	return c, nil
}

func (b *builder) binary(spec *ConstraintSpec, make func(first, second constraint.Term) *constraint.Constraint) (*constraint.Constraint, error) {
	first, err := b.term(spec.First)
	if err != nil {
		return nil, err
	}
	second, err := b.term(spec.Second)
	if err != nil {
		return nil, err
	}
	return make(first, second), nil
}

// term resolves "$name" to a variable term and anything else to a type term.
func (b *builder) term(s string) (constraint.Term, error) {
	if strings.HasPrefix(s, "$") {
		tv, err := b.variable(s)
		if err != nil {
			return constraint.Term{}, err
		}
		return constraint.VarTerm(tv), nil
	}
	ty, err := ParseType(b.sys.Interner, s)
	if err != nil {
		return constraint.Term{}, err
	}
	return constraint.TypeTerm(ty), nil
}

func (b *builder) variable(s string) (*constraint.TypeVariable, error) {
	name, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, fmt.Errorf("expected a variable reference, got %q", s)
	}
	tv, ok := b.vars[name]
	if !ok {
		return nil, fmt.Errorf("undeclared variable %q", name)
	}
	return tv, nil
}

func parseProtocol(s string) (types.Protocol, error) {
	switch s {
	case "Equatable":
		return types.ProtocolEquatable, nil
	case "Comparable":
		return types.ProtocolComparable, nil
	case "Numeric":
		return types.ProtocolNumeric, nil
	case "IntegerLiteral":
		return types.ProtocolIntegerLiteral, nil
	case "FloatLiteral":
		return types.ProtocolFloatLiteral, nil
	case "StringLiteral":
		return types.ProtocolStringLiteral, nil
	default:
		return types.ProtocolNone, fmt.Errorf("unknown protocol %q", s)
	}
}

func parseRestriction(s string) (constraint.Restriction, error) {
	switch s {
	case "", "none":
		return constraint.RestrictionNone, nil
	case "deep-equality":
		return constraint.RestrictionDeepEquality, nil
	case "value-to-optional":
		return constraint.RestrictionValueToOptional, nil
	case "optional-to-optional":
		return constraint.RestrictionOptionalToOptional, nil
	case "array-to-pointer":
		return constraint.RestrictionArrayToPointer, nil
	case "string-to-pointer":
		return constraint.RestrictionStringToPointer, nil
	case "inout-to-pointer":
		return constraint.RestrictionInoutToPointer, nil
	default:
		return constraint.RestrictionNone, fmt.Errorf("unknown restriction %q", s)
	}
}
