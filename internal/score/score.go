// Package score implements the multi-dimensional cost vector used to rank
// candidate solutions and prune dominated branches during constraint solving.
package score

import (
	"fmt"
	"strings"
)

// Kind indexes one dimension of the score vector. Declaration order is the
// default severity order: earlier kinds dominate later ones when comparing.
type Kind uint8

const (
	// Unavailable counts uses of unavailable overload choices.
	Unavailable Kind = iota
	// Fix counts relaxations applied to make a constraint satisfiable.
	Fix
	// ForceUnchecked counts forced unwraps of optional values.
	ForceUnchecked
	// FunctionConversion counts non-trivial function conversions.
	FunctionConversion
	// ValueToOptional counts implicit injections into optionals.
	ValueToOptional

	NumKinds
)

func (k Kind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case Fix:
		return "fix"
	case ForceUnchecked:
		return "force-unchecked"
	case FunctionConversion:
		return "function-conversion"
	case ValueToOptional:
		return "value-to-optional"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Score is a value-type cost vector: per-kind counters plus a base cost that
// breaks ties between otherwise identical vectors.
type Score struct {
	Data  [NumKinds]uint32
	Value uint32
}

// Zero is the empty score.
var Zero Score

// Bump returns a copy with one dimension incremented.
func (s Score) Bump(k Kind) Score {
	s.Data[k]++
	return s
}

// BumpValue returns a copy with the base cost increased by n.
func (s Score) BumpValue(n uint32) Score {
	s.Value += n
	return s
}

// Add returns the component-wise sum of two scores.
func (s Score) Add(o Score) Score {
	for i := range s.Data {
		s.Data[i] += o.Data[i]
	}
	s.Value += o.Value
	return s
}

// Sub returns the component-wise difference s-o. Panics on underflow: a
// partial solution's score always contains its baseline.
func (s Score) Sub(o Score) Score {
	for i := range s.Data {
		if s.Data[i] < o.Data[i] {
			panic(fmt.Sprintf("solvent: internal error: score underflow at %v (%d < %d)",
				Kind(i), s.Data[i], o.Data[i]))
		}
		s.Data[i] -= o.Data[i]
	}
	if s.Value < o.Value {
		panic("solvent: internal error: score value underflow")
	}
	s.Value -= o.Value
	return s
}

// IsZero reports whether every dimension and the base cost are zero.
func (s Score) IsZero() bool {
	return s == Zero
}

// String renders only the non-zero dimensions, e.g. "[fix=1 value=3]".
func (s Score) String() string {
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for i, v := range s.Data {
		if v == 0 {
			continue
		}
		if !first {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v=%d", Kind(i), v)
		first = false
	}
	if s.Value != 0 {
		if !first {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "value=%d", s.Value)
		first = false
	}
	if first {
		b.WriteString("zero")
	}
	b.WriteByte(']')
	return b.String()
}
