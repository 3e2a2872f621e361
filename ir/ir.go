// Package ir defines the intermediate result produced for a single utility
// token before composition.
package ir

import (
	"fmt"

	"twstyle/style"
)

// Kind enumerates IR variants.
type Kind int

const (
	Null Kind = iota
	Complete
	Dependent
	Ordered
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Complete:
		return "complete"
	case Dependent:
		return "dependent"
	case Ordered:
		return "ordered"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Finalizer mutates the fully merged style. It must capture only immutable
// values since cached IR is replayed for every resolution. A returned error is
// a non-fatal diagnostic; the finalizer is expected to leave the map
// unchanged in that case.
type Finalizer func(*style.Style) error

// IR is the per-token resolution result.
type IR struct {
	kind     Kind
	style    *style.Style
	finalize Finalizer
	weight   int
	inner    *IR
}

// None is the null result.
var None = IR{}

// Of wraps a finished style. A nil or empty style yields None.
func Of(s *style.Style) IR {
	if s.Len() == 0 {
		return None
	}
	return IR{kind: Complete, style: s}
}

// Prop is a shorthand for a Complete IR with a single property.
func Prop(key string, v style.Value) IR {
	s := style.New()
	s.Set(key, v)
	return IR{kind: Complete, style: s}
}

// Defer wraps a finalizer.
func Defer(fn Finalizer) IR {
	if fn == nil {
		return None
	}
	return IR{kind: Dependent, finalize: fn}
}

// Weighted wraps a Complete or Dependent IR with a merge weight. Null and
// already ordered inputs are returned as is.
func Weighted(weight int, inner IR) IR {
	switch inner.kind {
	case Complete, Dependent:
		in := inner
		return IR{kind: Ordered, weight: weight, inner: &in}
	}
	return inner
}

func (r IR) Kind() Kind { return r.kind }

// IsNull reports whether r contributes nothing.
func (r IR) IsNull() bool { return r.kind == Null }

// Style returns the payload of a Complete IR.
func (r IR) Style() *style.Style { return r.style }

// Finalizer returns the payload of a Dependent IR.
func (r IR) Finalizer() Finalizer { return r.finalize }

// Weight returns the weight of an Ordered IR.
func (r IR) Weight() int { return r.weight }

// Inner returns the wrapped IR of an Ordered IR, or None.
func (r IR) Inner() IR {
	if r.inner == nil {
		return None
	}
	return *r.inner
}

func (r IR) String() string {
	switch r.kind {
	case Complete:
		return "complete" + r.style.String()
	case Dependent:
		return "dependent"
	case Ordered:
		return fmt.Sprintf("ordered(%d, %s)", r.weight, r.inner)
	}
	return "null"
}
