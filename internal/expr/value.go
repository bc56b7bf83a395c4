// Package expr implements the restricted expression language used by offer
// generation rules and requirement formulas: literals, identifiers, arithmetic,
// comparisons, boolean combinators and ternary selection over a fixed typed
// environment. There are no calls, loops, assignment or I/O, so evaluation
// always terminates and never mutates its inputs.
package expr

import "strconv"

// Kind tags the closed set of value types.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	}
	return "invalid"
}

// Value is a tagged variant holding exactly one of the payload fields,
// selected by Kind.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Bool bool
}

func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func String(s string) Value  { return Value{Kind: KindString, Str: s} }
func Bool(b bool) Value      { return Value{Kind: KindBool, Bool: b} }

// Equal compares two values of the same kind; cross-kind comparison is a
// caller-side type error, not an equality result.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Num == o.Num
	case KindString:
		return v.Str == o.Str
	case KindBool:
		return v.Bool == o.Bool
	}
	return false
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	case KindBool:
		return strconv.FormatBool(v.Bool)
	}
	return ""
}

// Environment binds identifier names to values for one evaluation.
// Evaluation never mutates it.
type Environment map[string]Value
