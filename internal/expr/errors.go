package expr

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks; the typed errors below carry details
// and unwrap to these.
var (
	ErrUnboundVariable     = errors.New("unbound variable")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrNotANumber          = errors.New("not a number")
	ErrMalformedExpression = errors.New("malformed expression")
)

// UnboundVariableError reports an identifier missing from the environment.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %q", e.Name)
}

func (e *UnboundVariableError) Unwrap() error { return ErrUnboundVariable }

// TypeMismatchError reports an operator applied to operand kinds it does not
// accept.
type TypeMismatchError struct {
	Op    string
	Left  Kind
	Right Kind
}

func (e *TypeMismatchError) Error() string {
	if e.Right == e.Left {
		return fmt.Sprintf("operator %q not defined on %s", e.Op, e.Left)
	}
	return fmt.Sprintf("operator %q not defined on %s and %s", e.Op, e.Left, e.Right)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// NotANumberError reports an arithmetic result outside the number domain
// (division by zero).
type NotANumberError struct {
	Op string
}

func (e *NotANumberError) Error() string {
	return fmt.Sprintf("operator %q produced no number (division by zero)", e.Op)
}

func (e *NotANumberError) Unwrap() error { return ErrNotANumber }

// SyntaxError reports a source expression that failed to parse. Unlike the
// runtime errors above it indicates corrupt configuration.
type SyntaxError struct {
	Pos int // byte offset into the source
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformedExpression }
