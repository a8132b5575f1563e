package dice

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero indicates the right operand of a division evaluated to zero.
var ErrDivisionByZero = errors.New("division by zero")

// ErrNegativeExponent indicates the exponent of a power evaluated below zero.
var ErrNegativeExponent = errors.New("negative exponents are not allowed")

// ErrInvalidDie indicates a roll of one or more dice with fewer than one side.
var ErrInvalidDie = errors.New("dice must have positive sides")

// ErrOverflow indicates an intermediate result outside the int32 range.
var ErrOverflow = errors.New("integer overflow")

// ErrTooManyDice indicates an evaluation exceeded its draw limit.
var ErrTooManyDice = errors.New("too many dice")

// ErrMalformedExpression indicates a tree with missing or unknown nodes.
// Trees produced by Parse never trigger it.
var ErrMalformedExpression = errors.New("malformed expression")

// EvalError reports a semantic failure while evaluating an expression.
type EvalError struct {
	Err     error  // One of the sentinel errors above.
	Message string // Human-readable description including the sentinel text.
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel so errors.Is matches the failure kind.
func (e *EvalError) Unwrap() error {
	return e.Err
}

func evalErrorf(kind error, format string, args ...any) *EvalError {
	return &EvalError{
		Err:     kind,
		Message: kind.Error() + ": " + fmt.Sprintf(format, args...),
	}
}
