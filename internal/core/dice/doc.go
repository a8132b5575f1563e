// Package dice parses and evaluates dice-notation expressions such as
// "2d6 + 3" or "-1d20^2".
//
// Parsing is a pure function of the input text and produces an Expr tree.
// Evaluation walks the tree and draws from a caller-supplied Source for every
// die rolled.
//
// # Determinism
//
// Evaluation visits operands strictly left before right, and every die in a
// roll is drawn in order. Given the same expression and a Source in the same
// state, RollWithSource always produces the same total or the same error.
//
// # Errors
//
// Syntax failures are reported as *ParseError and carry one or more
// position-tagged diagnostics. Semantic failures are reported as *EvalError
// and unwrap to one of the sentinel errors:
//   - ErrDivisionByZero: the divisor evaluated to zero.
//   - ErrNegativeExponent: the exponent evaluated below zero.
//   - ErrInvalidDie: a roll of one or more dice had fewer than one side.
//   - ErrOverflow: an intermediate value left the int32 range.
//   - ErrTooManyDice: the configured draw limit was exceeded.
//
// Example:
//
//	total, err := dice.RollWithSource("2d6 + 3", dice.NewSeededSource(1))
package dice
