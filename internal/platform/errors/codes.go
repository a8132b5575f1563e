// Package errors provides coded domain errors for service boundaries.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Input errors
	CodeExpressionEmpty Code = "EXPRESSION_EMPTY"

	// Dice errors
	CodeDiceSyntax           Code = "DICE_SYNTAX"
	CodeDiceDivisionByZero   Code = "DICE_DIVISION_BY_ZERO"
	CodeDiceNegativeExponent Code = "DICE_NEGATIVE_EXPONENT"
	CodeDiceInvalidDie       Code = "DICE_INVALID_DIE"
	CodeDiceOverflow         Code = "DICE_OVERFLOW"
	CodeDiceTooMany          Code = "DICE_TOO_MANY"
	CodeDiceMalformed        Code = "DICE_MALFORMED"

	// Random/seed errors
	CodeSeedUnavailable Code = "SEED_UNAVAILABLE"
)

// IsSyntax reports whether the code describes unreadable input rather than
// a failure while rolling.
func (c Code) IsSyntax() bool {
	switch c {
	case CodeExpressionEmpty, CodeDiceSyntax:
		return true
	default:
		return false
	}
}
