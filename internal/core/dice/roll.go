package dice

// DieRoll captures the results of one "AdB" term.
type DieRoll struct {
	Count   int32
	Sides   int32
	Results []int32
	Total   int32
}

// Result captures an evaluated expression together with every roll made.
type Result struct {
	Total int32
	Rolls []DieRoll
}

// RollWithSource parses expression and evaluates it against src.
//
// # Determinism
//
// RollWithSource is deterministic with respect to the state of src. Given the
// same expression and a Source seeded identically, it always produces the
// same total, because dice are drawn left to right in expression order.
//
// # Errors
//
// A syntax error is returned as *ParseError and no randomness is consumed.
// A semantic error is returned as *EvalError; dice drawn before the failure
// have already consumed src.
//
// Example:
//
//	total, err := RollWithSource("2d6 + 1d8", NewSeededSource(1))
func RollWithSource(expression string, src Source) (int32, error) {
	tree, err := Parse(expression)
	if err != nil {
		return 0, err
	}
	return Evaluate(tree, src)
}

// Roll is RollWithSource using a process-wide source seeded from
// crypto/rand. It is safe for concurrent use.
func Roll(expression string) (int32, error) {
	return RollWithSource(expression, defaultSource())
}

// RollDetailed parses expression and evaluates it against src, returning the
// total and the individual rolls in draw order. Like EvaluateDetailed it
// draws at most DefaultMaxDraws dice unless opts say otherwise.
func RollDetailed(expression string, src Source, opts ...EvalOption) (Result, error) {
	tree, err := Parse(expression)
	if err != nil {
		return Result{}, err
	}
	return EvaluateDetailed(tree, src, opts...)
}

// resultsCapHint caps the up-front allocation for recorded results; larger
// rolls grow the slice as dice are drawn.
const resultsCapHint = 64

// rollDice draws count dice with the provided number of sides and sums them.
// Callers guarantee count > 0 and sides > 0.
func rollDice(src Source, count, sides int32, keep bool) (DieRoll, error) {
	roll := DieRoll{Count: count, Sides: sides}
	if keep {
		roll.Results = make([]int32, 0, min(count, resultsCapHint))
	}

	var total int64
	for i := int32(0); i < count; i++ {
		value := rollDie(src, sides)
		if keep {
			roll.Results = append(roll.Results, value)
		}
		total += int64(value)
	}
	if !fits(total) {
		return DieRoll{}, evalErrorf(ErrOverflow, "%dd%d", count, sides)
	}
	roll.Total = int32(total)
	return roll, nil
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(src Source, sides int32) int32 {
	return src.IntRange(1, sides)
}
