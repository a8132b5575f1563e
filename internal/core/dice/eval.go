package dice

import "math"

// DefaultMaxDraws bounds EvaluateDetailed and RollDetailed when no
// WithMaxDraws option is given, since every recorded die is kept in memory.
const DefaultMaxDraws = 10000

// EvalOption configures an evaluation.
type EvalOption func(*evaluator)

// WithMaxDraws limits the total number of dice drawn in one evaluation.
// Zero or a negative value means no limit.
func WithMaxDraws(n int) EvalOption {
	return func(ev *evaluator) {
		ev.maxDraws = n
		ev.limitSet = true
	}
}

// Evaluate reduces e to a single integer, drawing from src for every die.
// Operands are evaluated left before right. On failure the error is an
// *EvalError and no partial result is returned.
func Evaluate(e Expr, src Source, opts ...EvalOption) (int32, error) {
	ev := newEvaluator(src, opts)
	return ev.eval(e)
}

// EvaluateDetailed is like Evaluate but also returns every roll made, in
// the order the dice were drawn. Without WithMaxDraws it draws at most
// DefaultMaxDraws dice.
func EvaluateDetailed(e Expr, src Source, opts ...EvalOption) (Result, error) {
	ev := newEvaluator(src, opts)
	ev.record = true
	if !ev.limitSet {
		ev.maxDraws = DefaultMaxDraws
	}
	total, err := ev.eval(e)
	if err != nil {
		return Result{}, err
	}
	return Result{Total: total, Rolls: ev.rolls}, nil
}

type evaluator struct {
	src      Source
	maxDraws int
	limitSet bool
	draws    int
	record   bool
	rolls    []DieRoll
}

func newEvaluator(src Source, opts []EvalOption) *evaluator {
	ev := &evaluator{src: src}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

func (ev *evaluator) eval(e Expr) (int32, error) {
	switch e := e.(type) {
	case ConstantExpr:
		return e.Value, nil
	case NegateExpr:
		v, err := ev.eval(e.Operand)
		if err != nil {
			return 0, err
		}
		if v == math.MinInt32 {
			return 0, evalErrorf(ErrOverflow, "-(%d)", v)
		}
		return -v, nil
	case BinaryExpr:
		left, err := ev.eval(e.Left)
		if err != nil {
			return 0, err
		}
		right, err := ev.eval(e.Right)
		if err != nil {
			return 0, err
		}
		return apply(e.Op, left, right)
	case DieRollExpr:
		count, err := ev.eval(e.Count)
		if err != nil {
			return 0, err
		}
		sides, err := ev.eval(e.Sides)
		if err != nil {
			return 0, err
		}
		return ev.roll(count, sides)
	case nil:
		return 0, evalErrorf(ErrMalformedExpression, "missing operand")
	default:
		return 0, evalErrorf(ErrMalformedExpression, "unknown node %T", e)
	}
}

func (ev *evaluator) roll(count, sides int32) (int32, error) {
	if count <= 0 {
		if ev.record {
			ev.rolls = append(ev.rolls, DieRoll{Count: count, Sides: sides})
		}
		return 0, nil
	}
	if sides <= 0 {
		return 0, evalErrorf(ErrInvalidDie, "%dd%d", count, sides)
	}
	if ev.maxDraws > 0 && int64(ev.draws)+int64(count) > int64(ev.maxDraws) {
		return 0, evalErrorf(ErrTooManyDice, "%dd%d exceeds the limit of %d dice", count, sides, ev.maxDraws)
	}
	ev.draws += int(count)

	roll, err := rollDice(ev.src, count, sides, ev.record)
	if err != nil {
		return 0, err
	}
	if ev.record {
		ev.rolls = append(ev.rolls, roll)
	}
	return roll.Total, nil
}

func apply(op Op, left, right int32) (int32, error) {
	l, r := int64(left), int64(right)
	switch op {
	case OpAdd:
		return checked(l+r, "%d + %d", left, right)
	case OpSubtract:
		return checked(l-r, "%d - %d", left, right)
	case OpMultiply:
		return checked(l*r, "%d * %d", left, right)
	case OpDivide:
		if right == 0 {
			return 0, evalErrorf(ErrDivisionByZero, "%d / %d", left, right)
		}
		// Go integer division truncates toward zero.
		return checked(l/r, "%d / %d", left, right)
	case OpPower:
		return power(left, right)
	default:
		return 0, evalErrorf(ErrMalformedExpression, "unknown operator %q", byte(op))
	}
}

// power computes base^exp by squaring, failing as soon as a needed
// intermediate leaves the int32 range.
func power(base, exp int32) (int32, error) {
	if exp < 0 {
		return 0, evalErrorf(ErrNegativeExponent, "%d ^ %d", base, exp)
	}
	result, b, e := int64(1), int64(base), exp
	for e > 0 {
		if e&1 == 1 {
			result *= b
			if !fits(result) {
				return 0, evalErrorf(ErrOverflow, "%d ^ %d", base, exp)
			}
		}
		e >>= 1
		if e > 0 {
			b *= b
			if !fits(b) {
				return 0, evalErrorf(ErrOverflow, "%d ^ %d", base, exp)
			}
		}
	}
	return int32(result), nil
}

func checked(v int64, format string, args ...any) (int32, error) {
	if !fits(v) {
		return 0, evalErrorf(ErrOverflow, format, args...)
	}
	return int32(v), nil
}

func fits(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}
