package dice

import (
	"strconv"
	"strings"
)

// Expr is a node of a parsed dice expression.
//
// Expr values are immutable and compare structurally with ==, so two trees
// parsed from "1d20" and "1d(20)" are equal.
type Expr interface {
	expr()
	String() string
}

// Op identifies a binary operator.
type Op byte

const (
	OpAdd      Op = '+'
	OpSubtract Op = '-'
	OpMultiply Op = '*'
	OpDivide   Op = '/'
	OpPower    Op = '^'
)

func (o Op) String() string {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower:
		return string(rune(o))
	default:
		return "?"
	}
}

// ConstantExpr is an integer literal.
type ConstantExpr struct {
	Value int32
}

// DieRollExpr rolls Count dice with Sides sides each. Both operands are
// expressions in their own right.
type DieRollExpr struct {
	Count Expr
	Sides Expr
}

// NegateExpr is a unary minus.
type NegateExpr struct {
	Operand Expr
}

// BinaryExpr applies Op to Left and Right. For OpPower, Left is the base and
// Right the exponent.
type BinaryExpr struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (ConstantExpr) expr() {}
func (DieRollExpr) expr()  {}
func (NegateExpr) expr()   {}
func (BinaryExpr) expr()   {}

// String renders the literal in base 10.
func (e ConstantExpr) String() string {
	return strconv.FormatInt(int64(e.Value), 10)
}

// String renders the roll as "AdB", grouping operands that are not literals.
func (e DieRollExpr) String() string {
	return groupOperand(e.Count) + "d" + groupOperand(e.Sides)
}

func (e NegateExpr) String() string {
	if e.Operand == nil {
		return "-<nil>"
	}
	return "-" + e.Operand.String()
}

// String renders the operation fully parenthesised, e.g. "(1 + 2)".
func (e BinaryExpr) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(exprString(e.Left))
	b.WriteByte(' ')
	b.WriteString(e.Op.String())
	b.WriteByte(' ')
	b.WriteString(exprString(e.Right))
	b.WriteByte(')')
	return b.String()
}

// groupOperand renders a die operand so that it reparses as an atom.
func groupOperand(e Expr) string {
	switch e := e.(type) {
	case ConstantExpr:
		if e.Value >= 0 {
			return e.String()
		}
	case BinaryExpr:
		return e.String()
	case nil:
		return "<nil>"
	}
	return "(" + e.String() + ")"
}

func exprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}
