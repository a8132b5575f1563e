package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

const endOfInput = "end of input"

// Position locates a diagnostic in the input. Offset is in bytes; Line and
// Column start at 1.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Diagnostic describes one syntax problem.
type Diagnostic struct {
	Pos      Position
	Expected string // May be empty when the grammar offers no single alternative.
	Found    string
	Message  string
}

func (d Diagnostic) String() string {
	return d.Pos.String() + ": " + d.Message
}

// ParseError reports that the input is not a well-formed dice expression.
type ParseError struct {
	Input       string
	Diagnostics []Diagnostic
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "parse dice expression"
	}
	parts := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		parts[i] = d.String()
	}
	return "parse dice expression: " + strings.Join(parts, "; ")
}

// Parse converts text into an expression tree. The whole input must form a
// single expression; anything left over is an error.
func Parse(text string) (Expr, error) {
	if strings.TrimSpace(text) == "" {
		pos := endPosition(text)
		return nil, &ParseError{Input: text, Diagnostics: []Diagnostic{{
			Pos:      pos,
			Expected: "expression",
			Found:    endOfInput,
			Message:  "expected expression, found " + endOfInput,
		}}}
	}

	tree, err := diceParser.ParseString("", text)
	if err != nil {
		return nil, &ParseError{Input: text, Diagnostics: []Diagnostic{diagnosticFrom(text, err)}}
	}

	expr, diags := lowerSum(tree)
	if len(diags) > 0 {
		return nil, &ParseError{Input: text, Diagnostics: diags}
	}
	return expr, nil
}

// MustParse is like Parse but panics on error. It is intended for fixed
// expressions in tests and static tables.
func MustParse(text string) Expr {
	expr, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return expr
}

// grammarWords renames grammar productions in participle messages.
var grammarWords = strings.NewReplacer(
	"SumNode", "expression",
	"ProductNode", "operand",
	"PowerNode", "operand",
	"UnaryNode", "operand",
	"RollNode", "operand",
	"AtomNode", "number or '('",
)

// diagnosticFrom converts a participle failure. Found is always the bare
// offending text, or endOfInput.
func diagnosticFrom(text string, err error) Diagnostic {
	d := Diagnostic{Message: err.Error()}

	var perr participle.Error
	if errors.As(err, &perr) {
		d.Pos = positionFrom(perr.Position())
		d.Message = perr.Message()
	}
	if _, expected, ok := strings.Cut(d.Message, "(expected "); ok {
		d.Expected = grammarWords.Replace(strings.TrimSuffix(expected, ")"))
	}

	var unexpected *participle.UnexpectedTokenError
	var lexErr *lexer.Error
	switch {
	case errors.As(err, &unexpected):
		if unexpected.Unexpected.EOF() {
			d.Found = endOfInput
		} else {
			d.Found = unexpected.Unexpected.Value
		}
		d.Message = "unexpected " + quoteFound(d.Found)
		if d.Expected != "" {
			d.Message += ", expected " + d.Expected
		}
	case errors.As(err, &lexErr) || strings.HasPrefix(d.Message, "invalid input text"):
		if r, _ := utf8.DecodeRuneInString(text[min(d.Pos.Offset, len(text)):]); r != utf8.RuneError {
			d.Found = string(r)
		}
		d.Message = "invalid character " + quoteFound(d.Found)
	default:
		d.Message = grammarWords.Replace(d.Message)
	}
	return d
}

func quoteFound(found string) string {
	if found == endOfInput {
		return found
	}
	return strconv.Quote(found)
}

func positionFrom(pos lexer.Position) Position {
	return Position{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

func endPosition(text string) Position {
	pos := Position{Offset: len(text), Line: 1, Column: 1}
	for _, r := range text {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
			continue
		}
		pos.Column++
	}
	return pos
}

func lowerSum(n *sumNode) (Expr, []Diagnostic) {
	if n == nil {
		return nil, []Diagnostic{{Message: "missing expression"}}
	}
	left, diags := lowerProduct(n.Head)
	for _, tail := range n.Tail {
		right, more := lowerProduct(tail.Operand)
		diags = append(diags, more...)
		op := OpAdd
		if tail.Op == "-" {
			op = OpSubtract
		}
		left = BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, diags
}

func lowerProduct(n *productNode) (Expr, []Diagnostic) {
	if n == nil {
		return nil, []Diagnostic{{Message: "missing operand"}}
	}
	left, diags := lowerPower(n.Head)
	for _, tail := range n.Tail {
		right, more := lowerPower(tail.Operand)
		diags = append(diags, more...)
		op := OpMultiply
		if tail.Op == "/" {
			op = OpDivide
		}
		left = BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, diags
}

func lowerPower(n *powerNode) (Expr, []Diagnostic) {
	if n == nil {
		return nil, []Diagnostic{{Message: "missing operand"}}
	}
	base, diags := lowerUnary(n.Base)
	if n.Exponent == nil {
		return base, diags
	}
	exponent, more := lowerUnary(n.Exponent)
	return BinaryExpr{Op: OpPower, Left: base, Right: exponent}, append(diags, more...)
}

func lowerUnary(n *unaryNode) (Expr, []Diagnostic) {
	switch {
	case n == nil:
		return nil, []Diagnostic{{Message: "missing operand"}}
	case n.Negated != nil:
		operand, diags := lowerUnary(n.Negated)
		return NegateExpr{Operand: operand}, diags
	default:
		return lowerRoll(n.Roll)
	}
}

func lowerRoll(n *rollNode) (Expr, []Diagnostic) {
	if n == nil {
		return nil, []Diagnostic{{Message: "missing operand"}}
	}
	count, diags := lowerAtom(n.Count)
	if n.Sides == nil {
		return count, diags
	}
	sides, more := lowerAtom(n.Sides)
	return DieRollExpr{Count: count, Sides: sides}, append(diags, more...)
}

func lowerAtom(n *atomNode) (Expr, []Diagnostic) {
	switch {
	case n == nil:
		return nil, []Diagnostic{{Message: "missing operand"}}
	case n.Literal != nil:
		value, err := strconv.ParseInt(*n.Literal, 10, 32)
		if err != nil {
			return nil, []Diagnostic{{
				Pos:      positionFrom(n.Pos),
				Expected: "integer literal",
				Found:    *n.Literal,
				Message:  fmt.Sprintf("integer literal %s out of range", *n.Literal),
			}}
		}
		return ConstantExpr{Value: int32(value)}, nil
	default:
		return lowerSum(n.Group)
	}
}
