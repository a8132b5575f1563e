package dice

import (
	"errors"
	"strings"
	"testing"
)

func lit(v int32) Expr { return ConstantExpr{Value: v} }

func bin(op Op, l, r Expr) Expr { return BinaryExpr{Op: op, Left: l, Right: r} }

func roll(count, sides Expr) Expr { return DieRollExpr{Count: count, Sides: sides} }

func neg(e Expr) Expr { return NegateExpr{Operand: e} }

func TestParseAcceptsValidExpressions(t *testing.T) {
	inputs := []string{
		"1",
		"1d20",
		"1d(20)",
		"1d(2 + 2)",
		"(2 + 2)d(2 + 2)",
		"  7  ",
		"((((3))))",
		"--1",
		"2^3",
		"-1d20^2",
		"\t2 +\n 2",
		"2d6+3",
		"10 / (1d4) * 3 - -2",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err != nil {
				t.Fatalf("Parse(%q) error = %v", input, err)
			}
		})
	}
}

func TestParseBuildsTree(t *testing.T) {
	tests := []struct {
		input string
		want  Expr
	}{
		{input: "42", want: lit(42)},
		{input: "1d20", want: roll(lit(1), lit(20))},
		{input: "1 - 2 - 3", want: bin(OpSubtract, bin(OpSubtract, lit(1), lit(2)), lit(3))},
		{input: "8 / 2 / 2", want: bin(OpDivide, bin(OpDivide, lit(8), lit(2)), lit(2))},
		{input: "2 * 3 + 4", want: bin(OpAdd, bin(OpMultiply, lit(2), lit(3)), lit(4))},
		{input: "2 + 3 * 4", want: bin(OpAdd, lit(2), bin(OpMultiply, lit(3), lit(4)))},
		{input: "1 -1", want: bin(OpSubtract, lit(1), lit(1))},
		{input: "--1", want: neg(neg(lit(1)))},
		{input: "-1d20^2", want: bin(OpPower, neg(roll(lit(1), lit(20))), lit(2))},
		{input: "2^-1", want: bin(OpPower, lit(2), neg(lit(1)))},
		{input: "2 * 3^2", want: bin(OpMultiply, lit(2), bin(OpPower, lit(3), lit(2)))},
		{
			input: "(2+2)d(2+2)",
			want:  roll(bin(OpAdd, lit(2), lit(2)), bin(OpAdd, lit(2), lit(2))),
		},
		{
			input: "3d6 + 1d4 - 2",
			want:  bin(OpSubtract, bin(OpAdd, roll(lit(3), lit(6)), roll(lit(1), lit(4))), lit(2)),
		},
		{input: "2147483647", want: lit(2147483647)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseParenthesesAreTransparent(t *testing.T) {
	a := MustParse("1d20")
	b := MustParse("1d(20)")
	if a != b {
		t.Fatalf("1d20 parsed to %v, 1d(20) parsed to %v", a, b)
	}
	if MustParse("((1 + 2))") != MustParse("1 + 2") {
		t.Fatal("redundant parentheses changed the tree")
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOffset int // -1 skips the position check.
	}{
		{name: "empty", input: "", wantOffset: 0},
		{name: "blank", input: "   ", wantOffset: 3},
		{name: "truncated roll", input: "1d", wantOffset: 2},
		{name: "unclosed group", input: "(1+1", wantOffset: 4},
		{name: "juxtaposed literals", input: "1 1", wantOffset: 2},
		{name: "dangling operator", input: "1 +", wantOffset: 3},
		{name: "chained power", input: "2^3^4", wantOffset: 3},
		{name: "chained roll", input: "1d2d3", wantOffset: 3},
		{name: "uppercase d", input: "1D6", wantOffset: -1},
		{name: "unknown characters", input: "abc", wantOffset: -1},
		{name: "empty group", input: "()", wantOffset: 1},
		{name: "literal out of range", input: "2147483648", wantOffset: 0},
		{name: "nested literal out of range", input: "1d(99999999999)", wantOffset: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.input, expr)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error type = %T, want *ParseError", tt.input, err)
			}
			if len(perr.Diagnostics) == 0 {
				t.Fatalf("Parse(%q) returned no diagnostics", tt.input)
			}
			if perr.Input != tt.input {
				t.Fatalf("ParseError.Input = %q, want %q", perr.Input, tt.input)
			}
			if tt.wantOffset >= 0 && perr.Diagnostics[0].Pos.Offset != tt.wantOffset {
				t.Fatalf("Parse(%q) diagnostic offset = %d, want %d (%v)",
					tt.input, perr.Diagnostics[0].Pos.Offset, tt.wantOffset, perr)
			}
			if !strings.HasPrefix(err.Error(), "parse dice expression") {
				t.Fatalf("error = %q, want parse dice expression prefix", err)
			}
		})
	}
}

func TestParseEmptyInputDiagnostic(t *testing.T) {
	_, err := Parse("")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse(\"\") error = %v, want *ParseError", err)
	}
	d := perr.Diagnostics[0]
	if d.Expected != "expression" || d.Found != "end of input" {
		t.Fatalf("diagnostic = %+v, want expected expression, found end of input", d)
	}
	if d.Pos.Line != 1 || d.Pos.Column != 1 {
		t.Fatalf("diagnostic position = %v, want 1:1", d.Pos)
	}
}

func TestParseLiteralOutOfRangeDiagnostic(t *testing.T) {
	_, err := Parse("1 + 2147483648")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	d := perr.Diagnostics[0]
	if d.Pos.Offset != 4 || d.Pos.Column != 5 {
		t.Fatalf("diagnostic position = %+v, want offset 4 column 5", d.Pos)
	}
	if d.Found != "2147483648" {
		t.Fatalf("diagnostic found = %q, want the literal", d.Found)
	}
	if !strings.Contains(d.Message, "out of range") {
		t.Fatalf("diagnostic message = %q, want out of range", d.Message)
	}
}

func TestParseDiagnosticsUseGrammarWords(t *testing.T) {
	tests := []struct {
		input        string
		wantFound    string
		wantExpected string
	}{
		{input: "1d", wantFound: "end of input", wantExpected: "number or '('"},
		{input: "1+", wantFound: "end of input", wantExpected: "operand"},
		{input: "1d+", wantFound: "+", wantExpected: "number or '('"},
		{input: "1 x", wantFound: "x"},
		{input: "2147483648", wantFound: "2147483648", wantExpected: "integer literal"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.input, err)
			}
			d := perr.Diagnostics[0]
			if d.Found != tt.wantFound {
				t.Fatalf("found = %q, want %q (%v)", d.Found, tt.wantFound, d)
			}
			if tt.wantExpected != "" && d.Expected != tt.wantExpected {
				t.Fatalf("expected = %q, want %q (%v)", d.Expected, tt.wantExpected, d)
			}
			if strings.Contains(d.Message, "Node") || strings.Contains(d.Expected, "Node") {
				t.Fatalf("diagnostic %+v mentions grammar types", d)
			}
		})
	}
}

func TestMustParsePanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustParse to panic")
		}
	}()
	MustParse("1d")
}
