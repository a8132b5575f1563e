package dice

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

/*
Dice grammar, lowest precedence first:

	sum     => product ( ( "+" | "-" ) product )*
	product => power ( ( "*" | "/" ) power )*
	power   => unary ( "^" unary )?
	unary   => "-" unary | roll
	roll    => atom ( "d" atom )?
	atom    => INT | "(" sum ")"

Whitespace may appear between any two tokens.
*/

var diceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Operator", Pattern: `[-+*/^()d]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var diceParser = participle.MustBuild[sumNode](
	participle.Lexer(diceLexer),
	participle.Elide("Whitespace"),
)

type sumNode struct {
	Head *productNode `@@`
	Tail []*sumTail   `@@*`
}

type sumTail struct {
	Op      string       `@( "+" | "-" )`
	Operand *productNode `@@`
}

type productNode struct {
	Head *powerNode     `@@`
	Tail []*productTail `@@*`
}

type productTail struct {
	Op      string     `@( "*" | "/" )`
	Operand *powerNode `@@`
}

type powerNode struct {
	Base     *unaryNode `@@`
	Exponent *unaryNode `( "^" @@ )?`
}

type unaryNode struct {
	Negated *unaryNode `  "-" @@`
	Roll    *rollNode  `| @@`
}

type rollNode struct {
	Count *atomNode `@@`
	Sides *atomNode `( "d" @@ )?`
}

type atomNode struct {
	Pos lexer.Position

	Literal *string  `  @Int`
	Group   *sumNode `| "(" @@ ")"`
}
