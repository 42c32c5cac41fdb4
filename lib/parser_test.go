package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func num(v float64) NumberLiteral {
	return NumberLiteral{Value: v}
}

func ident(name string) Identifier {
	return Identifier{Name: name}
}

func parseOne(t *testing.T, source string) Expression {
	expr, err := Parse("", source)
	require.NoError(t, err, source)
	return expr
}

func requireParseError(t *testing.T, source string, category error, offset int) *Error {
	_, err := ParseAll("", source)
	require.Error(t, err, source)
	require.ErrorIs(t, err, category, source)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, offset, perr.Offset, "offset for %q: %s", source, perr.Message)
	return perr
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		source   string
		expected Expression
	}{
		{"2+3*4", BinaryExpression{
			Left:  num(2),
			Right: BinaryExpression{Left: num(3), Right: num(4), Op: BinaryExprOpMultiply},
			Op:    BinaryExprOpAdd,
		}},
		{"2^3%2", BinaryExpression{
			Left:  BinaryExpression{Left: num(2), Right: num(3), Op: BinaryExprOpPower},
			Right: num(2),
			Op:    BinaryExprOpModulo,
		}},
		{"2*3^2", BinaryExpression{
			Left:  num(2),
			Right: BinaryExpression{Left: num(3), Right: num(2), Op: BinaryExprOpPower},
			Op:    BinaryExprOpMultiply,
		}},
		{"1-2-3", BinaryExpression{
			Left:  BinaryExpression{Left: num(1), Right: num(2), Op: BinaryExprOpSubtract},
			Right: num(3),
			Op:    BinaryExprOpSubtract,
		}},
		{"8/4/2", BinaryExpression{
			Left:  BinaryExpression{Left: num(8), Right: num(4), Op: BinaryExprOpDivide},
			Right: num(2),
			Op:    BinaryExprOpDivide,
		}},
		{"(2+3)*4", BinaryExpression{
			Left:  BinaryExpression{Left: num(2), Right: num(3), Op: BinaryExprOpAdd},
			Right: num(4),
			Op:    BinaryExprOpMultiply,
		}},
		{"1 + 2 == 3", Comparison{
			Left:  BinaryExpression{Left: num(1), Right: num(2), Op: BinaryExprOpAdd},
			Right: num(3),
			Op:    ComparisonOpEqual,
		}},
		{"a < b < c", Comparison{
			Left:  Comparison{Left: ident("a"), Right: ident("b"), Op: ComparisonOpLessThan},
			Right: ident("c"),
			Op:    ComparisonOpLessThan,
		}},
		{"a >= b", Comparison{Left: ident("a"), Right: ident("b"), Op: ComparisonOpGreaterThanOrEqual}},
		{"a > b", Comparison{Left: ident("a"), Right: ident("b"), Op: ComparisonOpGreaterThan}},
		{"a <= b", Comparison{Left: ident("a"), Right: ident("b"), Op: ComparisonOpLessThanOrEqual}},
		{"a and b or c", LogicalExpression{
			Left:  LogicalExpression{Left: ident("a"), Right: ident("b"), Op: LogicalOpAnd},
			Right: ident("c"),
			Op:    LogicalOpOr,
		}},
		// and/or bind tighter than the comparison operators
		{"a < b and c", Comparison{
			Left:  ident("a"),
			Right: LogicalExpression{Left: ident("b"), Right: ident("c"), Op: LogicalOpAnd},
			Op:    ComparisonOpLessThan,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			require.Equal(t, tt.expected, parseOne(t, tt.source))
		})
	}
}

func TestParseLiterals(t *testing.T) {
	require.Equal(t, BooleanLiteral{Value: true}, parseOne(t, "true"))
	require.Equal(t, BooleanLiteral{Value: false}, parseOne(t, "false"))
	require.Equal(t, NullLiteral{}, parseOne(t, "null"))
	require.Equal(t, ident("foo"), parseOne(t, "foo"))
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		source   string
		expected float64
	}{
		{"0", 0},
		{"42", 42},
		{"2.5", 2.5},
		{"1'000'000", 1000000},
		{"1'000'000.5e-2", 10000.005},
		{"1e10", 1e10},
		{"3e+2", 300},
		{"1'5e1'0", 15e10},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			require.Equal(t, num(tt.expected), parseOne(t, tt.source))
		})
	}
}

func TestParseNumberExponentThenMinus(t *testing.T) {
	require.Equal(t, BinaryExpression{
		Left:  num(0.02),
		Right: num(1),
		Op:    BinaryExprOpSubtract,
	}, parseOne(t, "2e-2-1"))
}

func TestParseMalformedNumbers(t *testing.T) {
	tests := []struct {
		source string
		offset int
	}{
		{"1.2.3", 3},
		{"1..2", 1},
		{"1.5e2.3", 5},
		{"1e5e3", 3},
		{"1'", 1},
		{"1'.5", 1},
		{"2e", 1},
		{"1e-", 1},
		{"1e999", 0},
		{"12 3", 3},
		{"1 '000", 2},
		{"2 x", 2},
		{"2(3)", 1},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			requireParseError(t, tt.source, ErrSyntax, tt.offset)
		})
	}
}

func TestParseNestedNegation(t *testing.T) {
	require.Equal(t,
		NegateExpression{Operand: NegateExpression{Operand: NegateExpression{Operand: num(5)}}},
		parseOne(t, "-(-(-5))"))
}

func TestParseNegateTakesWholeComparison(t *testing.T) {
	require.Equal(t, NegateExpression{Operand: BinaryExpression{
		Left:  num(5),
		Right: num(3),
		Op:    BinaryExprOpAdd,
	}}, parseOne(t, "-5 + 3"))

	require.Equal(t, NegateExpression{Operand: BooleanLiteral{Value: true}}, parseOne(t, "-true"))
	require.Equal(t, NegateExpression{Operand: ident("x")}, parseOne(t, "-x"))
}

func TestParseUnaryOperators(t *testing.T) {
	require.Equal(t, UnaryExpression{
		Operand: NotExpression{Operand: BooleanLiteral{Value: true}},
		Op:      UnaryExprOpMinus,
	}, parseOne(t, "-not true"))

	require.Equal(t, BinaryExpression{
		Left:  num(1),
		Right: UnaryExpression{Operand: num(5), Op: UnaryExprOpPlus},
		Op:    BinaryExprOpAdd,
	}, parseOne(t, "1 + +5"))

	requireParseError(t, "+5", ErrSyntax, 0)
	requireParseError(t, "1 -", ErrParse, 3)
}

func TestParseNot(t *testing.T) {
	require.Equal(t, NotExpression{Operand: Comparison{
		Left:  ident("a"),
		Right: ident("b"),
		Op:    ComparisonOpEqual,
	}}, parseOne(t, "not a == b"))

	requireParseError(t, "not", ErrParse, 3)
}

func TestParseIf(t *testing.T) {
	require.Equal(t, IfExpression{
		Condition: Comparison{Left: ident("a"), Right: ident("b"), Op: ComparisonOpLessThan},
		Then:      ident("a"),
		Else:      ident("b"),
	}, parseOne(t, "if (a < b) a else b"))

	expr := parseOne(t, "if (a < b) a")
	ifExpr, ok := expr.(IfExpression)
	require.True(t, ok)
	require.Equal(t, ident("a"), ifExpr.Then)
	require.Nil(t, ifExpr.Else)

	require.Equal(t, IfExpression{
		Condition: BooleanLiteral{Value: true},
		Then:      num(1),
		Else:      num(2),
	}, parseOne(t, "if (true) 1 else 2"))
}

func TestParseIfErrors(t *testing.T) {
	perr := requireParseError(t, "if a", ErrSyntax, 3)
	require.Equal(t, "expected a '(' after keyword 'if' found 'a'", perr.Message)

	perr = requireParseError(t, "if (a b", ErrSyntax, 6)
	require.Equal(t, "expected a closing ')' for 'if' found 'b'", perr.Message)

	perr = requireParseError(t, "if (a)", ErrSyntax, 6)
	require.Equal(t, "expected an expression after 'if' statement", perr.Message)

	perr = requireParseError(t, "if (a) b else", ErrSyntax, 13)
	require.Equal(t, "expected an expression after 'else' statement", perr.Message)

	requireParseError(t, "if", ErrParse, 2)
	requireParseError(t, "if (a", ErrParse, 5)
}

func TestParseFunctionDefinition(t *testing.T) {
	require.Equal(t, FunctionDefinition{
		Name:       "f",
		Parameters: []Identifier{ident("x")},
		Body:       BinaryExpression{Left: ident("x"), Right: num(1), Op: BinaryExprOpAdd},
	}, parseOne(t, "f(x) = x + 1"))

	require.Equal(t, FunctionDefinition{
		Name:       "pow",
		Parameters: []Identifier{ident("x"), ident("y")},
		Body:       BinaryExpression{Left: ident("x"), Right: ident("y"), Op: BinaryExprOpPower},
	}, parseOne(t, "pow(x, y) -> x ^ y"))

	require.Equal(t, FunctionDefinition{
		Name:       "zero",
		Parameters: []Identifier{},
		Body:       num(0),
	}, parseOne(t, "zero() = 0"))
}

func TestParseDefinitionBodyWithCall(t *testing.T) {
	require.Equal(t, FunctionDefinition{
		Name:       "g",
		Parameters: []Identifier{ident("x")},
		Body: BinaryExpression{
			Left:  FunctionCall{Name: "sqrt", Arguments: []Expression{ident("x")}},
			Right: ident("x"),
			Op:    BinaryExprOpAdd,
		},
	}, parseOne(t, "g(x) = sqrt(x) + x"))
}

func TestParseFunctionCall(t *testing.T) {
	require.Equal(t, FunctionCall{
		Name:      "f",
		Arguments: []Expression{num(5)},
	}, parseOne(t, "f(5)"))

	require.Equal(t, FunctionCall{
		Name: "max",
		Arguments: []Expression{
			BinaryExpression{Left: num(1), Right: num(2), Op: BinaryExprOpAdd},
			FunctionCall{Name: "g", Arguments: []Expression{ident("x")}},
		},
	}, parseOne(t, "max(1 + 2, g(x))"))

	call, ok := parseOne(t, "now()").(FunctionCall)
	require.True(t, ok)
	require.Equal(t, "now", call.Name)
	require.Empty(t, call.Arguments)

	require.Equal(t, Comparison{
		Left:  FunctionCall{Name: "f", Arguments: []Expression{num(1)}},
		Right: num(2),
		Op:    ComparisonOpEqual,
	}, parseOne(t, "f(1) == 2"))
}

func TestParseDefinitionLookaheadStaysInsideCall(t *testing.T) {
	prog, err := ParseAll("", "y = f(2);; g(x) = x")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)

	require.Equal(t, Assignment{
		Name:  "y",
		Value: FunctionCall{Name: "f", Arguments: []Expression{num(2)}},
	}, prog.Statements[0])
	require.Equal(t, FunctionDefinition{
		Name:       "g",
		Parameters: []Identifier{ident("x")},
		Body:       ident("x"),
	}, prog.Statements[1])
}

func TestParseDefinitionParameterTypes(t *testing.T) {
	perr := requireParseError(t, "f(5) = x", ErrType, 2)
	require.Equal(t, "expected identifier in function's arguments", perr.Message)

	requireParseError(t, "f(x, g(x)) = x", ErrType, 5)
	requireParseError(t, "f(x) =", ErrParse, 6)
}

func TestParseArgumentListErrors(t *testing.T) {
	requireParseError(t, "f(,)", ErrSyntax, 2)
	requireParseError(t, "f(5,)", ErrSyntax, 3)
	requireParseError(t, "f(,5)", ErrSyntax, 2)
	requireParseError(t, "f(5,,6)", ErrSyntax, 4)
	requireParseError(t, "f(a b)", ErrSyntax, 4)

	perr := requireParseError(t, "f(", ErrParse, 2)
	require.Equal(t, "unexpected end of input while parsing arguments", perr.Message)
	requireParseError(t, "f(5", ErrParse, 3)
	requireParseError(t, "f(5,", ErrParse, 4)
}

func TestParseAssignment(t *testing.T) {
	require.Equal(t, Assignment{Name: "x", Value: num(5)}, parseOne(t, "x = 5"))

	require.Equal(t, Assignment{
		Name:  "total",
		Value: BinaryExpression{Left: ident("a"), Right: ident("b"), Op: BinaryExprOpAdd},
	}, parseOne(t, "total = a + b"))

	// the last complete expression before the end of the statement is bound
	require.Equal(t, Assignment{Name: "x", Value: ident("c")}, parseOne(t, "x = a b c"))

	requireParseError(t, "x =", ErrParse, 3)
	requireParseError(t, "x = a b", ErrParse, 7)
}

func TestParseAllStatements(t *testing.T) {
	prog, err := ParseAll("", "x = 1;; y = x * 2;; y")
	require.NoError(t, err)
	require.Equal(t, []Expression{
		Assignment{Name: "x", Value: num(1)},
		Assignment{Name: "y", Value: BinaryExpression{Left: ident("x"), Right: num(2), Op: BinaryExprOpMultiply}},
		ident("y"),
	}, prog.Statements)
}

func TestParseAllWithoutSeparator(t *testing.T) {
	prog, err := ParseAll("", "f(x) = 2 * x\nf(3)")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)
	require.IsType(t, FunctionDefinition{}, prog.Statements[0])
	require.IsType(t, FunctionCall{}, prog.Statements[1])
}

func TestParseSemicolonSkipsFollowingToken(t *testing.T) {
	prog, err := ParseAll("", "1; 99 2")
	require.NoError(t, err)
	require.Equal(t, []Expression{num(1), num(2)}, prog.Statements)
}

func TestParseSemicolonAtEnd(t *testing.T) {
	perr := requireParseError(t, "x = 1;", ErrParse, 6)
	require.Equal(t, "unexpected end of input, expecting a statement after ';'", perr.Message)
	requireParseError(t, "1; 2", ErrParse, 4)
	requireParseError(t, ";", ErrParse, 1)
}

func TestParseFirstStatementOnly(t *testing.T) {
	require.Equal(t, num(1), parseOne(t, "1;; 2"))

	p, err := NewParser("", "1;; 2", Tokenize("1;; 2"))
	require.NoError(t, err)

	first, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, num(1), first)

	second, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, num(2), second)
}

func TestParseStructuralErrors(t *testing.T) {
	perr := requireParseError(t, "", ErrParse, 0)
	require.Equal(t, "invalid input", perr.Message)
	requireParseError(t, "   ", ErrParse, 0)

	requireParseError(t, "2 +", ErrParse, 3)
	requireParseError(t, "(1 + 2", ErrParse, 6)
	requireParseError(t, "(1 + x y", ErrSyntax, 7)
	requireParseError(t, "1 + $", ErrSyntax, 4)
	requireParseError(t, "2 + * 3", ErrSyntax, 4)
	requireParseError(t, ")", ErrSyntax, 0)
	requireParseError(t, "1 )", ErrSyntax, 2)
}

func TestParseErrorCarriesFileAndSource(t *testing.T) {
	_, err := ParseAll("main.ami", "1 +")
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "main.ami", perr.File)
	require.Equal(t, "1 +", perr.Source)
	require.Equal(t, ErrParse, perr.Category)
	require.Equal(t, "main.ami: offset 3: ParseError: unexpected end of input, expecting an expression", err.Error())
}
