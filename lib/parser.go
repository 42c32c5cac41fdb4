package lib

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse tokenizes source and parses its first statement. file is only used
// for diagnostics.
func Parse(file string, source string) (Expression, error) {
	p, err := NewParser(file, source, Tokenize(source))
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// ParseAll tokenizes source and parses every statement in it.
func ParseAll(file string, source string) (Program, error) {
	p, err := NewParser(file, source, Tokenize(source))
	if err != nil {
		return Program{}, err
	}
	return p.ParseAll()
}

// Parser turns a token sequence into expression trees. It owns a cursor into
// the tokens and must not be shared between goroutines.
type Parser struct {
	reader      tokenReader
	file        string
	source      string
	firstOffset int
}

func NewParser(file string, source string, tokens []Token) (*Parser, error) {
	p := &Parser{
		reader: newTokenBuffer(tokens),
		file:   file,
		source: source,
	}
	if len(tokens) == 0 {
		return nil, p.newError(ErrParse, 0, "invalid input")
	}
	p.firstOffset = tokens[0].Offset
	return p, nil
}

// Parse parses one statement starting at the cursor.
func (p *Parser) Parse() (Expression, error) {
	return p.scanComparison()
}

// ParseAll parses statements until the tokens are exhausted.
func (p *Parser) ParseAll() (Program, error) {
	statements := []Expression{}
	for !p.reader.Done() {
		stmt, err := p.scanComparison()
		if err != nil {
			return Program{}, err
		}
		statements = append(statements, stmt)
	}
	return Program{Statements: statements}, nil
}

/*
 Precedence, loosest first. Every tier scans its operands with the next one.

   comparison   > >= < <= ==
   expr         + -
   term         * /
   power        ^ %
   logical      and or
   factor       literals, identifiers, calls, ( ), prefix forms
*/

func (p *Parser) scanComparison() (Expression, error) {
	left, err := p.scanExpr()
	if err != nil {
		return nil, err
	}

	for {
		opToken, ok := p.reader.Peek(0)
		if !ok {
			break
		}
		op, isOp := getComparisonOpType(opToken)
		if !isOp {
			break
		}
		p.advance()

		right, err := p.scanExpr()
		if err != nil {
			return nil, err
		}
		left = Comparison{
			Left:  left,
			Right: right,
			Op:    op,
		}
	}

	return left, nil
}

func (p *Parser) scanExpr() (Expression, error) {
	return p.scanBinaryTier(p.scanTerm, getExprOpType)
}

func (p *Parser) scanTerm() (Expression, error) {
	return p.scanBinaryTier(p.scanPower, getTermOpType)
}

func (p *Parser) scanPower() (Expression, error) {
	return p.scanBinaryTier(p.scanLogical, getPowerOpType)
}

// scanBinaryTier folds a left-associative chain of operators accepted by
// opType, scanning each operand with operand.
func (p *Parser) scanBinaryTier(
	operand func() (Expression, error),
	opType func(Token) (binaryExprOpType, bool),
) (Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		opToken, ok := p.reader.Peek(0)
		if !ok {
			break
		}
		op, isOp := opType(opToken)
		if !isOp {
			break
		}
		p.advance()

		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = BinaryExpression{
			Left:  left,
			Right: right,
			Op:    op,
		}
	}

	return left, nil
}

func (p *Parser) scanLogical() (Expression, error) {
	left, err := p.scanFactor()
	if err != nil {
		return nil, err
	}

	for {
		opToken, ok := p.reader.Peek(0)
		if !ok {
			break
		}
		op, isOp := getLogicalOpType(opToken)
		if !isOp {
			break
		}
		p.advance()

		right, err := p.scanFactor()
		if err != nil {
			return nil, err
		}
		left = LogicalExpression{
			Left:  left,
			Right: right,
			Op:    op,
		}
	}

	return left, nil
}

func (p *Parser) scanFactor() (Expression, error) {
	tok, ok := p.reader.Peek(0)
	if !ok {
		return nil, p.endOfInput("expecting an expression")
	}

	switch tok.Type {
	case TokenTypeLParen:
		return p.scanParenthetical()
	case TokenTypeDigit:
		return p.scanNumber()
	case TokenTypeBoolean:
		p.advance()
		return BooleanLiteral{Value: tok.Value == "true"}, nil
	case TokenTypeNull:
		p.advance()
		return NullLiteral{}, nil
	case TokenTypeIdentifier:
		return p.scanIdentifier(tok)
	case TokenTypePlus:
		return p.scanUnaryPlus(tok)
	case TokenTypeMinus:
		return p.scanMinus()
	case TokenTypeIf:
		return p.scanIf()
	case TokenTypeNot:
		p.advance()
		operand, err := p.scanComparison()
		if err != nil {
			return nil, err
		}
		return NotExpression{Operand: operand}, nil
	case TokenTypeSemicolon:
		return p.scanSemicolon()
	}

	return nil, p.syntaxError(tok, "invalid syntax")
}

func (p *Parser) scanParenthetical() (Expression, error) {
	p.advance()

	expr, err := p.scanComparison()
	if err != nil {
		return nil, err
	}

	_, err = p.requireToken(TokenTypeRParen, "expecting ')'")
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// scanNumber assembles a literal like 1'000'000.5e-2 from source-contiguous
// digit, '.', '\'', 'e' and exponent sign tokens.
func (p *Parser) scanNumber() (Expression, error) {
	first, _ := p.reader.Next()

	var sb strings.Builder
	sb.WriteString(first.Value)
	prev := first
	hasDecimal := false
	hasExponent := false

loop:
	for {
		tok, ok := p.reader.Peek(0)
		if !ok || tok.Offset != prev.end() {
			break
		}

		switch tok.Type {
		case TokenTypeDigit:
			sb.WriteString(tok.Value)
		case TokenTypeDot:
			if hasDecimal {
				return nil, p.syntaxError(tok, "multiple decimal points in number")
			}
			if hasExponent {
				return nil, p.syntaxError(tok, "decimal point in number exponent")
			}
			if !p.digitFollows(tok, 1) {
				return nil, p.syntaxError(tok, "expected digits after decimal point")
			}
			hasDecimal = true
			sb.WriteString(".")
		case TokenTypeDelimiter:
			if prev.Type != TokenTypeDigit || !p.digitFollows(tok, 1) {
				return nil, p.syntaxError(tok, "digit group delimiter must be between digits")
			}
		case TokenTypeExponent:
			if hasExponent {
				return nil, p.syntaxError(tok, "multiple exponent markers in number")
			}
			if prev.Type != TokenTypeDigit {
				return nil, p.syntaxError(tok, "exponent marker must follow a digit")
			}
			hasExponent = true
			sb.WriteString("e")

			sign, ok := p.reader.Peek(1)
			if ok && sign.Offset == tok.end() &&
				(sign.Type == TokenTypeMinus || sign.Type == TokenTypePlus) {
				if !p.digitFollows(sign, 2) {
					return nil, p.syntaxError(tok, "expected digits in number exponent")
				}
				sb.WriteString(sign.Value)
				p.advance()
				tok = sign
			} else if !p.digitFollows(tok, 1) {
				return nil, p.syntaxError(tok, "expected digits in number exponent")
			}
		default:
			break loop
		}

		p.advance()
		prev = tok
	}

	value, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return nil, p.syntaxError(first, fmt.Sprintf("invalid number '%s'", sb.String()))
	}

	next, ok := p.reader.Peek(0)
	if ok && !isValidAfterNumber(next) {
		return nil, p.syntaxError(next, "invalid syntax")
	}

	return NumberLiteral{Value: value}, nil
}

// digitFollows reports whether the token ahead positions past the cursor is
// a digit run starting right where tok ends.
func (p *Parser) digitFollows(tok Token, ahead int) bool {
	next, ok := p.reader.Peek(ahead)
	return ok && next.Type == TokenTypeDigit && next.Offset == tok.end()
}

func isValidAfterNumber(tok Token) bool {
	if _, isOp := getExprOpType(tok); isOp {
		return true
	}
	if _, isOp := getTermOpType(tok); isOp {
		return true
	}
	if _, isOp := getPowerOpType(tok); isOp {
		return true
	}
	if _, isOp := getComparisonOpType(tok); isOp {
		return true
	}
	if _, isOp := getLogicalOpType(tok); isOp {
		return true
	}
	switch tok.Type {
	case TokenTypeRParen, TokenTypeElse, TokenTypeComma, TokenTypeSemicolon:
		return true
	}
	return false
}

func (p *Parser) scanUnaryPlus(tok Token) (Expression, error) {
	if tok.Offset == p.firstOffset {
		// nothing valid starts with a unary plus
		return nil, p.syntaxError(tok, "invalid syntax")
	}
	p.advance()

	operand, err := p.scanComparison()
	if err != nil {
		return nil, err
	}
	return UnaryExpression{Operand: operand, Op: UnaryExprOpPlus}, nil
}

func (p *Parser) scanMinus() (Expression, error) {
	p.advance()

	next, ok := p.reader.Peek(0)
	if !ok {
		return nil, p.endOfInput("expecting an expression after '-'")
	}

	operand, err := p.scanComparison()
	if err != nil {
		return nil, err
	}

	switch next.Type {
	case TokenTypeLParen, TokenTypeIdentifier, TokenTypeDigit, TokenTypeBoolean:
		return NegateExpression{Operand: operand}, nil
	default:
		return UnaryExpression{Operand: operand, Op: UnaryExprOpMinus}, nil
	}
}

// Reads after "if"
func (p *Parser) scanIf() (Expression, error) {
	p.advance()

	lparen, ok := p.reader.Peek(0)
	if !ok {
		return nil, p.endOfInput("expecting '(' after keyword 'if'")
	}
	if lparen.Type != TokenTypeLParen {
		return nil, p.syntaxError(lparen, fmt.Sprintf(
			"expected a '(' after keyword 'if' found '%s'", lparen.Value))
	}
	p.advance()

	cond, err := p.scanComparison()
	if err != nil {
		return nil, err
	}

	rparen, ok := p.reader.Peek(0)
	if !ok {
		return nil, p.endOfInput("expecting a closing ')' for 'if'")
	}
	if rparen.Type != TokenTypeRParen {
		return nil, p.syntaxError(rparen, fmt.Sprintf(
			"expected a closing ')' for 'if' found '%s'", rparen.Value))
	}
	p.advance()

	if p.reader.Done() {
		return nil, p.newError(ErrSyntax, len(p.source), "expected an expression after 'if' statement")
	}
	then, err := p.scanComparison()
	if err != nil {
		return nil, err
	}

	result := IfExpression{Condition: cond, Then: then}
	if _, hasElse := p.checkToken(TokenTypeElse); hasElse {
		if p.reader.Done() {
			return nil, p.newError(ErrSyntax, len(p.source), "expected an expression after 'else' statement")
		}
		result.Else, err = p.scanComparison()
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// scanSemicolon drops the separator together with the token after it and
// starts a fresh statement.
func (p *Parser) scanSemicolon() (Expression, error) {
	p.advance()
	if _, ok := p.reader.Next(); !ok || p.reader.Done() {
		return nil, p.endOfInput("expecting a statement after ';'")
	}
	return p.scanComparison()
}

func (p *Parser) scanIdentifier(name Token) (Expression, error) {
	next, ok := p.reader.Peek(1)
	if ok && next.Type == TokenTypeAssign {
		return p.scanAssignment(name)
	}
	if ok && next.Type == TokenTypeLParen {
		p.advance()
		p.advance()
		return p.scanCallOrDefinition(name)
	}
	p.advance()
	return Identifier{Name: name.Value}, nil
}

// Reads "name = value". When the value stops short of a ';' the cursor moves
// one token and the value is scanned again, so the last complete expression
// before the ';' is the one bound.
func (p *Parser) scanAssignment(name Token) (Expression, error) {
	p.advance()
	p.advance()

	value, err := p.scanComparison()
	if err != nil {
		return nil, err
	}
	for {
		next, ok := p.reader.Peek(0)
		if !ok || next.Type == TokenTypeSemicolon {
			break
		}
		p.advance()
		value, err = p.scanComparison()
		if err != nil {
			return nil, err
		}
	}

	return Assignment{Name: name.Value, Value: value}, nil
}

// Reads after "name(". A definition is recognised by a definition marker
// ("=" or "->") right after the ')' that closes this argument list.
func (p *Parser) scanCallOrDefinition(name Token) (Expression, error) {
	if !isDefinition(p.reader.Remaining()) {
		args, err := p.scanArgumentList(nil)
		if err != nil {
			return nil, err
		}
		return FunctionCall{Name: name.Value, Arguments: args}, nil
	}

	args, err := p.scanArgumentList(func(arg Expression, at Token) error {
		if _, ok := arg.(Identifier); !ok {
			return p.newError(ErrType, at.Offset, "expected identifier in function's arguments")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	params := make([]Identifier, 0, len(args))
	for _, arg := range args {
		params = append(params, arg.(Identifier))
	}

	// definition marker
	p.advance()
	if p.reader.Done() {
		return nil, p.endOfInput(fmt.Sprintf("expecting the body of function '%s'", name.Value))
	}

	body, err := p.scanComparison()
	if err != nil {
		return nil, err
	}
	return FunctionDefinition{Name: name.Value, Parameters: params, Body: body}, nil
}

// isDefinition looks only at the unread tokens, starting just after the '('
// of the argument list, for the matching ')' and the token after it.
func isDefinition(tokens []Token) bool {
	depth := 0
	for i, tok := range tokens {
		switch tok.Type {
		case TokenTypeLParen:
			depth++
		case TokenTypeRParen:
			if depth == 0 {
				return i+1 < len(tokens) && isDefinitionMarker(tokens[i+1])
			}
			depth--
		}
	}
	return false
}

func isDefinitionMarker(tok Token) bool {
	return tok.Type == TokenTypeAssign || tok.Type == TokenTypeArrow
}

// scanArgumentList reads comma separated expressions up to and including the
// closing ')'. check, when set, vets every argument as it is read.
func (p *Parser) scanArgumentList(check func(arg Expression, at Token) error) ([]Expression, error) {
	args := []Expression{}
	if _, empty := p.checkToken(TokenTypeRParen); empty {
		return args, nil
	}

	for {
		start, ok := p.reader.Peek(0)
		if !ok {
			return nil, p.endOfArguments()
		}
		if start.Type == TokenTypeComma {
			return nil, p.syntaxError(start, "unexpected ',' in argument list")
		}

		arg, err := p.scanComparison()
		if err != nil {
			return nil, err
		}
		if check != nil {
			if err := check(arg, start); err != nil {
				return nil, err
			}
		}
		args = append(args, arg)

		next, ok := p.reader.Next()
		if !ok {
			return nil, p.endOfArguments()
		}
		switch next.Type {
		case TokenTypeRParen:
			return args, nil
		case TokenTypeComma:
			after, ok := p.reader.Peek(0)
			if !ok {
				return nil, p.endOfArguments()
			}
			if after.Type == TokenTypeRParen {
				return nil, p.syntaxError(next, "unexpected ',' before ')'")
			}
		default:
			return nil, p.syntaxError(next, fmt.Sprintf(
				"expected ',' or ')' after argument but found '%s'", next.Value))
		}
	}
}

func (p *Parser) advance() {
	_, _ = p.reader.Next()
}

func (p *Parser) peekToken(tokType TokenType) (Token, bool) {
	next, ok := p.reader.Peek(0)
	if !ok || next.Type != tokType {
		return Token{}, false
	}
	return next, true
}

func (p *Parser) checkToken(tokType TokenType) (Token, bool) {
	tok, found := p.peekToken(tokType)
	if found {
		p.advance()
	}
	return tok, found
}

// requireToken consumes the next token, which must be of type tokType.
func (p *Parser) requireToken(tokType TokenType, expecting string) (Token, error) {
	next, ok := p.reader.Next()
	if !ok {
		return Token{}, p.endOfInput(expecting)
	}
	if next.Type != tokType {
		return Token{}, p.syntaxError(next, fmt.Sprintf("%s but found '%s'", expecting, next.Value))
	}
	return next, nil
}

func (p *Parser) newError(category error, offset int, msg string) error {
	return &Error{
		Category: category,
		Message:  msg,
		Offset:   offset,
		File:     p.file,
		Source:   p.source,
	}
}

func (p *Parser) syntaxError(tok Token, msg string) error {
	return p.newError(ErrSyntax, tok.Offset, msg)
}

func (p *Parser) endOfInput(expecting string) error {
	return p.newError(ErrParse, len(p.source), "unexpected end of input, "+expecting)
}

func (p *Parser) endOfArguments() error {
	return p.newError(ErrParse, len(p.source), "unexpected end of input while parsing arguments")
}

func getComparisonOpType(tok Token) (comparisonOpType, bool) {
	switch tok.Type {
	case TokenTypeGreater:
		return ComparisonOpGreaterThan, true
	case TokenTypeGreaterOrEqual:
		return ComparisonOpGreaterThanOrEqual, true
	case TokenTypeLess:
		return ComparisonOpLessThan, true
	case TokenTypeLessOrEqual:
		return ComparisonOpLessThanOrEqual, true
	case TokenTypeEqual:
		return ComparisonOpEqual, true
	}
	return 0, false
}

func getExprOpType(tok Token) (binaryExprOpType, bool) {
	switch tok.Type {
	case TokenTypePlus:
		return BinaryExprOpAdd, true
	case TokenTypeMinus:
		return BinaryExprOpSubtract, true
	}
	return 0, false
}

func getTermOpType(tok Token) (binaryExprOpType, bool) {
	switch tok.Type {
	case TokenTypeAsterisk:
		return BinaryExprOpMultiply, true
	case TokenTypeSlash:
		return BinaryExprOpDivide, true
	}
	return 0, false
}

func getPowerOpType(tok Token) (binaryExprOpType, bool) {
	switch tok.Type {
	case TokenTypeCaret:
		return BinaryExprOpPower, true
	case TokenTypePercent:
		return BinaryExprOpModulo, true
	}
	return 0, false
}

func getLogicalOpType(tok Token) (logicalOpType, bool) {
	switch tok.Type {
	case TokenTypeAnd:
		return LogicalOpAnd, true
	case TokenTypeOr:
		return LogicalOpOr, true
	}
	return 0, false
}
