package lib

type binaryExprOpType int

const (
	BinaryExprOpAdd binaryExprOpType = iota
	BinaryExprOpSubtract
	BinaryExprOpMultiply
	BinaryExprOpDivide
	BinaryExprOpPower
	BinaryExprOpModulo
)

func (o binaryExprOpType) String() string {
	switch o {
	case BinaryExprOpAdd:
		return "+"
	case BinaryExprOpSubtract:
		return "-"
	case BinaryExprOpMultiply:
		return "*"
	case BinaryExprOpDivide:
		return "/"
	case BinaryExprOpPower:
		return "^"
	case BinaryExprOpModulo:
		return "%"
	default:
		return "?"
	}
}

type unaryExprOpType int

const (
	UnaryExprOpPlus unaryExprOpType = iota
	UnaryExprOpMinus
)

func (o unaryExprOpType) String() string {
	if o == UnaryExprOpPlus {
		return "+"
	}
	return "-"
}

type comparisonOpType int

const (
	ComparisonOpGreaterThan comparisonOpType = iota
	ComparisonOpGreaterThanOrEqual
	ComparisonOpLessThan
	ComparisonOpLessThanOrEqual
	ComparisonOpEqual
)

func (o comparisonOpType) String() string {
	switch o {
	case ComparisonOpGreaterThan:
		return ">"
	case ComparisonOpGreaterThanOrEqual:
		return ">="
	case ComparisonOpLessThan:
		return "<"
	case ComparisonOpLessThanOrEqual:
		return "<="
	case ComparisonOpEqual:
		return "=="
	default:
		return "?"
	}
}

type logicalOpType int

const (
	LogicalOpAnd logicalOpType = iota
	LogicalOpOr
)

func (o logicalOpType) String() string {
	if o == LogicalOpAnd {
		return "and"
	}
	return "or"
}

// Program is the result of parsing every statement in a source.
type Program struct {
	Statements []Expression
}

// Expression is implemented by every node of the syntax tree. The set of
// implementations is closed.
type Expression interface {
	isExpression()
}

func (n NumberLiteral) isExpression()      {}
func (b BooleanLiteral) isExpression()     {}
func (n NullLiteral) isExpression()        {}
func (i Identifier) isExpression()         {}
func (b BinaryExpression) isExpression()   {}
func (u UnaryExpression) isExpression()    {}
func (c Comparison) isExpression()         {}
func (l LogicalExpression) isExpression()  {}
func (n NotExpression) isExpression()      {}
func (n NegateExpression) isExpression()   {}
func (i IfExpression) isExpression()       {}
func (a Assignment) isExpression()         {}
func (f FunctionDefinition) isExpression() {}
func (f FunctionCall) isExpression()       {}

type NumberLiteral struct {
	Value float64
}

type BooleanLiteral struct {
	Value bool
}

type NullLiteral struct{}

type Identifier struct {
	Name string
}

type BinaryExpression struct {
	Left  Expression
	Right Expression
	Op    binaryExprOpType
}

// UnaryExpression is a prefix "+" or a "-" that is not followed by something
// NegateExpression accepts (a parenthesis, identifier, digit or boolean).
type UnaryExpression struct {
	Operand Expression
	Op      unaryExprOpType
}

type Comparison struct {
	Left  Expression
	Right Expression
	Op    comparisonOpType
}

type LogicalExpression struct {
	Left  Expression
	Right Expression
	Op    logicalOpType
}

type NotExpression struct {
	Operand Expression
}

type NegateExpression struct {
	Operand Expression
}

// IfExpression has a nil Else when the source had no else branch.
type IfExpression struct {
	Condition Expression
	Then      Expression
	Else      Expression
}

type Assignment struct {
	Name  string
	Value Expression
}

type FunctionDefinition struct {
	Name       string
	Parameters []Identifier
	Body       Expression
}

type FunctionCall struct {
	Name      string
	Arguments []Expression
}
