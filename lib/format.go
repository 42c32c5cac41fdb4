package lib

import (
	"strconv"
	"strings"
)

// Format renders expr back to source text. Compound nodes are parenthesized,
// except along a trailing assignment, which runs to the end of the statement
// and cannot be closed. Formatting the re-parsed output gives the same text.
func Format(expr Expression) string {
	var sb strings.Builder
	writeExpr(&sb, expr)
	return sb.String()
}

// String renders every statement. Statements are joined with ";;" because a
// semicolon also swallows the token that follows it.
func (p Program) String() string {
	parts := make([]string, 0, len(p.Statements))
	for _, stmt := range p.Statements {
		parts = append(parts, Format(stmt))
	}
	return strings.Join(parts, ";; ")
}

func writeExpr(sb *strings.Builder, expr Expression) {
	switch e := expr.(type) {
	case NumberLiteral:
		sb.WriteString(strconv.FormatFloat(e.Value, 'g', -1, 64))
	case BooleanLiteral:
		sb.WriteString(strconv.FormatBool(e.Value))
	case NullLiteral:
		sb.WriteString("null")
	case Identifier:
		sb.WriteString(e.Name)
	case BinaryExpression:
		writeInfix(sb, e.Left, e.Op.String(), e.Right)
	case Comparison:
		writeInfix(sb, e.Left, e.Op.String(), e.Right)
	case LogicalExpression:
		writeInfix(sb, e.Left, e.Op.String(), e.Right)
	case NegateExpression:
		closed := !endsInAssignment(e)
		writeOpen(sb, closed)
		sb.WriteString("-")
		writeExpr(sb, e.Operand)
		writeClose(sb, closed)
	case NotExpression, UnaryExpression, IfExpression:
		closed := !endsInAssignment(e)
		writeOpen(sb, closed)
		writePrefixForm(sb, e)
		writeClose(sb, closed)
	case Assignment:
		sb.WriteString(e.Name)
		sb.WriteString(" = ")
		writeExpr(sb, e.Value)
	case FunctionDefinition:
		sb.WriteString(e.Name)
		sb.WriteString("(")
		for i, param := range e.Parameters {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(param.Name)
		}
		sb.WriteString(") = ")
		writeExpr(sb, e.Body)
	case FunctionCall:
		sb.WriteString(e.Name)
		sb.WriteString("(")
		for i, arg := range e.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, arg)
		}
		sb.WriteString(")")
	}
}

func writeInfix(sb *strings.Builder, left Expression, op string, right Expression) {
	closed := !endsInAssignment(right)
	writeOpen(sb, closed)
	writeExpr(sb, left)
	sb.WriteString(" ")
	sb.WriteString(op)
	sb.WriteString(" ")
	writeExpr(sb, right)
	writeClose(sb, closed)
}

func writeOpen(sb *strings.Builder, closed bool) {
	if closed {
		sb.WriteString("(")
	}
}

func writeClose(sb *strings.Builder, closed bool) {
	if closed {
		sb.WriteString(")")
	}
}

// endsInAssignment reports whether the rightmost operand chain of expr ends in
// an Assignment. An assignment reads up to the next ';', so no ')' may follow
// it. Operand forms already read a whole comparison, which keeps the tree
// the same without the parentheses.
func endsInAssignment(expr Expression) bool {
	switch e := expr.(type) {
	case Assignment:
		return true
	case BinaryExpression:
		return endsInAssignment(e.Right)
	case Comparison:
		return endsInAssignment(e.Right)
	case LogicalExpression:
		return endsInAssignment(e.Right)
	case NotExpression:
		return endsInAssignment(e.Operand)
	case NegateExpression:
		return endsInAssignment(e.Operand)
	case UnaryExpression:
		return endsInAssignment(e.Operand)
	case IfExpression:
		if e.Else != nil {
			return endsInAssignment(e.Else)
		}
		return endsInAssignment(e.Then)
	case FunctionDefinition:
		return endsInAssignment(e.Body)
	}
	return false
}

// writePrefixForm writes keyword and unary forms without their enclosing
// parentheses. A unary "-" must be followed by one of these forms, or it
// would come back as a NegateExpression.
func writePrefixForm(sb *strings.Builder, expr Expression) {
	switch e := expr.(type) {
	case NotExpression:
		sb.WriteString("not ")
		writeExpr(sb, e.Operand)
	case UnaryExpression:
		sb.WriteString(e.Op.String())
		writePrefixForm(sb, e.Operand)
	case IfExpression:
		sb.WriteString("if ")
		cond := Format(e.Condition)
		if strings.HasPrefix(cond, "(") {
			sb.WriteString(cond)
		} else {
			sb.WriteString("(" + cond + ")")
		}
		sb.WriteString(" ")
		writeExpr(sb, e.Then)
		if e.Else != nil {
			sb.WriteString(" else ")
			writeExpr(sb, e.Else)
		}
	default:
		writeExpr(sb, expr)
	}
}
