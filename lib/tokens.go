package lib

import "fmt"

// TokenType classifies a token produced by Tokenize.
type TokenType int

const (
	TokenTypeUnknown TokenType = iota
	TokenTypeDigit
	TokenTypeIdentifier
	TokenTypeLParen
	TokenTypeRParen
	TokenTypePlus
	TokenTypeMinus
	TokenTypeAsterisk
	TokenTypeSlash
	TokenTypeCaret
	TokenTypePercent
	TokenTypeDot
	TokenTypeDelimiter
	TokenTypeExponent
	TokenTypeAssign
	TokenTypeEqual
	TokenTypeLess
	TokenTypeLessOrEqual
	TokenTypeGreater
	TokenTypeGreaterOrEqual
	TokenTypeComma
	TokenTypeSemicolon
	TokenTypeArrow
	TokenTypeIf
	TokenTypeElse
	TokenTypeAnd
	TokenTypeOr
	TokenTypeNot
	TokenTypeNull
	TokenTypeBoolean
)

var tokenTypeNames = map[TokenType]string{
	TokenTypeUnknown:        "UNKNOWN",
	TokenTypeDigit:          "DIGIT",
	TokenTypeIdentifier:     "IDENTIFIER",
	TokenTypeLParen:         "LPAREN",
	TokenTypeRParen:         "RPAREN",
	TokenTypePlus:           "PLUS",
	TokenTypeMinus:          "MINUS",
	TokenTypeAsterisk:       "MULT",
	TokenTypeSlash:          "DIV",
	TokenTypeCaret:          "POW",
	TokenTypePercent:        "MOD",
	TokenTypeDot:            "DOT",
	TokenTypeDelimiter:      "DELIM",
	TokenTypeExponent:       "EXPONENT",
	TokenTypeAssign:         "ASSIGN",
	TokenTypeEqual:          "EQUALS",
	TokenTypeLess:           "LESSTHAN",
	TokenTypeLessOrEqual:    "LESSTHANOREQUAL",
	TokenTypeGreater:        "GREATERTHAN",
	TokenTypeGreaterOrEqual: "GREATERTHANOREQUAL",
	TokenTypeComma:          "COMMA",
	TokenTypeSemicolon:      "SEMICOLON",
	TokenTypeArrow:          "ARROW",
	TokenTypeIf:             "IF",
	TokenTypeElse:           "ELSE",
	TokenTypeAnd:            "AND",
	TokenTypeOr:             "OR",
	TokenTypeNot:            "NOT",
	TokenTypeNull:           "NULL",
	TokenTypeBoolean:        "BOOLEAN",
}

func (t TokenType) String() string {
	name, ok := tokenTypeNames[t]
	if !ok {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return name
}

// Token is a classified lexical unit. Offset is the byte offset of its first
// character in the source.
type Token struct {
	Type   TokenType
	Value  string
	Offset int
}

// end returns the byte offset just past the token.
func (t Token) end() int {
	return t.Offset + len(t.Value)
}

func (t Token) String() string {
	return fmt.Sprintf("%d -> %s", t.Offset, tokenValueString(t))
}

var keywords = map[string]TokenType{
	"if":    TokenTypeIf,
	"else":  TokenTypeElse,
	"and":   TokenTypeAnd,
	"or":    TokenTypeOr,
	"not":   TokenTypeNot,
	"null":  TokenTypeNull,
	"true":  TokenTypeBoolean,
	"false": TokenTypeBoolean,
}

func keywordOrIdentifier(word string) TokenType {
	if typ, ok := keywords[word]; ok {
		return typ
	}
	return TokenTypeIdentifier
}

func tokenValueString(tok Token) string {
	switch tok.Type {
	case TokenTypeIdentifier:
		return fmt.Sprintf("identifier: %s", tok.Value)
	case TokenTypeDigit:
		return fmt.Sprintf("digit: %s", tok.Value)
	case TokenTypeBoolean:
		return fmt.Sprintf("boolean: %s", tok.Value)
	case TokenTypeUnknown:
		return fmt.Sprintf("unknown: %s", tok.Value)
	default:
		return tok.Value
	}
}
