package lib

import (
	"unicode"
	"unicode/utf8"
)

var singleCharTokens = map[rune]TokenType{
	'+':  TokenTypePlus,
	'*':  TokenTypeAsterisk,
	'/':  TokenTypeSlash,
	'(':  TokenTypeLParen,
	')':  TokenTypeRParen,
	'^':  TokenTypeCaret,
	'%':  TokenTypePercent,
	',':  TokenTypeComma,
	'.':  TokenTypeDot,
	'\'': TokenTypeDelimiter,
	';':  TokenTypeSemicolon,
}

// Tokenize scans the whole source up front. It never fails: characters it
// does not recognize become TokenTypeUnknown tokens for the parser to reject.
func Tokenize(source string) []Token {
	tokens := []Token{}
	lex(source, func(t Token) {
		tokens = append(tokens, t)
	})
	return tokens
}

func lex(source string, emit func(Token)) {
	l := newLexer(source, emit)
	l.scan()
}

type lexer struct {
	source       string
	pos          int
	emitCallback func(Token)
}

func newLexer(source string, emit func(Token)) *lexer {
	return &lexer{
		source:       source,
		pos:          0,
		emitCallback: emit,
	}
}

func (l *lexer) emit(tokType TokenType, start int) {
	l.emitCallback(Token{
		Type:   tokType,
		Value:  l.source[start:l.pos],
		Offset: start,
	})
}

// peek returns the rune offset runes ahead of the current position without
// consuming anything.
func (l *lexer) peek(offset int) (rune, bool) {
	i := l.pos
	for {
		if i >= len(l.source) {
			return 0, false
		}
		ch, size := utf8.DecodeRuneInString(l.source[i:])
		if offset == 0 {
			return ch, true
		}
		offset--
		i += size
	}
}

func (l *lexer) advance() (rune, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	return ch, true
}

// accept consumes the next rune only if it is want.
func (l *lexer) accept(want rune) bool {
	ch, ok := l.peek(0)
	if !ok || ch != want {
		return false
	}
	_, _ = l.advance()
	return true
}

func (l *lexer) scan() {
	for l.next() {
	}
}

func (l *lexer) next() bool {
	start := l.pos
	ch, ok := l.advance()
	if !ok {
		return false
	}

	switch ch {
	case '=':
		if l.accept('=') {
			l.emit(TokenTypeEqual, start)
		} else {
			l.emit(TokenTypeAssign, start)
		}
	case '<':
		if l.accept('=') {
			l.emit(TokenTypeLessOrEqual, start)
		} else {
			l.emit(TokenTypeLess, start)
		}
	case '>':
		if l.accept('=') {
			l.emit(TokenTypeGreaterOrEqual, start)
		} else {
			l.emit(TokenTypeGreater, start)
		}
	case '-':
		if l.accept('>') {
			l.emit(TokenTypeArrow, start)
		} else {
			l.emit(TokenTypeMinus, start)
		}
	case 'e':
		// "e" directly followed by a letter starts a word like "exp" or
		// "else", anything else is the exponent marker of a number
		ahead, ok := l.peek(0)
		if ok && isWordStart(ahead) {
			l.scanWord(start)
		} else {
			l.emit(TokenTypeExponent, start)
		}
	default:
		if tokType, single := singleCharTokens[ch]; single {
			l.emit(tokType, start)
		} else if isDigit(ch) {
			l.scanDigits(start)
		} else if isWordStart(ch) {
			l.scanWord(start)
		} else if !unicode.IsSpace(ch) {
			l.emit(TokenTypeUnknown, start)
		}
	}

	return true
}

func (l *lexer) scanDigits(start int) {
	for {
		ch, ok := l.peek(0)
		if !ok || !isDigit(ch) {
			break
		}
		_, _ = l.advance()
	}
	l.emit(TokenTypeDigit, start)
}

func (l *lexer) scanWord(start int) {
	for {
		ch, ok := l.peek(0)
		if !ok || !(isWordStart(ch) || isDigit(ch)) {
			break
		}
		_, _ = l.advance()
	}
	l.emit(keywordOrIdentifier(l.source[start:l.pos]), start)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isWordStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}
