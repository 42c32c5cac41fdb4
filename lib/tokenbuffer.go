package lib

// tokenBuffer is a cursor over a fully tokenized source.
type tokenBuffer struct {
	tokens []Token
	pos    int
}

func newTokenBuffer(tokens []Token) *tokenBuffer {
	return &tokenBuffer{
		tokens: tokens,
		pos:    0,
	}
}

func (tb *tokenBuffer) Next() (Token, bool) {
	tok, ok := tb.Peek(0)
	if ok {
		tb.pos++
	}
	return tok, ok
}

func (tb *tokenBuffer) Peek(offset int) (Token, bool) {
	i := tb.pos + offset
	if i < 0 || i >= len(tb.tokens) {
		return Token{}, false
	}
	return tb.tokens[i], true
}

func (tb *tokenBuffer) Done() bool {
	return tb.pos >= len(tb.tokens)
}

// Remaining is the unread suffix. Lookahead scans must stay inside it so an
// enclosing construct's tokens are never considered.
func (tb *tokenBuffer) Remaining() []Token {
	if tb.Done() {
		return nil
	}
	return tb.tokens[tb.pos:]
}
