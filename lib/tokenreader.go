package lib

// tokenReader hands tokens to the parser. Reads past the last token report
// ok == false instead of repeating the final token.
type tokenReader interface {
	Next() (tok Token, ok bool)
	Peek(offset int) (tok Token, ok bool)
	Done() bool
	Remaining() []Token
}
