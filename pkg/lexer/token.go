package lexer

import "fmt"

// TokenType classifies a lexical token produced while scanning Crisp
// source text.
type TokenType int

// The complete set of token kinds the lexer can emit. Special forms
// (if, let, fn, nil) and the sole truth symbol are not distinguished at
// this layer — they arrive as TokenSymbol and are recognized by the
// parser instead.
const (
	TokenEOF TokenType = iota
	TokenIllegal

	TokenLParen
	TokenRParen
	TokenQuoteMark // a lone ' introducing a quoted form

	TokenString
	TokenChar
	TokenFloat
	TokenInteger
	TokenBuiltIn
	TokenKeyword
	TokenSymbol
)

var tokenNames = map[TokenType]string{
	TokenEOF:       "EOF",
	TokenIllegal:   "ILLEGAL",
	TokenLParen:    "LPAREN",
	TokenRParen:    "RPAREN",
	TokenQuoteMark: "QUOTE",
	TokenString:    "STRING",
	TokenChar:      "CHAR",
	TokenFloat:     "FLOAT",
	TokenInteger:   "INTEGER",
	TokenBuiltIn:   "BUILTIN",
	TokenKeyword:   "KEYWORD",
	TokenSymbol:    "SYMBOL",
}

// String renders the token type name, e.g. for error messages.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexical unit together with its source position.
type Token struct {
	Type    TokenType
	Literal string // the token's exact source text (contents already unwrapped for String/Char/Keyword)
	Line    int
	Column  int
}

// String renders the token for debugging.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}
