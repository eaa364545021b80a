// Package parser implements a recursive-descent s-expression reader:
// a single expr production tried as an ordered set of alternatives
// (quote, nil, constant, if, let, fn, call), with cut points that turn
// a recoverable failure partway through a special form into a hard
// ParseError.
package parser

import (
	"math/big"
	"strconv"

	"github.com/conneroisu/crisp/internal/ast"
	"github.com/conneroisu/crisp/pkg/lexer"
)

// Parser reads a token stream into a sequence of top-level
// expressions. It keeps a cur/peek token window, the same lookahead
// idiom a Pratt parser uses for operator precedence — this grammar
// needs no precedence climbing since every compound form is fully
// parenthesized. The special-form keywords in call's head position are
// recognised without backtracking from cur alone, once '(' has been
// consumed; peek is not consulted.
type Parser struct {
	l    *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
}

// New creates a Parser over l, primed with the first two tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

// Parse reads every top-level expression until EOF. Trailing garbage
// — any input left over once no further expr alternative matches — is
// a ParseError.
func Parse(input string) ([]ast.Expression, *ParseError) {
	p := New(lexer.New(input))
	var exprs []ast.Expression
	for !p.curIs(lexer.TokenEOF) {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// parseExpr implements the expr production, trying alternatives in a
// fixed order: quote, nil, constant, if, let, fn, call. That ordering
// is what lets `nil`, numeric/built-in tokens, and a parenthesised
// form with a leading special-form keyword win before plain symbol or
// call parsing would otherwise swallow them.
func (p *Parser) parseExpr() (ast.Expression, *ParseError) {
	switch {
	case p.curIs(lexer.TokenQuoteMark):
		return p.parseQuote()
	case p.curIs(lexer.TokenSymbol) && p.cur.Literal == "nil":
		p.advance()
		return ast.NilValue, nil
	case p.isConstantStart():
		return p.parseConstant()
	case p.curIs(lexer.TokenLParen):
		return p.parseParenForm()
	default:
		return nil, newParseError(p.cur.Line, p.cur.Column,
			"unexpected token %s while parsing an expression", p.cur)
	}
}

// isConstantStart reports whether the current token alone can start a
// bare constant (everything except the parenthesised forms if/let/fn/
// call, and the special cases quote/nil already handled by parseExpr).
func (p *Parser) isConstantStart() bool {
	switch p.cur.Type {
	case lexer.TokenString, lexer.TokenChar, lexer.TokenFloat, lexer.TokenInteger,
		lexer.TokenBuiltIn, lexer.TokenKeyword, lexer.TokenSymbol:
		return true
	default:
		return false
	}
}

// parseParenForm disambiguates the parenthesised alternatives: if,
// let, fn, or a generic call, by peeking at the head token once '(' is
// consumed.
func (p *Parser) parseParenForm() (ast.Expression, *ParseError) {
	openLine, openCol := p.cur.Line, p.cur.Column
	p.advance() // consume '('

	if p.curIs(lexer.TokenSymbol) {
		switch p.cur.Literal {
		case "if":
			return p.parseIf()
		case "let":
			return p.parseLet(openLine, openCol)
		case "fn":
			return p.parseFn()
		}
	}
	return p.parseCall(openLine, openCol)
}

// parseQuote handles both quote shapes: 'expr (a single item wrapped
// in a one-element list) and '(exprs…) (the whole list).
func (p *Parser) parseQuote() (ast.Expression, *ParseError) {
	p.advance() // consume '\''
	if p.curIs(lexer.TokenLParen) {
		p.advance() // consume '('
		var items []ast.Expression
		for !p.curIs(lexer.TokenRParen) {
			if p.curIs(lexer.TokenEOF) {
				return nil, newParseError(p.cur.Line, p.cur.Column, "unterminated quoted list")
			}
			item, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		p.advance() // consume ')'
		return ast.Quote{Items: items}, nil
	}
	item, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.Quote{Items: []ast.Expression{item}}, nil
}

// parseIf parses (if predicate then otherwise?). The closing paren is
// a cut point: once "if" is recognised, any further failure is a hard
// error rather than a fallthrough to call parsing.
func (p *Parser) parseIf() (ast.Expression, *ParseError) {
	p.advance() // consume 'if'

	pred, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	var otherwise ast.Expression
	if !p.curIs(lexer.TokenRParen) {
		otherwise, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if !p.curIs(lexer.TokenRParen) {
		return nil, newParseError(p.cur.Line, p.cur.Column, "expected ')' to close if, got %s", p.cur)
	}
	p.advance() // consume ')'
	return ast.If{Predicate: pred, Then: then, Otherwise: otherwise}, nil
}

// parseLet parses (let binding+), where binding is either
// `symbol expr` or the function-definition sugar
// `(symbol param+) expr` ≡ `symbol (fn (param+) expr)`.
func (p *Parser) parseLet(line, col int) (ast.Expression, *ParseError) {
	p.advance() // consume 'let'

	var bindings []ast.Binding
	for !p.curIs(lexer.TokenRParen) {
		if p.curIs(lexer.TokenEOF) {
			return nil, newParseError(p.cur.Line, p.cur.Column, "unterminated let")
		}
		binding, err := p.parseBinding()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding)
	}
	if len(bindings) == 0 {
		return nil, newParseError(line, col, "let requires at least one binding")
	}
	p.advance() // consume ')'
	return ast.Let{Bindings: bindings}, nil
}

func (p *Parser) parseBinding() (ast.Binding, *ParseError) {
	if p.curIs(lexer.TokenLParen) {
		// (name param+) body  ≡  name (fn (param+) body)
		openLine, openCol := p.cur.Line, p.cur.Column
		p.advance() // consume '('
		if !p.curIs(lexer.TokenSymbol) {
			return ast.Binding{}, newParseError(p.cur.Line, p.cur.Column,
				"expected a symbol naming the function being defined, got %s", p.cur)
		}
		name := ast.Symbol(p.cur.Literal)
		p.advance()

		var params []ast.Expression
		for !p.curIs(lexer.TokenRParen) {
			if !p.curIs(lexer.TokenSymbol) {
				return ast.Binding{}, newParseError(p.cur.Line, p.cur.Column,
					"expected a parameter symbol, got %s", p.cur)
			}
			params = append(params, ast.Constant{Value: ast.Symbol(p.cur.Literal)})
			p.advance()
		}
		if len(params) == 0 {
			return ast.Binding{}, newParseError(openLine, openCol, "function binding requires at least one parameter")
		}
		p.advance() // consume ')'

		body, err := p.parseExpr()
		if err != nil {
			return ast.Binding{}, err
		}
		return ast.Binding{Name: name, Value: ast.Function{Params: params, Body: body}}, nil
	}

	if !p.curIs(lexer.TokenSymbol) {
		return ast.Binding{}, newParseError(p.cur.Line, p.cur.Column,
			"expected a binding name, got %s", p.cur)
	}
	name := ast.Symbol(p.cur.Literal)
	p.advance()

	value, err := p.parseExpr()
	if err != nil {
		return ast.Binding{}, err
	}
	return ast.Binding{Name: name, Value: value}, nil
}

// parseFn parses (fn (symbol*) body).
func (p *Parser) parseFn() (ast.Expression, *ParseError) {
	p.advance() // consume 'fn'

	if !p.curIs(lexer.TokenLParen) {
		return nil, newParseError(p.cur.Line, p.cur.Column, "expected '(' to open fn's parameter list, got %s", p.cur)
	}
	p.advance() // consume '('

	var params []ast.Expression
	for !p.curIs(lexer.TokenRParen) {
		if !p.curIs(lexer.TokenSymbol) {
			return nil, newParseError(p.cur.Line, p.cur.Column, "expected a parameter symbol, got %s", p.cur)
		}
		params = append(params, ast.Constant{Value: ast.Symbol(p.cur.Literal)})
		p.advance()
	}
	p.advance() // consume ')'

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.curIs(lexer.TokenRParen) {
		return nil, newParseError(p.cur.Line, p.cur.Column, "expected ')' to close fn, got %s", p.cur)
	}
	p.advance() // consume ')'
	return ast.Function{Params: params, Body: body}, nil
}

// parseCall parses the generic form (head expr*): head followed by
// zero or more argument expressions.
func (p *Parser) parseCall(line, col int) (ast.Expression, *ParseError) {
	head, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var args []ast.Expression
	for !p.curIs(lexer.TokenRParen) {
		if p.curIs(lexer.TokenEOF) {
			return nil, newParseError(line, col, "unterminated call")
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.advance() // consume ')'
	return ast.Call{Head: head, Args: args}, nil
}

// parseConstant implements the constant production, trying
// alternatives in a fixed order: string, char, float, integer,
// built_in, keyword, symbol. Float is tried before integer
// because both share the `-?digit+` prefix; the lexer already performs
// that disambiguation by maximal munch, so here it only needs to read
// off the token the lexer already classified.
func (p *Parser) parseConstant() (ast.Expression, *ParseError) {
	tok := p.cur
	switch tok.Type {
	case lexer.TokenString:
		p.advance()
		return ast.Constant{Value: ast.String(tok.Literal)}, nil
	case lexer.TokenChar:
		r := []rune(tok.Literal)
		if len(r) != 1 {
			return nil, newParseError(tok.Line, tok.Column, "char literal must be exactly one code point, got %q", tok.Literal)
		}
		p.advance()
		return ast.Constant{Value: ast.Char(r[0])}, nil
	case lexer.TokenFloat:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, newParseError(tok.Line, tok.Column, "could not parse %q as a float", tok.Literal)
		}
		p.advance()
		return ast.Constant{Value: ast.Float(v)}, nil
	case lexer.TokenInteger:
		v, ok := new(big.Int).SetString(tok.Literal, 10)
		if !ok {
			return nil, newParseError(tok.Line, tok.Column, "could not parse %q as an integer", tok.Literal)
		}
		p.advance()
		return ast.Constant{Value: ast.NewInteger(v)}, nil
	case lexer.TokenBuiltIn:
		b, ok := ast.LookupBuiltIn(tok.Literal)
		if !ok {
			return nil, newParseError(tok.Line, tok.Column, "unknown built-in operator %q", tok.Literal)
		}
		p.advance()
		return ast.Constant{Value: b}, nil
	case lexer.TokenKeyword:
		p.advance()
		return ast.Constant{Value: ast.Keyword(tok.Literal)}, nil
	case lexer.TokenSymbol:
		p.advance()
		return ast.Constant{Value: ast.Symbol(tok.Literal)}, nil
	default:
		return nil, newParseError(tok.Line, tok.Column, "expected a constant, got %s", tok)
	}
}
